package usecase

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/observability"
)

// Default acceptance thresholds for ML predictions. Marketing labels say
// nothing about the shelf, so the prediction is allowed in earlier with
// a lower bar.
const (
	defaultMLThreshold        = 0.65
	defaultMarketingThreshold = 0.4
)

// ResolverConfig holds configuration for the category resolver
type ResolverConfig struct {
	MLConfidenceThreshold        float64
	MarketingConfidenceThreshold float64
	DefaultCategory              string
}

// CategoryResolver maps a raw shop label plus product title onto exactly
// one canonical category. Resolution is a fixed chain of tiers, first
// match wins, and the operation is total: it never fails and never
// returns an empty category.
type CategoryResolver struct {
	phrases            *orderedmap.OrderedMap
	predictor          domain.CategoryPredictor // nil disables the ML tiers
	stats              *observability.Stats
	mlThreshold        float64
	marketingThreshold float64
	defaultCategory    string
	normalizedCanon    []canonicalForm
}

// canonicalForm caches the comparison forms of one canonical category so
// tier 2 and the fuzzy tier don't re-normalize the fixed set per call.
type canonicalForm struct {
	category  string
	norm      string
	spaceFree string
}

// NewCategoryResolver builds the resolver, loading and validating the
// curated phrase table. predictor may be nil.
func NewCategoryResolver(
	predictor domain.CategoryPredictor,
	stats *observability.Stats,
	config ResolverConfig,
) (*CategoryResolver, error) {
	phrases, err := buildPhraseTable(categoryPhrases)
	if err != nil {
		return nil, err
	}

	mlThreshold := config.MLConfidenceThreshold
	if mlThreshold <= 0 {
		mlThreshold = defaultMLThreshold
	}
	marketingThreshold := config.MarketingConfidenceThreshold
	if marketingThreshold <= 0 {
		marketingThreshold = defaultMarketingThreshold
	}
	defaultCategory := config.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = domain.DefaultCategory
	}
	if !domain.IsCanonical(defaultCategory) {
		return nil, domain.ErrUnknownCategory
	}

	normalized := make([]canonicalForm, 0, len(domain.CanonicalCategories))
	for _, c := range domain.CanonicalCategories {
		norm := NormalizeLabel(c)
		normalized = append(normalized, canonicalForm{
			category:  c,
			norm:      norm,
			spaceFree: spaceFree(norm),
		})
	}

	return &CategoryResolver{
		phrases:            phrases,
		predictor:          predictor,
		stats:              stats,
		mlThreshold:        mlThreshold,
		marketingThreshold: marketingThreshold,
		defaultCategory:    defaultCategory,
		normalizedCanon:    normalized,
	}, nil
}

// Resolve maps (rawLabel, title, shop) to a canonical category. Internal
// failures degrade to the default category rather than escaping.
func (r *CategoryResolver) Resolve(rawLabel, title, shop string) (category string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("shop", shop).Str("rawLabel", rawLabel).
				Msg("category resolution panicked, using default category")
			category = r.defaultCategory
		}
	}()

	if strings.TrimSpace(rawLabel) == "" {
		return r.resolveEmptyLabel(title, shop)
	}

	norm := NormalizeLabel(rawLabel)

	// Tiers 1-4: static table resolution
	if cat, tier, ok := r.resolveStatic(rawLabel, norm); ok {
		r.stats.CountTier(tier)
		return cat
	}

	// Tier 5: shop marketing labels, ML with the lower threshold
	if r.hasMarketingKeyword(shop, norm) {
		if cat, ok := r.resolveML(title, r.marketingThreshold); ok {
			r.stats.CountTier(domain.TierSpecialCase)
			return cat
		}
	}

	// Tier 6: ML prediction on the exact title
	if cat, ok := r.resolveML(title, r.mlThreshold); ok {
		r.stats.CountTier(domain.TierML)
		r.recordFallback(shop, rawLabel, title, cat, cat, domain.TierML)
		return cat
	}

	// Tier 7: fuzzy similarity against the canonical set
	cat := r.resolveFuzzy(norm)
	r.stats.CountTier(domain.TierFuzzy)
	r.recordFallback(shop, rawLabel, title, "", cat, domain.TierFuzzy)
	return cat
}

// resolveStatic runs tiers 1-4. norm must be NormalizeLabel(rawLabel);
// both are passed so ML re-runs can reuse the chain on predicted labels.
func (r *CategoryResolver) resolveStatic(rawLabel, norm string) (string, domain.MappingTier, bool) {
	// Tier 1: exact case-insensitive canonical match
	lowered := strings.ToLower(strings.TrimSpace(rawLabel))
	if domain.IsCanonical(lowered) {
		return lowered, domain.TierDirect, true
	}

	if norm == "" {
		return "", "", false
	}

	// Tier 2: normalized form against canonical set and space-free variant
	normNoSpace := spaceFree(norm)
	for _, c := range r.normalizedCanon {
		if norm == c.norm || normNoSpace == c.spaceFree {
			return c.category, domain.TierPartial, true
		}
	}

	// Tier 3: exact phrase-table lookup
	if v, ok := r.phrases.Get(norm); ok {
		return v.(string), domain.TierPartial, true
	}

	// Tier 4: bidirectional substring over the table, definition order
	// wins on ambiguity.
	for pair := r.phrases.Oldest(); pair != nil; pair = pair.Next() {
		pattern := pair.Key.(string)
		if strings.Contains(norm, pattern) || strings.Contains(pattern, norm) {
			return pair.Value.(string), domain.TierPartial, true
		}
	}

	return "", "", false
}

// resolveML consults the prediction lookup and, when the confidence
// clears the threshold, re-runs the predicted label through tiers 1-4.
// Predictions are model output and never assumed canonical.
func (r *CategoryResolver) resolveML(title string, threshold float64) (string, bool) {
	if r.predictor == nil || title == "" {
		return "", false
	}

	predicted, confidence, ok := r.predictor.Predict(title)
	if !ok || confidence < threshold {
		return "", false
	}

	if cat, _, ok := r.resolveStatic(predicted, NormalizeLabel(predicted)); ok {
		return cat, true
	}

	log.Debug().Str("title", title).Str("predicted", predicted).Float64("confidence", confidence).
		Msg("ml prediction did not resolve to a canonical category")
	return "", false
}

// resolveFuzzy picks the canonical category with maximal edit-distance
// similarity to the normalized input. Ties break by canonical-list order.
func (r *CategoryResolver) resolveFuzzy(norm string) string {
	best := r.defaultCategory
	bestScore := -1.0

	for _, c := range r.normalizedCanon {
		maxLen := max(len(norm), len(c.norm))
		if maxLen == 0 {
			continue
		}
		score := 1 - float64(levenshteinDistance(norm, c.norm))/float64(maxLen)
		if score > bestScore {
			bestScore = score
			best = c.category
		}
	}

	return best
}

// resolveEmptyLabel handles records without any raw label: either a
// title-driven ML result or the fixed default.
func (r *CategoryResolver) resolveEmptyLabel(title, shop string) string {
	if cat, ok := r.resolveML(title, r.mlThreshold); ok {
		r.stats.CountTier(domain.TierML)
		r.recordFallback(shop, "", title, cat, cat, domain.TierML)
		return cat
	}

	r.stats.CountTier(domain.TierSpecialCase)
	return r.defaultCategory
}

func (r *CategoryResolver) hasMarketingKeyword(shop, norm string) bool {
	for _, keyword := range shopMarketingKeywords[shop] {
		if strings.Contains(norm, keyword) {
			return true
		}
	}
	return false
}

func (r *CategoryResolver) recordFallback(shop, rawLabel, title, prediction, chosen string, tier domain.MappingTier) {
	r.stats.Record(domain.FallbackEntry{
		Timestamp:      time.Now(),
		Kind:           "category",
		Shop:           shop,
		RawLabel:       rawLabel,
		Title:          title,
		MLPrediction:   prediction,
		ChosenCategory: chosen,
		Tier:           tier,
	})
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

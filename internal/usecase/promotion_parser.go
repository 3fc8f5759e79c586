package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/observability"
)

// segmentSplitRegex splits a mechanism label into deal segments on ";"
// and ",". A comma directly between digits is a Dutch decimal separator
// ("2 voor €3,00"), so only commas followed by whitespace split.
var segmentSplitRegex = regexp.MustCompile(`\s*;\s*|,\s+`)

var promoSpacesRegex = regexp.MustCompile(`\s+`)

// PromotionParser interprets free-text promotion labels into structured
// deal results. Parsing is total, pure and deterministic: unmatched text
// degrades to a well-defined unknown deal, never an error.
type PromotionParser struct {
	rules []dealRule
	stats *observability.Stats
}

// NewPromotionParser creates a parser over the built-in deal-rule list.
func NewPromotionParser(stats *observability.Stats) *PromotionParser {
	return &PromotionParser{
		rules: dealRules,
		stats: stats,
	}
}

// Parse splits mechanismText into deal segments and interprets each one.
// A single-segment label returns that deal merged over the unknown
// baseline; a multi-segment label returns a composite whose sub-deals
// each stand alone.
func (p *PromotionParser) Parse(mechanismText, shop string, originalPrice, currentPrice float64) domain.PromotionResult {
	baseline := p.unknownMatch(originalPrice, currentPrice)

	text := strings.ToLower(strings.TrimSpace(mechanismText))
	text = promoSpacesRegex.ReplaceAllString(text, " ")
	if text == "" {
		return domain.PromotionResult{Deal: baseline}
	}

	var segments []string
	for _, seg := range segmentSplitRegex.Split(text, -1) {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return domain.PromotionResult{Deal: baseline}
	}

	matches := make([]domain.PromotionMatch, 0, len(segments))
	for _, segment := range segments {
		matches = append(matches, p.parseSegment(segment, shop, originalPrice, currentPrice))
	}

	if len(matches) == 1 {
		return domain.PromotionResult{Deal: mergeOverBaseline(matches[0], baseline)}
	}

	return domain.PromotionResult{
		Deal:     matches[0],
		SubDeals: matches,
	}
}

// parseSegment tries the ordered rule list against one segment; the
// first pattern that matches wins.
func (p *PromotionParser) parseSegment(segment, shop string, originalPrice, currentPrice float64) domain.PromotionMatch {
	for _, rule := range p.rules {
		if m := rule.pattern.FindStringSubmatch(segment); m != nil {
			match := rule.extract(m, originalPrice, currentPrice)
			p.stats.CountDeal(match.Type)
			return match
		}
	}

	// No rule matched: well-defined unknown deal, logged to drive
	// future rule authoring.
	p.stats.CountDeal(domain.DealUnknown)
	p.stats.Record(domain.FallbackEntry{
		Timestamp:     time.Now(),
		Kind:          "promotion",
		Shop:          shop,
		RawText:       segment,
		OriginalPrice: originalPrice,
		CurrentPrice:  currentPrice,
	})
	return p.unknownMatch(originalPrice, currentPrice)
}

func (p *PromotionParser) unknownMatch(originalPrice, currentPrice float64) domain.PromotionMatch {
	return domain.PromotionMatch{
		Type:               domain.DealUnknown,
		EffectiveUnitPrice: round2(currentPrice),
		EffectiveDiscount:  round2(originalPrice - currentPrice),
	}
}

// mergeOverBaseline fills price fields a rule left unset from the
// unknown baseline. A zero unit price together with a zero discount
// means the extractor had nothing to work with (typically a missing
// original price), not that the item is free.
func mergeOverBaseline(match, baseline domain.PromotionMatch) domain.PromotionMatch {
	if match.EffectiveUnitPrice == 0 && match.EffectiveDiscount == 0 {
		match.EffectiveUnitPrice = baseline.EffectiveUnitPrice
		match.EffectiveDiscount = baseline.EffectiveDiscount
	}
	return match
}

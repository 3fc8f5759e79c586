package usecase

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/observability"
)

// maxUnitPrice caps price-per-standard-unit output; anything above it is
// a unit mixup upstream, not a real shelf price.
const maxUnitPrice = 10000

// EnrichmentConfig holds configuration for the enrichment service
type EnrichmentConfig struct {
	Resolver ResolverConfig
}

// EnrichmentService drives the category resolver, unit system and
// promotion parser to turn one shop-adapted record into an enriched,
// comparable one. Stages are independently guarded: a failure in one
// leaves its fields unset and never aborts the rest of the record.
type EnrichmentService struct {
	resolver *CategoryResolver
	parser   *PromotionParser
	stats    *observability.Stats
}

// NewEnrichmentService wires the engine together. predictor may be nil,
// which disables the ML resolution tier.
func NewEnrichmentService(
	predictor domain.CategoryPredictor,
	stats *observability.Stats,
	config EnrichmentConfig,
) (*EnrichmentService, error) {
	resolver, err := NewCategoryResolver(predictor, stats, config.Resolver)
	if err != nil {
		return nil, err
	}

	return &EnrichmentService{
		resolver: resolver,
		parser:   NewPromotionParser(stats),
		stats:    stats,
	}, nil
}

// Enrich produces the enriched record for one product. Always returns a
// structurally complete record; field completeness is enforced by the
// downstream validator, not here.
func (s *EnrichmentService) Enrich(product domain.Product) *domain.EnrichedProduct {
	enriched := &domain.EnrichedProduct{Product: product}

	s.runStage("category", product.ID, func() {
		enriched.Category = s.resolver.Resolve(product.RawCategory, product.Title, product.Shop)
	})

	s.runStage("promotion", product.ID, func() {
		if !product.IsPromotion {
			return
		}
		if product.StructuredDiscount {
			// Shop-authoritative discount metadata must never be
			// re-derived through the lossy text parser.
			enriched.ParsedPromotion = &domain.PromotionResult{
				Deal: domain.PromotionMatch{
					Type:               domain.DealAmountOff,
					EffectiveUnitPrice: round2(product.CurrentPrice),
					EffectiveDiscount:  round2(product.OriginalPrice - product.CurrentPrice),
				},
			}
			return
		}
		result := s.parser.Parse(product.PromotionMechanism, product.Shop, product.OriginalPrice, product.CurrentPrice)
		enriched.ParsedPromotion = &result
	})

	s.runStage("quantity", product.ID, func() {
		code := NormalizeUnitToken(product.QuantityUnit)
		std := Standardize(product.QuantityAmount, code)
		enriched.NormalizedAmount = std.RefAmount
		enriched.NormalizedUnit = std.RefUnit
		enriched.ConversionFactor = std.ConversionFactor
	})

	s.runStage("unit_price", product.ID, func() {
		if enriched.ConversionFactor <= 0 {
			return
		}
		enriched.PricePerStandardUnit = CalculatePricePerUnit(product.OriginalPrice, enriched.ConversionFactor)
		enriched.CurrentPricePerStandardUnit = CalculatePricePerUnit(s.effectivePrice(enriched), enriched.ConversionFactor)
	})

	s.runStage("discount", product.ID, func() {
		if !product.IsPromotion {
			return
		}
		enriched.DiscountAbsolute, enriched.DiscountPercentage =
			CalculateDiscountMetrics(product.OriginalPrice, s.effectivePrice(enriched))
	})

	s.runStage("quality", product.ID, func() {
		enriched.QualityScore = ScoreQuality(enriched)
	})

	return enriched
}

// effectivePrice is the promotion-adjusted current price for the record.
func (s *EnrichmentService) effectivePrice(enriched *domain.EnrichedProduct) float64 {
	if enriched.ParsedPromotion != nil && enriched.ParsedPromotion.Deal.EffectiveUnitPrice > 0 {
		return enriched.ParsedPromotion.Deal.EffectiveUnitPrice
	}
	return enriched.CurrentPrice
}

// runStage isolates one enrichment step: an unexpected internal error is
// logged with record id and stage name, and the stage's output fields
// simply stay unset.
func (s *EnrichmentService) runStage(stage, recordID string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("recordId", recordID).Str("stage", stage).
				Msg("enrichment stage failed")
		}
	}()
	fn()
}

// CalculatePricePerUnit divides a price by the conversion factor to get
// the price per standard unit, clamped to (0, 10000] and rounded to two
// decimals. Non-finite or non-positive input yields 0; the conversion
// factor is floored elsewhere so it can never divide by zero, but a
// defective one still yields 0 rather than garbage.
func CalculatePricePerUnit(price, conversionFactor float64) float64 {
	if !isFinite(price) || price <= 0 || conversionFactor <= 0 {
		return 0
	}

	perUnit := price / conversionFactor
	if !isFinite(perUnit) || perUnit <= 0 {
		return 0
	}
	if perUnit > maxUnitPrice {
		perUnit = maxUnitPrice
	}
	return round2(perUnit)
}

// CalculateDiscountMetrics computes the absolute and percentage discount
// of an effective price against the original. Recorded only when the
// effective price is strictly lower than a positive original price;
// inverted or malformed promotional data yields zeros.
func CalculateDiscountMetrics(originalPrice, effectivePrice float64) (absolute, percentage float64) {
	if !isFinite(originalPrice) || !isFinite(effectivePrice) {
		return 0, 0
	}
	if originalPrice <= 0 || effectivePrice >= originalPrice {
		return 0, 0
	}

	absolute = round2(originalPrice - effectivePrice)
	percentage = math.Round((originalPrice-effectivePrice)/originalPrice*1000) / 10
	return absolute, percentage
}

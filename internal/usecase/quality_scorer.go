package usecase

import (
	"math"

	"github.com/schaplens/engine/internal/domain"
)

// Quality rubric: a base score, fixed increments for enrichment
// completeness, fixed penalties for inconsistencies. The result is a
// 0-100 data-quality indicator, not a business field.
const (
	qualityBase = 40

	bonusImage        = 10
	bonusCategory     = 10
	bonusBrand        = 5
	bonusAvailability = 5
	bonusQuantity     = 10
	bonusConversion   = 10

	penaltyPromoNotCheaper    = 15
	penaltyMissingPromoFields = 10
	penaltyStalePromoFields   = 10
	penaltyPriceDrift         = 10
	penaltyMissingCategory    = 10
	penaltyMissingImage       = 5
	penaltyUnitPriceDiverges  = 10

	// Shops publish their own per-unit prices; more than 10% divergence
	// from ours means a quantity or unit was parsed wrong.
	unitPriceTolerance = 0.10
)

// ScoreQuality rates one enriched record against the completeness
// rubric, clamped to [0, 100].
func ScoreQuality(p *domain.EnrichedProduct) int {
	score := qualityBase

	if p.ImageURL != "" {
		score += bonusImage
	}
	if p.Category != "" {
		score += bonusCategory
	}
	if p.Brand != "" {
		score += bonusBrand
	}
	if p.Available {
		score += bonusAvailability
	}
	if p.QuantityAmount > 0 && p.QuantityUnit != "" {
		score += bonusQuantity
	}
	if p.ConversionFactor > 0 {
		score += bonusConversion
	}

	if p.IsPromotion {
		if p.CurrentPrice >= p.OriginalPrice && p.OriginalPrice > 0 {
			score -= penaltyPromoNotCheaper
		}
		if p.PromotionMechanism == "" && !p.StructuredDiscount {
			score -= penaltyMissingPromoFields
		}
	} else {
		if p.PromotionMechanism != "" || p.ParsedPromotion != nil {
			score -= penaltyStalePromoFields
		}
		if p.OriginalPrice > 0 && p.CurrentPrice != p.OriginalPrice {
			score -= penaltyPriceDrift
		}
	}

	if p.Category == "" {
		score -= penaltyMissingCategory
	}
	if p.ImageURL == "" {
		score -= penaltyMissingImage
	}
	if unitPriceDiverges(p.DeclaredUnitPrice, p.PricePerStandardUnit) {
		score -= penaltyUnitPriceDiverges
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// unitPriceDiverges compares the shop-declared unit price against the
// computed one, when both exist.
func unitPriceDiverges(declared, computed float64) bool {
	if declared <= 0 || computed <= 0 {
		return false
	}
	return math.Abs(declared-computed)/declared > unitPriceTolerance
}

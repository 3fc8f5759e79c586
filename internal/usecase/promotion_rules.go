package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/schaplens/engine/internal/domain"
)

// dealRule couples one promotion pattern with the extractor that turns a
// regex match into a structured deal. The rule list is ordered data, not
// control flow: the parser walks it top to bottom and the first pattern
// that matches a segment wins, so narrower patterns sit above the broad
// ones they overlap with.
type dealRule struct {
	dealType domain.DealType
	pattern  *regexp.Regexp
	extract  func(m []string, originalPrice, currentPrice float64) domain.PromotionMatch
}

var dealRules = []dealRule{
	{
		// "1+1 gratis", "2+1 gratis"
		dealType: domain.DealBuyNGetMFree,
		pattern:  regexp.MustCompile(`(\d+)\s*\+\s*(\d+)\s*gratis`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			paid := parseInt(m[1])
			free := parseInt(m[2])
			total := paid + free
			unit := 0.0
			if total > 0 {
				unit = round2(originalPrice * float64(paid) / float64(total))
			}
			return domain.PromotionMatch{
				Type:                    domain.DealBuyNGetMFree,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        total,
				PaidQuantity:            paid,
				TotalPromotionPrice:     round2(originalPrice * float64(paid)),
				IsMultiPurchaseRequired: true,
			}
		},
	},
	{
		// "3 halen 2 betalen"
		dealType: domain.DealBuyNGetMFree,
		pattern:  regexp.MustCompile(`(\d+)\s+halen[,\s]*(\d+)\s+betalen`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			take := parseInt(m[1])
			pay := parseInt(m[2])
			unit := 0.0
			if take > 0 {
				unit = round2(originalPrice * float64(pay) / float64(take))
			}
			return domain.PromotionMatch{
				Type:                    domain.DealBuyNGetMFree,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        take,
				PaidQuantity:            pay,
				TotalPromotionPrice:     round2(originalPrice * float64(pay)),
				IsMultiPurchaseRequired: take > 1,
			}
		},
	},
	{
		// "2 voor €3", "2 voor 3.00", "6 voor 4,50"
		dealType: domain.DealNForPrice,
		pattern:  regexp.MustCompile(`(\d+)\s+voor\s+€?\s*(\d+(?:[.,]\d+)?)`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			n := parseInt(m[1])
			total := parseAmount(m[2])
			unit := 0.0
			if n > 0 {
				unit = round2(total / float64(n))
			}
			return domain.PromotionMatch{
				Type:                    domain.DealNForPrice,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        n,
				PaidQuantity:            n,
				TotalPromotionPrice:     total,
				IsMultiPurchaseRequired: n > 1,
			}
		},
	},
	{
		// "2e halve prijs", "tweede artikel halve prijs"
		dealType: domain.DealSecondHalfPrice,
		pattern:  regexp.MustCompile(`(?:2e|tweede)\s+(?:artikel\s+)?(?:voor\s+)?halve\s+prijs`),
		extract: func(_ []string, originalPrice, _ float64) domain.PromotionMatch {
			unit := round2(originalPrice * 0.75)
			return domain.PromotionMatch{
				Type:                    domain.DealSecondHalfPrice,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        2,
				PaidQuantity:            2,
				TotalPromotionPrice:     round2(originalPrice * 1.5),
				IsMultiPurchaseRequired: true,
			}
		},
	},
	{
		// "2e gratis", "tweede artikel gratis"
		dealType: domain.DealSecondFree,
		pattern:  regexp.MustCompile(`(?:2e|tweede)\s+(?:artikel\s+)?gratis`),
		extract: func(_ []string, originalPrice, _ float64) domain.PromotionMatch {
			unit := round2(originalPrice * 0.5)
			return domain.PromotionMatch{
				Type:                    domain.DealSecondFree,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        2,
				PaidQuantity:            1,
				TotalPromotionPrice:     round2(originalPrice),
				IsMultiPurchaseRequired: true,
			}
		},
	},
	{
		// "vanaf 3 stuks 20% korting"
		dealType: domain.DealVolumeDiscount,
		pattern:  regexp.MustCompile(`vanaf\s+(\d+)\s+stuks?\s+(\d+(?:[.,]\d+)?)\s*%\s*korting`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			items := parseInt(m[1])
			pct := parseAmount(m[2])
			unit := round2(originalPrice * (1 - pct/100))
			return domain.PromotionMatch{
				Type:                    domain.DealVolumeDiscount,
				EffectiveUnitPrice:      unit,
				EffectiveDiscount:       round2(originalPrice - unit),
				RequiredQuantity:        items,
				PaidQuantity:            items,
				ThresholdItems:          items,
				IsMultiPurchaseRequired: items > 1,
			}
		},
	},
	{
		// "bij besteding vanaf €25", "bij aankoop vanaf 10 euro"
		dealType: domain.DealMinSpend,
		pattern:  regexp.MustCompile(`bij\s+(?:besteding|aankoop)\s+vanaf\s+€?\s*(\d+(?:[.,]\d+)?)`),
		extract: func(m []string, originalPrice, currentPrice float64) domain.PromotionMatch {
			return domain.PromotionMatch{
				Type:               domain.DealMinSpend,
				EffectiveUnitPrice: round2(currentPrice),
				EffectiveDiscount:  round2(originalPrice - currentPrice),
				ThresholdAmount:    parseAmount(m[1]),
			}
		},
	},
	{
		// "25% korting", "12,5% korting"
		dealType: domain.DealPercentageOff,
		pattern:  regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%\s*korting`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			pct := parseAmount(m[1])
			unit := round2(originalPrice * (1 - pct/100))
			return domain.PromotionMatch{
				Type:               domain.DealPercentageOff,
				EffectiveUnitPrice: unit,
				EffectiveDiscount:  round2(originalPrice - unit),
			}
		},
	},
	{
		// "€2 korting", "0,50 korting"
		dealType: domain.DealAmountOff,
		pattern:  regexp.MustCompile(`€?\s*(\d+(?:[.,]\d+)?)\s*(?:euro\s+)?korting`),
		extract: func(m []string, originalPrice, _ float64) domain.PromotionMatch {
			off := parseAmount(m[1])
			unit := originalPrice - off
			if unit < 0 {
				unit = 0
			}
			unit = round2(unit)
			return domain.PromotionMatch{
				Type:               domain.DealAmountOff,
				EffectiveUnitPrice: unit,
				EffectiveDiscount:  round2(originalPrice - unit),
			}
		},
	},
	{
		// "gratis bezorging", "gratis verzending"
		dealType: domain.DealDelivery,
		pattern:  regexp.MustCompile(`gratis\s+(?:bezorging|verzending|thuisbezorging)`),
		extract: func(_ []string, originalPrice, currentPrice float64) domain.PromotionMatch {
			return domain.PromotionMatch{
				Type:               domain.DealDelivery,
				EffectiveUnitPrice: round2(currentPrice),
				EffectiveDiscount:  round2(originalPrice - currentPrice),
			}
		},
	},
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseAmount reads a price or percentage, accepting both the Dutch
// decimal comma and a decimal point.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

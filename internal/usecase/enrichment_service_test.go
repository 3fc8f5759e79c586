package usecase

import (
	"math"
	"testing"

	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/observability"
)

func newTestService(t *testing.T) (*EnrichmentService, *observability.Stats) {
	t.Helper()

	stats := observability.NewStats()
	service, err := NewEnrichmentService(nil, stats, EnrichmentConfig{})
	if err != nil {
		t.Fatalf("NewEnrichmentService() error = %v", err)
	}
	return service, stats
}

func TestEnrichPromotedProduct(t *testing.T) {
	service, _ := newTestService(t)

	enriched := service.Enrich(domain.Product{
		ID:                 "ah-1001",
		Shop:               "ah",
		Title:              "Halfvolle melk",
		ImageURL:           "https://img.example/melk.jpg",
		Available:          true,
		QuantityAmount:     1000,
		QuantityUnit:       "ml",
		OriginalPrice:      2.00,
		CurrentPrice:       2.00,
		IsPromotion:        true,
		PromotionMechanism: "2 voor €3.00",
		RawCategory:        "Zuivel, eieren",
	})

	if enriched.Category != "zuivel-eieren" {
		t.Errorf("category = %q, want zuivel-eieren", enriched.Category)
	}
	if enriched.NormalizedAmount != 1.0 || enriched.NormalizedUnit != domain.UnitLiter {
		t.Errorf("normalized quantity = %v %q, want 1 l", enriched.NormalizedAmount, enriched.NormalizedUnit)
	}
	if enriched.ConversionFactor != 1.0 {
		t.Errorf("conversion factor = %v, want 1.0", enriched.ConversionFactor)
	}
	if enriched.PricePerStandardUnit != 2.00 {
		t.Errorf("price per standard unit = %v, want 2.00", enriched.PricePerStandardUnit)
	}
	// The promotion-adjusted unit price uses the effective deal price.
	if enriched.CurrentPricePerStandardUnit != 1.50 {
		t.Errorf("current price per standard unit = %v, want 1.50", enriched.CurrentPricePerStandardUnit)
	}
	if enriched.ParsedPromotion == nil {
		t.Fatal("parsed promotion missing")
	}
	if enriched.ParsedPromotion.Deal.Type != domain.DealNForPrice {
		t.Errorf("deal type = %q, want n_for_price", enriched.ParsedPromotion.Deal.Type)
	}
	if enriched.DiscountAbsolute != 0.50 {
		t.Errorf("discount absolute = %v, want 0.50", enriched.DiscountAbsolute)
	}
	if enriched.DiscountPercentage != 25.0 {
		t.Errorf("discount percentage = %v, want 25.0", enriched.DiscountPercentage)
	}
	if enriched.QualityScore <= 0 {
		t.Errorf("quality score = %d, want positive", enriched.QualityScore)
	}
}

func TestEnrichStructuredDiscount(t *testing.T) {
	service, stats := newTestService(t)

	enriched := service.Enrich(domain.Product{
		ID:                 "kv-7",
		Shop:               "kruidvat",
		Title:              "Shampoo",
		QuantityAmount:     300,
		QuantityUnit:       "ml",
		OriginalPrice:      4.00,
		CurrentPrice:       3.00,
		IsPromotion:        true,
		StructuredDiscount: true,
		PromotionMechanism: "1+1 gratis", // must be ignored for structured shops
	})

	if enriched.ParsedPromotion == nil {
		t.Fatal("parsed promotion missing")
	}
	deal := enriched.ParsedPromotion.Deal
	if deal.Type != domain.DealAmountOff {
		t.Errorf("deal type = %q, want amount_off", deal.Type)
	}
	if deal.EffectiveUnitPrice != 3.00 || deal.EffectiveDiscount != 1.00 {
		t.Errorf("deal = %v/%v, want 3.00/1.00 from the price fields", deal.EffectiveUnitPrice, deal.EffectiveDiscount)
	}

	// The text parser never ran, so no deal counter moved.
	if snap := stats.DrainStats(); len(snap.DealCounts) != 0 {
		t.Errorf("deal counts = %v, want none", snap.DealCounts)
	}
}

func TestEnrichNonPromotion(t *testing.T) {
	service, _ := newTestService(t)

	enriched := service.Enrich(domain.Product{
		ID:             "j-1",
		Shop:           "jumbo",
		Title:          "Bananen",
		QuantityAmount: 1,
		QuantityUnit:   "kg",
		OriginalPrice:  1.99,
		CurrentPrice:   1.99,
		RawCategory:    "groente fruit",
	})

	if enriched.ParsedPromotion != nil {
		t.Errorf("parsed promotion = %+v, want nil for a non-promotion", enriched.ParsedPromotion)
	}
	if enriched.DiscountAbsolute != 0 || enriched.DiscountPercentage != 0 {
		t.Errorf("discount = %v/%v, want zeros", enriched.DiscountAbsolute, enriched.DiscountPercentage)
	}
	if enriched.PricePerStandardUnit != 1.99 {
		t.Errorf("price per standard unit = %v, want 1.99", enriched.PricePerStandardUnit)
	}
}

func TestEnrichJunkQuantity(t *testing.T) {
	service, _ := newTestService(t)

	// No usable quantity: the record standardizes as a single piece and
	// the unit price falls back to the item price.
	enriched := service.Enrich(domain.Product{
		ID:            "a-1",
		Shop:          "aldi",
		Title:         "Cadeaukaart",
		OriginalPrice: 10.00,
		CurrentPrice:  10.00,
	})

	if enriched.NormalizedUnit != domain.UnitPiece || enriched.ConversionFactor != 1 {
		t.Errorf("standardized = %q/%v, want stuk/1", enriched.NormalizedUnit, enriched.ConversionFactor)
	}
	if enriched.PricePerStandardUnit != 10.00 {
		t.Errorf("price per standard unit = %v, want 10.00", enriched.PricePerStandardUnit)
	}
}

func TestCalculatePricePerUnit(t *testing.T) {
	tests := []struct {
		name             string
		price            float64
		conversionFactor float64
		want             float64
	}{
		{"regular division", 5.00, 2, 2.50},
		{"rounded to cents", 1.00, 3, 0.33},
		{"zero price yields zero", 0, 1, 0},
		{"negative price yields zero", -1, 1, 0},
		{"zero factor yields zero", 10, 0, 0},
		{"negative factor yields zero", 10, -2, 0},
		{"clamped to the ceiling", 50000, 1, 10000},
		{"non-finite price yields zero", math.NaN(), 1, 0},
		{"infinite price yields zero", math.Inf(1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePricePerUnit(tt.price, tt.conversionFactor); got != tt.want {
				t.Errorf("CalculatePricePerUnit(%v, %v) = %v, want %v", tt.price, tt.conversionFactor, got, tt.want)
			}
		})
	}
}

func TestCalculateDiscountMetrics(t *testing.T) {
	tests := []struct {
		name           string
		original       float64
		effective      float64
		wantAbsolute   float64
		wantPercentage float64
	}{
		{"quarter off", 2.00, 1.50, 0.50, 25.0},
		{"third off rounds to one decimal", 3.00, 2.00, 1.00, 33.3},
		{"no discount when equal", 2.00, 2.00, 0, 0},
		{"no discount when inverted", 2.00, 2.50, 0, 0},
		{"no discount without an original price", 0, 1.50, 0, 0},
		{"negative original yields zeros", -2.00, 1.00, 0, 0},
		{"non-finite input yields zeros", math.NaN(), 1.00, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absolute, percentage := CalculateDiscountMetrics(tt.original, tt.effective)
			if absolute != tt.wantAbsolute || percentage != tt.wantPercentage {
				t.Errorf("CalculateDiscountMetrics(%v, %v) = %v/%v, want %v/%v",
					tt.original, tt.effective, absolute, percentage, tt.wantAbsolute, tt.wantPercentage)
			}
		})
	}
}

func TestEnrichAlwaysReturnsRecord(t *testing.T) {
	service, _ := newTestService(t)

	// Even an empty input record yields a structurally complete output.
	enriched := service.Enrich(domain.Product{})
	if enriched == nil {
		t.Fatal("Enrich returned nil")
	}
	if enriched.Category == "" {
		t.Error("category left empty")
	}
	if enriched.QualityScore < 0 || enriched.QualityScore > 100 {
		t.Errorf("quality score = %d, want within [0, 100]", enriched.QualityScore)
	}
}

package usecase

import (
	"math"
	"testing"

	"github.com/schaplens/engine/internal/domain"
)

func TestNormalizeUnitToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"canonical code passes through", "g", domain.UnitGram},
		{"uppercase with whitespace", "  KG ", domain.UnitKilogram},
		{"dutch spelling", "gram", domain.UnitGram},
		{"liter variants", "ltr", domain.UnitLiter},
		{"per prefix stripped", "per stuk", domain.UnitPiece},
		{"multi-pack resolves per-item unit", "6 x 150g", domain.UnitGram},
		{"multi-pack with spaced unit", "4x250 ml", domain.UnitMilliliter},
		{"pack size is pieces", "12-pack", domain.UnitPiece},
		{"container word is pieces", "blikjes", domain.UnitPiece},
		{"wash counts are pieces", "wasbeurten", domain.UnitPiece},
		{"empty input defaults to piece", "", domain.UnitPiece},
		{"unresolvable defaults to piece", "xyzzy", domain.UnitPiece},
		{"punctuation noise", "l.", domain.UnitLiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUnitToken(tt.raw); got != tt.want {
				t.Errorf("NormalizeUnitToken(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyUnit(t *testing.T) {
	tests := []struct {
		code string
		want domain.MeasurementCategory
	}{
		{domain.UnitGram, domain.CategoryWeight},
		{domain.UnitKilogram, domain.CategoryWeight},
		{domain.UnitMilliliter, domain.CategoryVolume},
		{domain.UnitLiter, domain.CategoryVolume},
		{domain.UnitMeter, domain.CategoryLength},
		{domain.UnitSquareMeter, domain.CategoryArea},
		{domain.UnitPiece, domain.CategoryPiece},
		{"unknown", domain.CategoryPiece},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ClassifyUnit(tt.code); got != tt.want {
				t.Errorf("ClassifyUnit(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestStandardize(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   string
		want   domain.StandardizedQuantity
	}{
		{
			name:   "grams to kilograms",
			amount: 1000, code: domain.UnitGram,
			want: domain.StandardizedQuantity{RefAmount: 1.0, RefUnit: domain.UnitKilogram, ConversionFactor: 1.0},
		},
		{
			name:   "partial kilogram",
			amount: 250, code: domain.UnitGram,
			want: domain.StandardizedQuantity{RefAmount: 0.25, RefUnit: domain.UnitKilogram, ConversionFactor: 0.25},
		},
		{
			name:   "milliliters to liters",
			amount: 500, code: domain.UnitMilliliter,
			want: domain.StandardizedQuantity{RefAmount: 0.5, RefUnit: domain.UnitLiter, ConversionFactor: 0.5},
		},
		{
			name:   "centiliters to liters",
			amount: 33, code: domain.UnitCentiliter,
			want: domain.StandardizedQuantity{RefAmount: 0.33, RefUnit: domain.UnitLiter, ConversionFactor: 0.33},
		},
		{
			name:   "square centimeters to square meters",
			amount: 5000, code: domain.UnitSquareCm,
			want: domain.StandardizedQuantity{RefAmount: 0.5, RefUnit: domain.UnitSquareMeter, ConversionFactor: 0.5},
		},
		{
			name:   "pack of pieces keeps the count as divisor",
			amount: 6, code: domain.UnitPiece,
			want: domain.StandardizedQuantity{RefAmount: 1, RefUnit: domain.UnitPiece, ConversionFactor: 6},
		},
		{
			name:   "single piece",
			amount: 1, code: domain.UnitPiece,
			want: domain.StandardizedQuantity{RefAmount: 1, RefUnit: domain.UnitPiece, ConversionFactor: 1},
		},
		{
			name:   "zero piece count floors at one",
			amount: 0, code: domain.UnitPiece,
			want: domain.StandardizedQuantity{RefAmount: 1, RefUnit: domain.UnitPiece, ConversionFactor: 1},
		},
		{
			name:   "tiny measurable quantity keeps a usable divisor",
			amount: 1, code: domain.UnitMillimeter,
			want: domain.StandardizedQuantity{RefAmount: 0.001, RefUnit: domain.UnitMeter, ConversionFactor: 0.001},
		},
		{
			name:   "negative amount degrades to a single piece",
			amount: -5, code: domain.UnitGram,
			want: domain.StandardizedQuantity{RefAmount: 1, RefUnit: domain.UnitPiece, ConversionFactor: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Standardize(tt.amount, tt.code)
			if got != tt.want {
				t.Errorf("Standardize(%v, %q) = %+v, want %+v", tt.amount, tt.code, got, tt.want)
			}
		})
	}

	t.Run("non-finite amount degrades to a single piece", func(t *testing.T) {
		for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			got := Standardize(amount, domain.UnitGram)
			if got.RefUnit != domain.UnitPiece || got.ConversionFactor != 1 {
				t.Errorf("Standardize(%v, g) = %+v, want single piece", amount, got)
			}
		}
	})

	t.Run("conversion factor is always positive", func(t *testing.T) {
		for _, code := range []string{domain.UnitGram, domain.UnitMilliliter, domain.UnitMillimeter, domain.UnitPiece} {
			for _, amount := range []float64{0, 0.0001, 1, 1e9} {
				if got := Standardize(amount, code); got.ConversionFactor <= 0 {
					t.Errorf("Standardize(%v, %q).ConversionFactor = %v, want > 0", amount, code, got.ConversionFactor)
				}
			}
		}
	})
}

package usecase

import (
	"math"
	"regexp"
	"strings"

	"github.com/schaplens/engine/internal/domain"
)

// Package-level compiled regex patterns for unit token handling
var (
	unitPunctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	unitSpacesRegex      = regexp.MustCompile(`\s+`)

	// Multi-pack notation like "6 x 150g" or "4x250 ml": the per-item
	// unit is what matters for standardization.
	multiPackRegex = regexp.MustCompile(`^(\d+)\s*x\s*(\d+(?:[.,]\d+)?)?\s*(\p{L}+[\p{L}\p{N}]*)$`)

	// Numeric pack sizes like "12-pack", "6 pak", "10 stuks"
	packSizeRegex = regexp.MustCompile(`^\d+[\s-]*(pack|pak|stuks?|st|rollen|zakjes|tabletten|capsules)$`)
)

// Category prefix heuristics for codes missing from the factor tables
var categoryPrefixRegexes = []struct {
	category domain.MeasurementCategory
	pattern  *regexp.Regexp
}{
	{domain.CategoryArea, regexp.MustCompile(`^(m2|cm2|mm2|vierkante)`)},
	{domain.CategoryWeight, regexp.MustCompile(`^(mg|g|kg|gr|kilo|gram|pond|ons)`)},
	{domain.CategoryVolume, regexp.MustCompile(`^(ml|cl|dl|l|lit|liter)`)},
	{domain.CategoryLength, regexp.MustCompile(`^(mm|cm|m|met|meter)`)},
}

// unitAlias maps one raw spelling onto a canonical unit code. The table
// is a slice so the substring-contains fallback scans it in definition
// order, keeping resolution deterministic.
type unitAlias struct {
	spelling string
	code     string
}

var unitAliasList = []unitAlias{
	// weight
	{"g", domain.UnitGram},
	{"gr", domain.UnitGram},
	{"gram", domain.UnitGram},
	{"grams", domain.UnitGram},
	{"grammen", domain.UnitGram},
	{"kg", domain.UnitKilogram},
	{"kilo", domain.UnitKilogram},
	{"kilogram", domain.UnitKilogram},
	{"kilo s", domain.UnitKilogram},
	{"mg", domain.UnitMilligram},
	{"milligram", domain.UnitMilligram},
	// volume
	{"ml", domain.UnitMilliliter},
	{"milliliter", domain.UnitMilliliter},
	{"mililiter", domain.UnitMilliliter},
	{"cl", domain.UnitCentiliter},
	{"centiliter", domain.UnitCentiliter},
	{"dl", domain.UnitDeciliter},
	{"deciliter", domain.UnitDeciliter},
	{"l", domain.UnitLiter},
	{"lt", domain.UnitLiter},
	{"ltr", domain.UnitLiter},
	{"liter", domain.UnitLiter},
	{"liters", domain.UnitLiter},
	{"litre", domain.UnitLiter},
	// length
	{"mm", domain.UnitMillimeter},
	{"millimeter", domain.UnitMillimeter},
	{"cm", domain.UnitCentimeter},
	{"centimeter", domain.UnitCentimeter},
	{"m", domain.UnitMeter},
	{"mtr", domain.UnitMeter},
	{"meter", domain.UnitMeter},
	{"meters", domain.UnitMeter},
	// area
	{"m2", domain.UnitSquareMeter},
	{"vierkante meter", domain.UnitSquareMeter},
	{"cm2", domain.UnitSquareCm},
	{"vierkante centimeter", domain.UnitSquareCm},
	// piece
	{"stuk", domain.UnitPiece},
	{"stuks", domain.UnitPiece},
	{"st", domain.UnitPiece},
	{"stk", domain.UnitPiece},
	{"piece", domain.UnitPiece},
	{"pieces", domain.UnitPiece},
	{"pcs", domain.UnitPiece},
	{"stuk s", domain.UnitPiece},
	{"per stuk", domain.UnitPiece},
	{"pak", domain.UnitPiece},
	{"pakken", domain.UnitPiece},
	{"pack", domain.UnitPiece},
	{"doos", domain.UnitPiece},
	{"dozen", domain.UnitPiece},
	{"zak", domain.UnitPiece},
	{"zakken", domain.UnitPiece},
	{"zakje", domain.UnitPiece},
	{"zakjes", domain.UnitPiece},
	{"fles", domain.UnitPiece},
	{"flessen", domain.UnitPiece},
	{"flesje", domain.UnitPiece},
	{"flesjes", domain.UnitPiece},
	{"blik", domain.UnitPiece},
	{"blikken", domain.UnitPiece},
	{"blikje", domain.UnitPiece},
	{"blikjes", domain.UnitPiece},
	{"bus", domain.UnitPiece},
	{"bussen", domain.UnitPiece},
	{"pot", domain.UnitPiece},
	{"potten", domain.UnitPiece},
	{"potje", domain.UnitPiece},
	{"potjes", domain.UnitPiece},
	{"kuipje", domain.UnitPiece},
	{"bakje", domain.UnitPiece},
	{"beker", domain.UnitPiece},
	{"bekers", domain.UnitPiece},
	{"tube", domain.UnitPiece},
	{"tubes", domain.UnitPiece},
	{"rol", domain.UnitPiece},
	{"rollen", domain.UnitPiece},
	{"vel", domain.UnitPiece},
	{"vellen", domain.UnitPiece},
	{"tablet", domain.UnitPiece},
	{"tabletten", domain.UnitPiece},
	{"capsule", domain.UnitPiece},
	{"capsules", domain.UnitPiece},
	{"dragees", domain.UnitPiece},
	{"sachet", domain.UnitPiece},
	{"sachets", domain.UnitPiece},
	{"wasbeurten", domain.UnitPiece},
	{"plakjes", domain.UnitPiece},
	{"sneetjes", domain.UnitPiece},
	{"bos", domain.UnitPiece},
	{"bosje", domain.UnitPiece},
	{"tros", domain.UnitPiece},
	{"krop", domain.UnitPiece},
	{"set", domain.UnitPiece},
	{"paar", domain.UnitPiece},
	{"portie", domain.UnitPiece},
	{"porties", domain.UnitPiece},
	{"eenheid", domain.UnitPiece},
	{"exemplaar", domain.UnitPiece},
}

var unitAliasMap = func() map[string]string {
	m := make(map[string]string, len(unitAliasList))
	for _, a := range unitAliasList {
		m[a.spelling] = a.code
	}
	return m
}()

// conversionFactors expresses every non-base code of a measurement
// category in that category's base unit (grams, milliliters,
// millimeters, square millimeters). Piece has no sub-units.
var conversionFactors = map[domain.MeasurementCategory]map[string]float64{
	domain.CategoryWeight: {
		domain.UnitMilligram: 0.001,
		domain.UnitGram:      1,
		domain.UnitKilogram:  1000,
	},
	domain.CategoryVolume: {
		domain.UnitMilliliter: 1,
		domain.UnitCentiliter: 10,
		domain.UnitDeciliter:  100,
		domain.UnitLiter:      1000,
	},
	domain.CategoryLength: {
		domain.UnitMillimeter: 1,
		domain.UnitCentimeter: 10,
		domain.UnitMeter:      1000,
	},
	domain.CategoryArea: {
		domain.UnitSquareCm:    100,
		domain.UnitSquareMeter: 1e6,
	},
}

// baseToReference is the divisor from a category's base unit to its
// reference unit used for price comparison (kg, l, m, m2).
var baseToReference = map[domain.MeasurementCategory]float64{
	domain.CategoryWeight: 1000,
	domain.CategoryVolume: 1000,
	domain.CategoryLength: 1000,
	domain.CategoryArea:   1e6,
}

var referenceUnits = map[domain.MeasurementCategory]string{
	domain.CategoryWeight: domain.UnitKilogram,
	domain.CategoryVolume: domain.UnitLiter,
	domain.CategoryLength: domain.UnitMeter,
	domain.CategoryArea:   domain.UnitSquareMeter,
	domain.CategoryPiece:  domain.UnitPiece,
}

// minConversionFactor floors the divisor so a degenerate quantity can
// never cause a division by zero downstream.
const minConversionFactor = 1e-3

// NormalizeUnitToken resolves a raw unit spelling to its canonical code.
// Total: anything unresolvable becomes the piece code.
func NormalizeUnitToken(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.TrimPrefix(token, "per ")
	token = unitPunctuationRegex.ReplaceAllString(token, " ")
	token = strings.TrimSpace(unitSpacesRegex.ReplaceAllString(token, " "))

	if token == "" {
		return domain.UnitPiece
	}

	// Multi-pack notation resolves to the per-item unit
	if m := multiPackRegex.FindStringSubmatch(token); m != nil {
		return NormalizeUnitToken(m[3])
	}

	if code, ok := unitAliasMap[token]; ok {
		return code
	}

	// Substring fallback, table order wins
	for _, a := range unitAliasList {
		if len(a.spelling) >= 2 && strings.Contains(token, a.spelling) {
			return a.code
		}
	}

	if packSizeRegex.MatchString(token) {
		return domain.UnitPiece
	}

	return domain.UnitPiece
}

// ClassifyUnit maps a unit code to its measurement category. Unknown
// codes fall through prefix heuristics and default to piece.
func ClassifyUnit(code string) domain.MeasurementCategory {
	if code == domain.UnitPiece {
		return domain.CategoryPiece
	}

	for category, factors := range conversionFactors {
		if _, ok := factors[code]; ok {
			return category
		}
	}

	for _, h := range categoryPrefixRegexes {
		if h.pattern.MatchString(code) {
			return h.category
		}
	}

	return domain.CategoryPiece
}

// Standardize converts an amount in the given unit code to the category
// reference unit.
//
// For piece products RefAmount is fixed at 1 and ConversionFactor is the
// pack count: dividing a pack price by it yields the per-piece price,
// just as dividing by the reference amount yields the per-kg price for
// weight. That asymmetry is deliberate and load-bearing.
func Standardize(amount float64, code string) domain.StandardizedQuantity {
	category := ClassifyUnit(code)

	if category == domain.CategoryPiece {
		factor := amount
		if !isFinite(factor) || factor < 1 {
			factor = 1
		}
		return domain.StandardizedQuantity{
			RefAmount:        1,
			RefUnit:          domain.UnitPiece,
			ConversionFactor: factor,
		}
	}

	factor, ok := conversionFactors[category][code]
	if !ok || !isFinite(amount) || amount < 0 {
		// Unknown code inside a known category, or junk amount: treat
		// as a single piece so the record still standardizes.
		return domain.StandardizedQuantity{
			RefAmount:        1,
			RefUnit:          domain.UnitPiece,
			ConversionFactor: 1,
		}
	}

	refAmount := amount * factor / baseToReference[category]
	refAmount = round3(refAmount)

	conversion := refAmount
	if conversion < minConversionFactor {
		conversion = minConversionFactor
	}

	return domain.StandardizedQuantity{
		RefAmount:        refAmount,
		RefUnit:          referenceUnits[category],
		ConversionFactor: conversion,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

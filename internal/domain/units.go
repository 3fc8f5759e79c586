package domain

// MeasurementCategory groups unit codes that convert into one another.
type MeasurementCategory string

const (
	CategoryWeight MeasurementCategory = "weight"
	CategoryVolume MeasurementCategory = "volume"
	CategoryLength MeasurementCategory = "length"
	CategoryArea   MeasurementCategory = "area"
	CategoryPiece  MeasurementCategory = "piece"
)

// Canonical unit codes. UnitPiece ("stuk") is the default for anything
// that does not resolve to a measurable unit.
const (
	UnitGram        = "g"
	UnitKilogram    = "kg"
	UnitMilligram   = "mg"
	UnitMilliliter  = "ml"
	UnitCentiliter  = "cl"
	UnitDeciliter   = "dl"
	UnitLiter       = "l"
	UnitMillimeter  = "mm"
	UnitCentimeter  = "cm"
	UnitMeter       = "m"
	UnitSquareMeter = "m2"
	UnitSquareCm    = "cm2"
	UnitPiece       = "stuk"
)

// StandardizedQuantity is a quantity converted to the reference unit of
// its measurement category (kg, l, m, m2 or piece).
//
// ConversionFactor is the divisor that turns a product price into a
// price per reference unit. For piece products it equals the pack count
// rather than the reference amount; the shared price/ConversionFactor
// formula relies on that.
type StandardizedQuantity struct {
	RefAmount        float64 `json:"refAmount"`
	RefUnit          string  `json:"refUnit"`
	ConversionFactor float64 `json:"conversionFactor"`
}

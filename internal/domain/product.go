package domain

// Product is one shop-adapted feed record, the minimum shape the engine
// consumes. Shop adapters (out of scope here) are responsible for mapping
// each shop's raw feed onto this struct.
type Product struct {
	ID                 string  `json:"id"`
	Shop               string  `json:"shop"` // e.g. "ah", "jumbo", "plus"
	Title              string  `json:"title"`
	Brand              string  `json:"brand,omitempty"`
	ImageURL           string  `json:"imageUrl,omitempty"`
	Available          bool    `json:"available"`
	QuantityAmount     float64 `json:"quantityAmount"`
	QuantityUnit       string  `json:"quantityUnit"`
	OriginalPrice      float64 `json:"originalPrice"`
	CurrentPrice       float64 `json:"currentPrice"`
	IsPromotion        bool    `json:"isPromotion"`
	PromotionMechanism string  `json:"promotionMechanism,omitempty"`
	// StructuredDiscount marks shops that deliver machine-readable discount
	// metadata instead of free-text labels. For those the original/current
	// prices are authoritative and the text parser is skipped.
	StructuredDiscount bool    `json:"structuredDiscount,omitempty"`
	RawCategory        string  `json:"rawCategory,omitempty"`
	DeclaredUnitPrice  float64 `json:"declaredUnitPrice,omitempty"` // shop's own price-per-unit, if published
}

// EnrichedProduct is the engine's output: the base record plus normalized
// quantity, comparable prices, discount metrics, the parsed promotion and
// a data-quality score.
type EnrichedProduct struct {
	Product

	Category string `json:"category"`

	NormalizedAmount float64 `json:"normalizedAmount,omitempty"`
	NormalizedUnit   string  `json:"normalizedUnit,omitempty"`
	ConversionFactor float64 `json:"conversionFactor,omitempty"`

	PricePerStandardUnit        float64 `json:"pricePerStandardUnit,omitempty"`
	CurrentPricePerStandardUnit float64 `json:"currentPricePerStandardUnit,omitempty"`

	DiscountAbsolute   float64 `json:"discountAbsolute,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`

	ParsedPromotion *PromotionResult `json:"parsedPromotion,omitempty"`

	QualityScore int `json:"qualityScore"`
}

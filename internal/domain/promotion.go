package domain

// DealType tags the promotion family a segment was matched against.
type DealType string

const (
	DealNForPrice       DealType = "n_for_price"       // "2 voor €3"
	DealBuyNGetMFree    DealType = "buy_n_get_m_free"  // "1+1 gratis"
	DealPercentageOff   DealType = "percentage_off"    // "25% korting"
	DealAmountOff       DealType = "amount_off"        // "€2 korting"
	DealSecondHalfPrice DealType = "second_half_price" // "2e halve prijs"
	DealSecondFree      DealType = "second_free"       // "2e gratis"
	DealVolumeDiscount  DealType = "volume_discount"   // "vanaf 3 stuks 20% korting"
	DealMinSpend        DealType = "min_spend"         // "bij besteding vanaf €25"
	DealDelivery        DealType = "delivery"          // "gratis bezorging"
	DealUnknown         DealType = "unknown"
)

// PromotionMatch is the structured interpretation of one deal segment.
type PromotionMatch struct {
	Type                    DealType `json:"type"`
	EffectiveUnitPrice      float64  `json:"effectiveUnitPrice"`
	EffectiveDiscount       float64  `json:"effectiveDiscount"`
	RequiredQuantity        int      `json:"requiredQuantity,omitempty"`
	TotalPromotionPrice     float64  `json:"totalPromotionPrice,omitempty"`
	PaidQuantity            int      `json:"paidQuantity,omitempty"`
	IsMultiPurchaseRequired bool     `json:"isMultiPurchaseRequired,omitempty"`
	ThresholdItems          int      `json:"thresholdItems,omitempty"`
	ThresholdAmount         float64  `json:"thresholdAmount,omitempty"`
}

// PromotionResult is what the parser returns for a full mechanism label.
// A single-segment label yields Deal only. A multi-segment label yields a
// composite: SubDeals holds every per-segment match in label order and
// Deal carries the first segment as the headline; the sub-deals are never
// combined into one effective price.
type PromotionResult struct {
	Deal     PromotionMatch   `json:"deal"`
	SubDeals []PromotionMatch `json:"subDeals,omitempty"`
}

// IsComposite reports whether the label contained more than one deal segment.
func (r *PromotionResult) IsComposite() bool {
	return len(r.SubDeals) > 1
}

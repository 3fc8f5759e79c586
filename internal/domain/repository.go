package domain

import (
	"context"
	"time"
)

// CategoryPredictor is the injected ML-prediction capability: a pure
// in-memory lookup keyed by the exact product title. A nil predictor
// simply disables the ML tier.
type CategoryPredictor interface {
	Predict(title string) (category string, confidence float64, ok bool)
}

// FallbackEntry is one observability record appended when a resolution
// fell through to the ML/fuzzy tiers or a promotion label failed to
// parse. Entries feed later curation of the mapping tables.
type FallbackEntry struct {
	Timestamp      time.Time   `json:"timestamp"`
	Kind           string      `json:"kind"` // "category" or "promotion"
	Shop           string      `json:"shop"`
	RawLabel       string      `json:"rawLabel,omitempty"`
	Title          string      `json:"title,omitempty"`
	MLPrediction   string      `json:"mlPrediction,omitempty"`
	ChosenCategory string      `json:"chosenCategory,omitempty"`
	Tier           MappingTier `json:"tier,omitempty"`
	RawText        string      `json:"rawText,omitempty"`
	OriginalPrice  float64     `json:"originalPrice,omitempty"`
	CurrentPrice   float64     `json:"currentPrice,omitempty"`
}

// ProductStore persists enriched records and drained fallback entries.
// Pure consumer of the engine's output shape.
type ProductStore interface {
	SaveEnriched(ctx context.Context, p *EnrichedProduct) error
	SaveFallbackEntries(ctx context.Context, entries []FallbackEntry) error
	Close() error
}

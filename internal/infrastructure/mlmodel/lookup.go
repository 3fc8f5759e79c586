package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/schaplens/engine/internal/domain"
)

// prediction mirrors one entry of the batch categorizer's output file:
// a map from the exact product title to the predicted category and the
// model's confidence. Extra fields in the file are ignored.
type prediction struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Lookup is a file-backed, read-only prediction table implementing the
// CategoryPredictor capability. It is loaded once before the engine
// runs; lookups are pure in-memory reads.
type Lookup struct {
	predictions map[string]prediction
}

// Load reads a prediction file produced by the batch categorizer.
func Load(path string) (*Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prediction file: %w", err)
	}

	var predictions map[string]prediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPredictionFileInvalid, err)
	}

	// Entries without a category are model noise, drop them up front.
	for title, p := range predictions {
		if p.Category == "" {
			delete(predictions, title)
		}
	}

	log.Info().Int("predictions", len(predictions)).Str("path", path).
		Msg("loaded category prediction table")

	return &Lookup{predictions: predictions}, nil
}

// Predict returns the model's category and confidence for an exact
// title, or ok=false when the title was never categorized.
func (l *Lookup) Predict(title string) (string, float64, bool) {
	p, ok := l.predictions[title]
	if !ok {
		return "", 0, false
	}
	return p.Category, p.Confidence, true
}

// Size returns the number of loaded predictions.
func (l *Lookup) Size() int {
	return len(l.predictions)
}

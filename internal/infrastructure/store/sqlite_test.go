package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schaplens/engine/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEnriched() *domain.EnrichedProduct {
	return &domain.EnrichedProduct{
		Product: domain.Product{
			ID:            "ah-1001",
			Shop:          "ah",
			Title:         "Halfvolle melk",
			OriginalPrice: 2.00,
			CurrentPrice:  1.50,
			IsPromotion:   true,
		},
		Category:             "zuivel-eieren",
		NormalizedAmount:     1.0,
		NormalizedUnit:       domain.UnitLiter,
		ConversionFactor:     1.0,
		PricePerStandardUnit: 2.00,
		DiscountAbsolute:     0.50,
		DiscountPercentage:   25.0,
		ParsedPromotion: &domain.PromotionResult{
			Deal: domain.PromotionMatch{
				Type:               domain.DealNForPrice,
				EffectiveUnitPrice: 1.50,
				EffectiveDiscount:  0.50,
			},
		},
		QualityScore: 85,
	}
}

func TestSaveEnriched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEnriched(ctx, sampleEnriched()))

	count, err := s.CountEnriched(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveEnrichedUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleEnriched()
	require.NoError(t, s.SaveEnriched(ctx, first))

	// Same (shop, id) with fresh prices replaces the row.
	second := sampleEnriched()
	second.CurrentPrice = 1.25
	second.QualityScore = 90
	require.NoError(t, s.SaveEnriched(ctx, second))

	count, err := s.CountEnriched(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveEnrichedWithoutPromotion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := sampleEnriched()
	record.IsPromotion = false
	record.ParsedPromotion = nil

	require.NoError(t, s.SaveEnriched(ctx, record))

	count, err := s.CountEnriched(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveFallbackEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []domain.FallbackEntry{
		{
			Timestamp:      time.Now(),
			Kind:           "category",
			Shop:           "ah",
			RawLabel:       "qqwwzz",
			Title:          "Mystery item",
			ChosenCategory: "overig",
			Tier:           domain.TierFuzzy,
		},
		{
			Timestamp:     time.Now(),
			Kind:          "promotion",
			Shop:          "jumbo",
			RawText:       "mega deal!!",
			OriginalPrice: 2.50,
			CurrentPrice:  2.00,
		},
	}

	require.NoError(t, s.SaveFallbackEntries(ctx, entries))

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fallback_entries`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSaveFallbackEntriesEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.SaveFallbackEntries(context.Background(), nil))
}

func TestStoreClosed(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.SaveEnriched(context.Background(), sampleEnriched()), domain.ErrStoreClosed)
	assert.ErrorIs(t, s.SaveFallbackEntries(context.Background(), []domain.FallbackEntry{{Kind: "category"}}), domain.ErrStoreClosed)

	// Double close is harmless.
	assert.NoError(t, s.Close())
}

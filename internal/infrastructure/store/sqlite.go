package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/schaplens/engine/internal/domain"
)

// SQLiteStore persists enriched records and drained fallback-log entries.
// It is a pure consumer of the engine's output: nothing here feeds back
// into enrichment.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS enriched_products (
		id TEXT NOT NULL,
		shop TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		normalized_amount REAL,
		normalized_unit TEXT,
		conversion_factor REAL,
		original_price REAL,
		current_price REAL,
		price_per_standard_unit REAL,
		current_price_per_standard_unit REAL,
		discount_absolute REAL,
		discount_percentage REAL,
		is_promotion INTEGER NOT NULL DEFAULT 0,
		parsed_promotion TEXT,
		quality_score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (shop, id)
	);

	CREATE TABLE IF NOT EXISTS fallback_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at TIMESTAMP NOT NULL,
		kind TEXT NOT NULL,
		shop TEXT,
		raw_label TEXT,
		title TEXT,
		ml_prediction TEXT,
		chosen_category TEXT,
		tier TEXT,
		raw_text TEXT,
		original_price REAL,
		current_price REAL
	);

	CREATE INDEX IF NOT EXISTS idx_enriched_category ON enriched_products(category);
	CREATE INDEX IF NOT EXISTS idx_fallback_kind ON fallback_entries(kind);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SaveEnriched upserts one enriched record keyed by (shop, id).
func (s *SQLiteStore) SaveEnriched(ctx context.Context, p *domain.EnrichedProduct) error {
	if s.isClosed() {
		return domain.ErrStoreClosed
	}

	var promotionJSON sql.NullString
	if p.ParsedPromotion != nil {
		data, err := json.Marshal(p.ParsedPromotion)
		if err != nil {
			return fmt.Errorf("failed to encode promotion: %w", err)
		}
		promotionJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enriched_products (
			id, shop, title, category,
			normalized_amount, normalized_unit, conversion_factor,
			original_price, current_price,
			price_per_standard_unit, current_price_per_standard_unit,
			discount_absolute, discount_percentage,
			is_promotion, parsed_promotion, quality_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (shop, id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			normalized_amount = excluded.normalized_amount,
			normalized_unit = excluded.normalized_unit,
			conversion_factor = excluded.conversion_factor,
			original_price = excluded.original_price,
			current_price = excluded.current_price,
			price_per_standard_unit = excluded.price_per_standard_unit,
			current_price_per_standard_unit = excluded.current_price_per_standard_unit,
			discount_absolute = excluded.discount_absolute,
			discount_percentage = excluded.discount_percentage,
			is_promotion = excluded.is_promotion,
			parsed_promotion = excluded.parsed_promotion,
			quality_score = excluded.quality_score`,
		p.ID, p.Shop, p.Title, p.Category,
		p.NormalizedAmount, p.NormalizedUnit, p.ConversionFactor,
		p.OriginalPrice, p.CurrentPrice,
		p.PricePerStandardUnit, p.CurrentPricePerStandardUnit,
		p.DiscountAbsolute, p.DiscountPercentage,
		p.IsPromotion, promotionJSON, p.QualityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to save enriched product %s/%s: %w", p.Shop, p.ID, err)
	}
	return nil
}

// SaveFallbackEntries appends drained fallback-log entries in one
// transaction.
func (s *SQLiteStore) SaveFallbackEntries(ctx context.Context, entries []domain.FallbackEntry) error {
	if s.isClosed() {
		return domain.ErrStoreClosed
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fallback_entries (
			recorded_at, kind, shop, raw_label, title,
			ml_prediction, chosen_category, tier,
			raw_text, original_price, current_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.Timestamp, e.Kind, e.Shop, e.RawLabel, e.Title,
			e.MLPrediction, e.ChosenCategory, string(e.Tier),
			e.RawText, e.OriginalPrice, e.CurrentPrice,
		); err != nil {
			return fmt.Errorf("failed to insert fallback entry: %w", err)
		}
	}

	return tx.Commit()
}

// CountEnriched returns the number of stored enriched records.
func (s *SQLiteStore) CountEnriched(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enriched_products`).Scan(&n)
	return n, err
}

// Close closes the underlying database. Further use returns ErrStoreClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

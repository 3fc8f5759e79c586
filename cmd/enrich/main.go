// Command enrich runs the enrichment engine over a scraped feed file and
// persists the results, for offline batch runs outside the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/schaplens/engine/config"
	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/infrastructure/mlmodel"
	"github.com/schaplens/engine/internal/infrastructure/store"
	"github.com/schaplens/engine/internal/observability"
	"github.com/schaplens/engine/internal/usecase"
)

func main() {
	var (
		inputPath = flag.String("input", "", "path to a JSON feed file (array of product records)")
		dbPath    = flag.String("db", "", "sqlite database path (overrides configuration)")
		workers   = flag.Int("workers", runtime.NumCPU(), "number of concurrent enrichment workers")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *inputPath == "" {
		log.Fatal().Msg("missing required -input flag")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *dbPath == "" {
		*dbPath = cfg.Store.Path
	}

	products, err := readFeed(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *inputPath).Msg("failed to read feed")
	}
	log.Info().Int("products", len(products)).Str("path", *inputPath).Msg("feed loaded")

	var predictor domain.CategoryPredictor
	if cfg.Predictions.Path != "" {
		lookup, err := mlmodel.Load(cfg.Predictions.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load prediction table")
		}
		predictor = lookup
	}

	stats := observability.NewStats()
	service, err := usecase.NewEnrichmentService(predictor, stats, usecase.EnrichmentConfig{
		Resolver: usecase.ResolverConfig{
			MLConfidenceThreshold:        cfg.Engine.MLConfidenceThreshold,
			MarketingConfidenceThreshold: cfg.Engine.MarketingConfidenceThreshold,
			DefaultCategory:              cfg.Engine.DefaultCategory,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build enrichment service")
	}

	db, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open store")
	}
	defer db.Close()

	ctx := context.Background()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, product := range products {
		product := product
		g.Go(func() error {
			return db.SaveEnriched(ctx, service.Enrich(product))
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("enrichment run failed")
	}

	if entries := stats.DrainFallback(); len(entries) > 0 {
		if err := db.SaveFallbackEntries(ctx, entries); err != nil {
			log.Error().Err(err).Msg("failed to persist fallback log")
		} else {
			log.Info().Int("entries", len(entries)).Msg("fallback log persisted")
		}
	}

	snap := stats.DrainStats()
	total, err := db.CountEnriched(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count stored records")
	}

	log.Info().
		Int("enriched", len(products)).
		Int("stored", total).
		Interface("tiers", snap.TierCounts).
		Interface("deals", snap.DealCounts).
		Msg("enrichment run complete")
}

func readFeed(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/schaplens/engine/config"
	httpdelivery "github.com/schaplens/engine/internal/delivery/http"
	"github.com/schaplens/engine/internal/domain"
	"github.com/schaplens/engine/internal/infrastructure/mlmodel"
	"github.com/schaplens/engine/internal/observability"
	"github.com/schaplens/engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Server.Environment)

	var predictor domain.CategoryPredictor
	if cfg.Predictions.Path != "" {
		lookup, err := mlmodel.Load(cfg.Predictions.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Predictions.Path).
				Msg("failed to load prediction table")
		}
		predictor = lookup
	} else {
		log.Warn().Msg("no prediction table configured, ml resolution tier disabled")
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

	handler := httpdelivery.NewHandler(service, stats)
	router := httpdelivery.SetupRouter(cfg, handler)

	log.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).
		Msg("starting enrichment server")

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lbakerr/cinematch/internal/cache"
	"github.com/lbakerr/cinematch/internal/config"
	"github.com/lbakerr/cinematch/internal/engine"
	"github.com/lbakerr/cinematch/internal/handler"
	"github.com/lbakerr/cinematch/internal/importer"
	"github.com/lbakerr/cinematch/internal/library"
	"github.com/lbakerr/cinematch/internal/logging"
	"github.com/lbakerr/cinematch/internal/router"
	"github.com/lbakerr/cinematch/internal/service"
	"github.com/lbakerr/cinematch/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		boot := logging.Init("info", "console")
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	// ------------ Metadata client ---------------
	tmdbClient := tmdb.New(tmdb.Config{
		APIKey:       cfg.TMDBAPIKey,
		BaseURL:      cfg.TMDBBaseURL,
		ImageBaseURL: cfg.TMDBImageBaseURL,
		CacheTTL:     cfg.CacheTTL,
		HTTPTimeout:  cfg.HTTPTimeout,
		MaxRetries:   cfg.MaxRetries,
	}, logger)

	// ------------ Redis (optional) ---------------
	var respCache *cache.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse redis url")
		}
		respCache = cache.New(redis.NewClient(opts), 0)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := respCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, running without response cache")
			respCache = nil
		} else {
			logger.Info().Msg("connected to Redis")
		}
		cancel()
	}

	// ------------ Core wiring ---------------
	lib := library.New()
	eng := engine.New(tmdbClient, cfg.CandidatePoolSize, logger)
	imp := importer.New(tmdbClient, cfg.ImportConcurrency, logger)
	svc := service.New(lib, eng, tmdbClient, imp, respCache, logger)

	// ---------------- Server --------------------
	h := handler.New(svc, cfg.MaxUploadSize)
	r := router.Setup(h)

	logger.Info().Int("port", cfg.Port).Msg("server running")
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fixmycity/backend/internal/config"
	"github.com/fixmycity/backend/internal/db"
	"github.com/fixmycity/backend/internal/geocode"
	"github.com/fixmycity/backend/internal/hotspot"
	httpapi "github.com/fixmycity/backend/internal/http"
	"github.com/fixmycity/backend/internal/observability"
	"github.com/fixmycity/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "fixmycity-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate db")
	}

	clock := clockwork.NewRealClock()
	engine, err := hotspot.New(hotspot.Config{
		Precision: cfg.GridPrecision,
		Workers:   cfg.ScoreWorkers,
		Clock:     clock,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid engine configuration")
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	resolver := &geocode.Resolver{
		Geocoder: &geocode.NominatimGeocoder{
			BaseURL:     cfg.GeocodeURL,
			UserAgent:   cfg.GeocodeUserAgent,
			MinInterval: cfg.GeocodeMinInterval,
			Clock:       clock,
		},
		City:       cfg.GeocodeCity,
		Country:    cfg.GeocodeCountry,
		DefaultLat: cfg.DefaultLat,
		DefaultLon: cfg.DefaultLon,
		Metrics:    metrics,
		Logger:     logger.With().Str("component", "geocode").Logger(),
	}

	deps := httpapi.Deps{
		Store: store,
		Complaints: &service.ComplaintService{
			Store:    store,
			Resolver: resolver,
			Clock:    clock,
			Logger:   logger,
		},
		Hotspots: &service.HotspotService{
			Source:  store,
			Engine:  engine,
			Metrics: metrics,
			Logger:  logger.With().Str("component", "hotspot").Logger(),
		},
		Gatherer: prometheus.DefaultGatherer,
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.Router(cfg, deps, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mohamedthameursassi/saferoute/config"
	"github.com/mohamedthameursassi/saferoute/handlers"
	"github.com/mohamedthameursassi/saferoute/logging"
	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Dir)
	slog.SetDefault(logger)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, logger *slog.Logger) error {
	fixtures := cfg.FixtureData()
	places := services.NewPlacesService(fixtures)

	resolver, err := newResolver(cfg.Geocoder, fixtures, logger)
	if err != nil {
		return err
	}

	opts := []services.SynthesizerOption{
		services.WithPathPoints(cfg.Routes.PathPoints),
		services.WithSynthesizerLogger(logger),
	}
	if cfg.Routes.RandomCurves {
		seed := uint64(time.Now().UnixNano())
		opts = append(opts, services.WithRandomCurves(rand.New(rand.NewPCG(seed, seed>>1))))
	}
	planner := services.NewTripPlanner(services.NewRouteSynthesizer(opts...), resolver, places, cfg.Geocoder.Region, logger)

	if err := config.Watch(configPath, func(next *config.Config) {
		places.Replace(next.FixtureData())
		logger.Info("reference data reloaded", slog.String("config", configPath))
	}, func(err error) {
		logger.Warn("config reload failed", slog.Any("error", err))
	}); err != nil {
		logger.Info("config hot reload disabled", slog.Any("reason", err))
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(logger, cfg.Server.CorsOrigins,
		handlers.NewRoutingHandler(planner, resolver, cfg.Geocoder.Region, logger),
		handlers.NewNavigationHandler(planner, cfg.Simulation.Step, logger),
		handlers.NewPlacesHandler(places),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("geocoder", cfg.Geocoder.Provider))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newResolver builds the configured geocoder behind an LRU cache.
func newResolver(cfg config.GeocoderConfig, fixtures models.Fixtures, logger *slog.Logger) (services.Resolver, error) {
	var next services.Resolver
	switch cfg.Provider {
	case "", "nominatim":
		next = services.NewNominatimResolver(cfg.BaseURL, cfg.UserAgent, cfg.RatePerSecond, logger)
	case "google":
		gr, err := services.NewGoogleResolver(cfg.APIKey)
		if err != nil {
			return nil, err
		}
		next = gr
	case "static":
		return services.NewFixtureResolver(fixtures), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Provider)
	}

	cached, err := services.NewCachedResolver(next, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

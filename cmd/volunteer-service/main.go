package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/go-volunteer-aggregator/internal/cache"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/config"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/fetch"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/geocode"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/scrape"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/service"
	"github.com/pribylovaa/go-volunteer-aggregator/internal/sources"
	transport "github.com/pribylovaa/go-volunteer-aggregator/internal/transport/http"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env удобен локально; в проде секреты приходят из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting volunteer-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	httpClient := &http.Client{Timeout: cfg.Timeouts.Service}
	memo := cache.New(cfg.Cache.TTL, nil)
	fetcher := fetch.New(httpClient, memo)

	geocoder := geocode.New(fetcher, cfg.Geocode.BaseURL, cfg.Geocode.APIKey)

	srcs := []sources.Source{
		sources.NewVolunteerMatch(fetcher, cfg.Sources.VolunteerMatch.BaseURL, cfg.Sources.VolunteerMatch.APIKey, cfg.Search.DefaultRadius),
		sources.NewIdealist(fetcher, cfg.Sources.Idealist.BaseURL, cfg.Sources.Idealist.APIKey, cfg.Search.DefaultRadius),
		sources.NewAllForGood(fetcher, cfg.Sources.AllForGood.BaseURL, cfg.Sources.AllForGood.APIKey, cfg.Search.DefaultZip, cfg.Search.DefaultRadius),
	}

	scraper := scrape.New(fetcher, cfg.Scrape.ProxyURL, nil)
	targets := scrapeTargets(cfg.Scrape.Targets)

	svc := service.New(geocoder, srcs, scraper, targets)
	log.Info("service_initialized",
		slog.Int("sources", len(srcs)),
		slog.Int("scrape_targets", len(targets)),
	)

	router := transport.NewRouter(svc, transport.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	})

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()
	log.Info("http_listen_start", slog.String("addr", addr))

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = srv.Close()
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
	os.Exit(0)
}

// scrapeTargets конвертирует конфиг целей скрейпа в доменные Target.
func scrapeTargets(cfgTargets []config.ScrapeTarget) []scrape.Target {
	targets := make([]scrape.Target, 0, len(cfgTargets))
	for _, t := range cfgTargets {
		targets = append(targets, scrape.Target{
			Name:         t.Name,
			URL:          t.URL,
			Container:    t.Container,
			Title:        t.Title,
			Organization: t.Organization,
			Description:  t.Description,
			Date:         t.Date,
			Location:     t.Location,
			Link:         t.Link,
		})
	}
	return targets
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}

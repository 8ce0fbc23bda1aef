package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brandbuddy-hq/brandbuddy-backend/api/routes"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/pages"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/suggest"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/metrics"
	openaipkg "github.com/brandbuddy-hq/brandbuddy-backend/pkg/openai"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := cfg.ValidateFeeds(); err != nil {
		logg.Error(context.Background(), "feed configuration incomplete", err)
		os.Exit(1)
	}

	var cache *redis.Client
	if cfg.Cache.Enabled() {
		cache, err = redis.New(context.Background(), cfg.Cache)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis, continuing without cache", err)
			cache = nil
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
		}
	}

	feeds := feed.NewClient(cfg.Products, cfg.Shipments, cfg.Tenant.Brand, feed.WithCache(cache))

	// With no API key every surface falls back to rule-based output.
	var completer openaipkg.Completer
	fastModel, advancedModel := cfg.OpenAI.FastModel, cfg.OpenAI.AdvancedModel
	if cfg.OpenAI.Enabled() {
		llm, err := openaipkg.New(cfg.OpenAI)
		if err != nil {
			logg.Error(context.Background(), "failed to build llm client", err)
			os.Exit(1)
		}
		completer = llm
		fastModel, advancedModel = llm.FastModel(), llm.AdvancedModel()
	} else {
		logg.Warn(context.Background(), "OPENAI_API_KEY not set, insights run on the rule path")
	}

	insightService := insights.NewService(completer, fastModel, logg)
	builder := pages.NewBuilder(cfg.Tenant.Brand, insightService)

	history := suggest.NewHistoryClient(cfg.Orders, nil)
	suggestService := suggest.NewService(completer, advancedModel, history, logg)

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"addr":  addr,
		"brand": cfg.Tenant.Brand,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, feeds, builder, suggestService, httpMetrics),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

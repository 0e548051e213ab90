package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apiAssistant "bizplan_forecast/pkg/api/assistant"
	apiProjection "bizplan_forecast/pkg/api/projection"
	"bizplan_forecast/pkg/api/respond"
	"bizplan_forecast/pkg/config"
	"bizplan_forecast/pkg/core/assistant"
	"bizplan_forecast/pkg/core/pipeline"
	"bizplan_forecast/pkg/core/store"
	"bizplan_forecast/pkg/logger"
	"bizplan_forecast/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./ or ./configs)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// 1. Result cache
	cache, closeCache, err := store.Open(ctx, cfg.Cache)
	if err != nil {
		// projections still work uncached
		log.Warn("result cache unavailable, continuing without it",
			zap.String("backend", cfg.Cache.Backend),
			zap.Error(err),
		)
		cache = store.NopCache{}
	} else {
		log.Info("result cache ready", zap.String("backend", cfg.Cache.Backend))
	}
	defer closeCache()

	service := pipeline.NewService(cache, m, log.Named("pipeline"))

	// 2. Narrative assistants
	manager, writer, err := assistant.NewFromConfig(cfg.Assistant, log.Named("assistant"))
	if err != nil {
		return fmt.Errorf("failed to set up assistants: %w", err)
	}
	for _, p := range manager.Providers() {
		log.Info("assistant provider registered",
			zap.String("provider", p.ID),
			zap.Bool("ready", p.Ready),
			zap.Bool("active", p.Active),
		)
	}

	// 3. Routes
	mux := http.NewServeMux()
	apiProjection.NewHandler(service, m, log.Named("api")).Register(mux)
	apiAssistant.NewHandler(manager, writer, service, m, log.Named("api")).Register(mux)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      respond.WithRequestID(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

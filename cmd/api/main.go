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

	"cane-forecast/internal/api"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/config"
	"cane-forecast/internal/logging"
	"cane-forecast/internal/session"
	"cane-forecast/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CANE_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	strat, err := cfg.Strategy()
	if err != nil {
		return err
	}
	catalog, skipped, err := cfg.GradingCatalog()
	if err != nil {
		return err
	}
	for path, err := range skipped {
		logger.Warn("grading table skipped", zap.String("file", path), zap.Error(err))
	}
	table, err := cfg.GradingTable()
	if err != nil {
		return err
	}
	san, err := cfg.Sanitizer()
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.Server.SessionTTL, sweepInterval(cfg.Server.SessionTTL), logger)
	defer store.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Store:          store,
		Engine:         assessment.New(strat, table, san),
		Catalog:        catalog,
		Params:         strategy.Params{Multiplier: cfg.Forecast.Multiplier},
		LoadOptions:    cfg.LoadOptions(),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server",
			zap.String("addr", srv.Addr),
			zap.String("strategy", strat.Name()),
			zap.String("grading_table", table.Name),
			zap.String("sanitizer_policy", string(san.Policy)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// sweepInterval is how often expired sessions are collected.
func sweepInterval(ttl time.Duration) time.Duration {
	if every := ttl / 4; every < 5*time.Minute {
		return every
	}
	return 5 * time.Minute
}

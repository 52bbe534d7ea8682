package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/casenight/casenight-backend/internal/config"
	"github.com/casenight/casenight-backend/internal/coordinator"
	"github.com/casenight/casenight-backend/internal/httpapi"
	"github.com/casenight/casenight-backend/internal/scenario"
	"github.com/casenight/casenight-backend/internal/transport"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing or unreadable scenario dir is not fatal; hosts get a
	// "scenario unavailable" answer until content shows up on restart.
	store, err := scenario.Load(cfg.ScenarioDir, logger)
	if err != nil {
		logger.Warn("no scenario content loaded", zap.Error(err))
		store = scenario.Empty()
	}

	h := transport.NewHub(logger)
	coord := coordinator.New(ctx, store, h, logger, coordinator.Options{})
	handler := httpapi.SetupRoutes(h, coord, cfg.StaticDir, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/config"
	"github.com/vuchint-sutapalli/pictionary/internal/httpapi"
	"github.com/vuchint-sutapalli/pictionary/internal/hub"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// run serves until ctx is cancelled, then tears the hub down (cancelling
// every room's timer) and drains in-flight requests.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	h := hub.NewHub(context.Background(), hub.Options{
		RoundSeconds: cfg.RoundSeconds,
		Capacity:     cfg.RoomCapacity,
		Logger:       logger,
	})

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.SetupRoutes(h, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	h.Inbox() <- hub.ShutdownHub{}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

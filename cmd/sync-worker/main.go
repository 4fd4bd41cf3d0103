package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"productiv/internal/amqp"
	"productiv/internal/config"
	"productiv/internal/services"
	"productiv/internal/storage"
	"productiv/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting sync-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncWorker := worker.NewSyncWorker(repo, services.NewBudgetService(repo))

	// Catch up on anything written while the worker was down.
	if err := syncWorker.RecomputeAll(ctx); err != nil {
		logger.Error("Startup recompute failed", "error", err)
	}

	go consumeLoop(ctx, cfg, syncWorker, cancel)

	ticker := time.NewTicker(cfg.RecomputeInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := syncWorker.RecomputeAll(ctx); err != nil {
					logger.Error("Periodic recompute failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	logger.Info("Worker stopped gracefully")
}

// consumeLoop keeps a consumer attached to the queue, redialing with
// backoff when the broker connection drops.
func consumeLoop(ctx context.Context, cfg *config.Config, syncWorker *worker.SyncWorker, cancel context.CancelFunc) {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			delay := amqp.ExponentialBackoff(attempt)
			attempt++
			slog.Error("Failed to connect to AMQP, retrying", "error", err, "delay", delay)
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return
			}
		}
		attempt = 0

		err = client.ConsumeTransactionEvents(ctx, syncWorker.HandleTransactionEvent)
		client.Close()
		if err == nil || err == context.Canceled {
			return
		}
		if !amqp.IsConnectionError(err) {
			slog.Error("Message consumption failed", "error", err)
			cancel()
			return
		}
		slog.Error("AMQP connection lost, reconnecting", "error", err)
	}
}

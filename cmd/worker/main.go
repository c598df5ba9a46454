package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	workerHandler "github.com/bharathvaddineniK/vicin-sub000/internal/handler/worker"
	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	"github.com/bharathvaddineniK/vicin-sub000/internal/task"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepIdle, func(ctx context.Context, t *asynq.Task) error {
		return workerHandler.SweepStaleFilesHandler(ctx, cfg.TempDir, cfg.SessionIdleTTL)
	})

	runWorker(ctx, mux, cfg)
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 2})

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 30m", task.NewSweepIdleTask()); err != nil {
		logger.Errorf(ctx, "❌  Failed to schedule stale-file sweep: %v", err)
		os.Exit(1)
	}

	// Run server and scheduler in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Errorf(context.Background(), "❌  Scheduler failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Shutdown()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}

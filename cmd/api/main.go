package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"

	"github.com/bharathvaddineniK/vicin-sub000/internal/cache"
	"github.com/bharathvaddineniK/vicin-sub000/internal/cleanup"
	"github.com/bharathvaddineniK/vicin-sub000/internal/compressor"
	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/handler/api"
	workerHandler "github.com/bharathvaddineniK/vicin-sub000/internal/handler/worker"
	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	cMiddleware "github.com/bharathvaddineniK/vicin-sub000/internal/middleware"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/storage"
	"github.com/bharathvaddineniK/vicin-sub000/internal/task"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uploader"
	"github.com/bharathvaddineniK/vicin-sub000/internal/validator"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)

	var ca port.URLCache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionIdleTTL)
		logger.Info(ctx, "✅  Redis enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, URL caching and background sweeps are disabled")
	}

	store := pipeline.NewStore(cfg.Policy, func() port.Cleaner {
		return cleanup.NewManager(cfg.TempDir)
	})

	v := validator.NewValidator(cfg.Policy)
	comp := compressor.NewCompressor(v, compressor.NewNoopTranscoder(), cfg.Policy, cfg.TempDir)
	up := uploader.NewUploader(strg, ca, cleanup.NewManager(cfg.TempDir), cfg)
	proc := pipeline.NewProcessor(comp, up, cfg.Policy)

	r := initRouter(ctx, cfg.JWTPublicKey)

	r.Post("/sessions", api.CreateSessionHandler(store, dispatcher))
	r.With(cMiddleware.WithSessionID()).
		Get("/sessions/{sessionID}", api.GetSessionHandler(store))
	r.With(cMiddleware.WithSessionID()).
		Delete("/sessions/{sessionID}", api.ResetSessionHandler(store))
	r.With(cMiddleware.WithSessionID()).
		Post("/sessions/{sessionID}/images", api.AddImageHandler(store, proc, cfg.TempDir))
	r.With(cMiddleware.WithSessionID()).
		Post("/sessions/{sessionID}/video", api.AddVideoHandler(store, proc, cfg.TempDir))
	r.With(cMiddleware.WithSessionID()).
		Post("/sessions/{sessionID}/video_picker", api.VideoPickerHandler(store))
	r.With(cMiddleware.WithSessionID(), cMiddleware.WithItemID()).
		Delete("/sessions/{sessionID}/items/{itemID}", api.RemoveItemHandler(store))
	r.With(cMiddleware.WithSessionID(), cMiddleware.WithItemID()).
		Post("/sessions/{sessionID}/items/{itemID}/retry", api.RetryItemHandler(store, proc))

	if cfg.RedisAddr != "" {
		// session sweeps must run in this process: the store is in-memory
		go runSweepServer(ctx, cfg, store)
	}

	listenRouter(ctx, r, cfg)
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithOwnerAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.MediaBucket,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(cfg.MediaBucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.MediaBucket, err)
		os.Exit(1)
	}

	return strg
}

func runSweepServer(ctx context.Context, cfg *config.Settings, store *pipeline.Store) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword},
		asynq.Config{Concurrency: 2},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepSession, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseSweepSessionPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.SweepSessionHandler(ctx, p, store, cfg.SessionIdleTTL)
	})

	logger.Info(ctx, "🚀 Session sweep worker running")
	if err := srv.Run(mux); err != nil {
		logger.Errorf(ctx, "❌  Sweep worker error: %v", err)
		os.Exit(1)
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hszk-dev/mylist/internal/api/handler"
	"github.com/hszk-dev/mylist/internal/api/middleware"
	"github.com/hszk-dev/mylist/internal/auth"
	"github.com/hszk-dev/mylist/internal/config"
	"github.com/hszk-dev/mylist/internal/domain/repository"
	"github.com/hszk-dev/mylist/internal/infrastructure/cache"
	"github.com/hszk-dev/mylist/internal/infrastructure/postgres"
	"github.com/hszk-dev/mylist/internal/infrastructure/queue"
	"github.com/hszk-dev/mylist/internal/infrastructure/storage"
	"github.com/hszk-dev/mylist/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pgClient.Close()

	redisClient, err := cache.NewClient(ctx, cache.ClientConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Event publishing and artwork URLs are optional capabilities: the list
	// service keeps working without them, so a missing broker or object store
	// degrades the deployment instead of failing it.
	var publisher repository.ListEventPublisher
	rmqCfg := queue.DefaultPublisherConfig(cfg.RabbitMQ.URL())
	rmqCfg.QueueName = cfg.RabbitMQ.QueueName
	rmqCfg.RoutingKey = cfg.RabbitMQ.QueueName
	if p, err := queue.NewPublisher(ctx, rmqCfg); err != nil {
		logger.Warn("rabbitmq unavailable, list events disabled", slog.String("error", err.Error()))
	} else {
		publisher = p
		defer p.Close()
	}

	var artwork repository.ArtworkStorage
	if s, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.MinIO.Endpoint,
		PublicEndpoint: cfg.MinIO.PublicEndpoint,
		AccessKey:      cfg.MinIO.AccessKey,
		SecretKey:      cfg.MinIO.SecretKey,
		Bucket:         cfg.MinIO.Bucket,
		UseSSL:         cfg.MinIO.UseSSL,
	}); err != nil {
		logger.Warn("minio unavailable, poster URLs disabled", slog.String("error", err.Error()))
	} else {
		artwork = s
	}

	listRepo := postgres.NewListRepository(pgClient.Pool())
	contentRepo := postgres.NewContentRepository(pgClient.Pool())
	listCache := cache.NewRedisListCache(redisClient.Redis())

	svc := usecase.NewMyListService(listRepo, contentRepo, listCache, publisher, artwork, usecase.MyListServiceConfig{
		FirstPageTTL:    cfg.Cache.FirstPageTTL,
		OtherPageTTL:    cfg.Cache.OtherPageTTL,
		DefaultLimit:    cfg.Cache.DefaultLimit,
		MaxLimit:        cfg.Cache.MaxLimit,
		PosterURLExpiry: cfg.MinIO.PosterURLExpiry,
	})

	validator := auth.NewJWTValidator(cfg.Auth.JWTSecret)

	r := setupRouter(logger, cfg, svc, validator)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, cfg *config.Config, svc usecase.MyListService, validator *auth.JWTValidator) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.Auth.EnableTestToken {
		tokenHandler := handler.NewTokenHandler(validator, cfg.Auth.TestUserID, cfg.Auth.TokenTTL)
		r.Get("/auth/test-token", tokenHandler.TestToken)
	}

	listHandler := handler.NewMyListHandler(svc)
	r.Route("/api/mylist", func(r chi.Router) {
		r.Use(middleware.Auth(validator))
		r.Post("/add", listHandler.Add)
		r.Delete("/remove/{contentID}", listHandler.Remove)
		r.Get("/items", listHandler.Items)
	})

	return r
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	post_service "board-post-service/internal/application/service/post"
	post_service_port "board-post-service/internal/domain/ports/input/post"
	"board-post-service/internal/domain/ports/output/upload"
	"board-post-service/internal/infrastructure/config"
	grpc_server "board-post-service/internal/infrastructure/inbound/grpc"
	http_server "board-post-service/internal/infrastructure/inbound/http"
	post_http "board-post-service/internal/infrastructure/inbound/http/post"
	metrics_server "board-post-service/internal/infrastructure/inbound/metrics"
	"board-post-service/internal/infrastructure/logger"
	redis_cache "board-post-service/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "board-post-service/internal/infrastructure/outbound/metrics/prometheus"
	category_postgres "board-post-service/internal/infrastructure/outbound/repository/category/postgres"
	post_postgres "board-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"board-post-service/internal/infrastructure/outbound/repository/postgres"
	"board-post-service/internal/infrastructure/outbound/upload/cloudinary"
)

func main() {
	cfg := config.MustLoad()
	dsn := cfg.Database.DSN()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(dsn, log); err != nil {
			log.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	validate := validator.New()

	unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	categoryRepo := category_postgres.NewCategoryRepository(pool, log, metrics)

	var postService post_service_port.Service = post_service.NewPostService(postRepo, categoryRepo, unitOfWork, validate, log, metrics)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		postCache := redis_cache.NewPostCache(redisClient, cfg.Redis.TTL, log)
		postService = post_service.NewPostServiceCacheDecorator(postService, postCache, log, metrics)
	}

	var uploader upload.Uploader = cloudinary.Disabled{}
	if cfg.Upload.Enabled {
		cldUploader, err := cloudinary.NewUploader(cfg.Upload, log, metrics)
		if err != nil {
			log.Error("Failed to create uploader", slog.String("error", err.Error()))
			os.Exit(1)
		}
		uploader = cldUploader
	} else {
		log.Warn("Uploads are disabled, attached files will be ignored")
	}

	postAPI := post_http.NewPostHTTPAPI(postService, uploader, validate, log)
	router := http_server.NewRouter(cfg.HTTPServer, []byte(cfg.Auth.JWTSecret), postAPI, uploader, log, metrics)
	httpServer := http_server.NewServer(router, cfg.HTTPServer, log)

	grpcServer := grpc_server.NewServer(cfg.GRPCServer.Address, cfg.GRPCServer.Port, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	httpDone := make(chan bool, 1)
	grpcDone := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		httpDone <- true
	}()

	go func() {
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC server error", slog.String("error", err.Error()))
		}
		grpcDone <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)
	grpcServer.SetServing(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := grpcServer.Shutdown(); err != nil {
		log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-httpDone
	<-grpcDone
	<-metricsDone

	log.Info("Server exited")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pageforge.app/planner/common/id"
	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/common/logger"
	"pageforge.app/planner/common/otel"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/http/middleware"
	httprouter "pageforge.app/planner/internal/http/router"
	"pageforge.app/planner/internal/preview"
	"pageforge.app/planner/internal/service"
	"pageforge.app/planner/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "planner starting",
		"env", cfg.Env,
		"region", cfg.Bedrock.Region,
		"model", cfg.Bedrock.ModelID)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	gateway, err := buildGateway(cfg.Bedrock)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize model gateway", "error", err)
		os.Exit(1)
	}
	if cfg.Bedrock.Fake {
		slog.WarnContext(ctx, "fake gateway enabled, no outbound model calls will be made")
	}

	sessions, redisClient, err := buildSessionStore(ctx, cfg.Session)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize session store", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	services := service.NewServices(service.ServicesConfig{
		Gateway:   gateway,
		Sessions:  sessions,
		Previews:  preview.NewStore(),
		Inference: cfg.Inference,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, gateway)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func buildGateway(cfg config.BedrockConfig) (llm.Gateway, error) {
	if cfg.Fake {
		return llm.NewFakeGateway(cfg.ModelID, cfg.Region), nil
	}
	return llm.NewBedrockGateway(llm.Config{
		Region:      cfg.Region,
		ModelID:     cfg.ModelID,
		UseConverse: cfg.UseConverse,
	})
}

func buildSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, *redis.Client, error) {
	if cfg.Backend != config.SessionBackendRedis {
		return session.NewMemoryStore(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}
	slog.InfoContext(ctx, "redis connected")

	return session.NewRedisStore(client), client, nil
}

func setupRouter(cfg config.Config, services *service.Services, gateway llm.Gateway) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, gateway)

	return router
}

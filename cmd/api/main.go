package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"companion-llm/internal/config"
	"companion-llm/internal/db"
	apihttp "companion-llm/internal/http"
	"companion-llm/internal/llm"
	"companion-llm/internal/observability"
	"companion-llm/internal/repository"
	"companion-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	personas, err := service.LoadPersonaRegistry(cfg.PersonaFile)
	if err != nil {
		logger.Fatal("load personas", zap.String("file", cfg.PersonaFile), zap.Error(err))
	}

	metrics := observability.NewMetricsCollector()
	tracerSetup, err := observability.NewTracerSetup(&cfg.Tracing)
	if err != nil {
		logger.Fatal("tracing init", zap.Error(err))
	}

	baseClient, err := llm.NewClient(cfg.LLM, logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}
	llmClient := observability.NewInstrumentedClient(baseClient, metrics, tracerSetup)

	relationshipRepo := repository.NewPgRelationshipRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	contextSvc := service.NewBasicContextService(relationshipRepo, messageRepo, userRepo, cfg.HistoryWindow, nil)
	messageSvc := service.NewMessageService(messageRepo, nil)
	companionSvc := service.NewCompanionService(logger, contextSvc, messageSvc, llmClient, personas, service.CompanionConfig{
		GenerationTimeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Metrics:           metrics,
		Tracer:            tracerSetup.Tracer(),
	})

	var limiter service.MessageRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisMessageRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMessages)
		}
		cancel()
	}

	var verifier service.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = service.NewJWTService(cfg.JWTSecret, 0)
	} else {
		logger.Warn("jwt secret not configured, user id taken from request body")
	}

	chatHandler := apihttp.NewChatHandler(logger, companionSvc, contextSvc, limiter)
	router := apihttp.NewRouter(logger, chatHandler, verifier, metrics)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
		if err := tracerSetup.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("tracing", tracerSetup != nil),
		zap.Bool("rate_limit", limiter != nil),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

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

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/auth"
	"timeless-server/internal/config"
	"timeless-server/internal/database"
	"timeless-server/internal/handler"
	"timeless-server/internal/interfaces"
	"timeless-server/internal/logger"
	"timeless-server/internal/messaging"
	"timeless-server/internal/middleware"
	"timeless-server/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(logger.Config{
		Service:    "timeless-server",
		Env:        cfg.Env,
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)
	cfg.LogSummary(log)

	// --- External connections ---
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	pool, err := database.SetupPostgres(startupCtx, cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.NewMigrator(pool, log).Up(); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	systemPromptRepo := database.NewPgSystemPromptRepository(log)
	exampleRepo := database.NewPgExampleRepository(log)
	proposalRepo := database.NewPgProposedExampleRepository(log)

	if cfg.Database.SeedDefaultPrompt {
		if _, err := database.SeedDefaultSystemPrompt(startupCtx, pool, systemPromptRepo, log); err != nil {
			log.Fatal("Failed to seed default system prompt", zap.Error(err))
		}
	}

	var (
		sessionRepo    interfaces.SessionRepository
		rateLimitStore ratelimit.Store
	)
	if cfg.Redis.URL != "" {
		redisClient, err := setupRedis(startupCtx, cfg.Redis.URL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Connected to Redis")

		sessionRepo = database.NewRedisSessionRepository(redisClient, log)
		rateLimitStore = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: redisClient,
			Rate:        cfg.RateLimit.LoginWindow,
			Limit:       cfg.RateLimit.LoginLimit,
		})
	} else {
		log.Info("REDIS_URL not set, keeping admin sessions and rate limits in memory")
		sessionRepo = database.NewMemorySessionRepository()
		rateLimitStore = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  cfg.RateLimit.LoginWindow,
			Limit: cfg.RateLimit.LoginLimit,
		})
	}

	var publisher interfaces.ContentEventPublisher = messaging.NopContentPublisher{}
	if cfg.RabbitMQ.URL != "" {
		mqConn, err := messaging.ConnectRabbitMQ(startupCtx, cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		contentPublisher, err := messaging.NewRabbitMQContentPublisher(mqConn, cfg.RabbitMQ.ContentExchange, log)
		if err != nil {
			log.Fatal("Failed to create content event publisher", zap.Error(err))
		}
		defer func() {
			if err := contentPublisher.Close(); err != nil {
				log.Error("Failed to close content event publisher", zap.Error(err))
			}
		}()
		publisher = contentPublisher
	} else {
		log.Info("RABBITMQ_URL not set, content events are not published")
	}

	// --- Dependency injection ---
	completionClient, err := ai.NewCompletionClient(cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to create completion client", zap.Error(err))
	}
	tokenCounter := ai.NewTokenCounter(cfg.AI.Model, log)
	go tokenCounter.Warmup()

	txManager := database.NewTxManager(pool, log)
	assembler := service.NewPromptAssembler(pool, systemPromptRepo, exampleRepo, cfg.Prompt, tokenCounter, log)
	textService := service.NewTextService(assembler, completionClient, log)
	promptService := service.NewSystemPromptService(pool, systemPromptRepo, publisher, log)
	exampleService := service.NewExampleService(pool, txManager, exampleRepo, publisher, log)
	proposalService := service.NewProposedExampleService(pool, txManager, proposalRepo, exampleRepo, assembler, completionClient, publisher, cfg.Batch.MaxPhrases, log)

	authService, err := auth.NewAdminAuthService(cfg.Admin, sessionRepo, log)
	if err != nil {
		log.Fatal("Failed to create admin auth service", zap.Error(err))
	}

	h := handler.NewHandler(cfg.Admin, log, textService, promptService, exampleService, proposalService, assembler, authService)

	// --- HTTP server (gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}

	router, err := handler.NewRouter(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Failed to create router", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.GinZapLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	loginRateLimit := handler.NewLoginRateLimiter(rateLimitStore, log)

	// Middleware метрик должен быть подключен до регистрации маршрутов, иначе gin его не применит.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	if err := h.RegisterRoutes(router, loginRateLimit); err != nil {
		log.Fatal("Failed to register routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}

func setupRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

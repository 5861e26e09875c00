package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/docbrief/docbrief/pkg/validator"

	"github.com/docbrief/docbrief/internal/adapter/handler"
	"github.com/docbrief/docbrief/internal/adapter/repository"
	"github.com/docbrief/docbrief/internal/infrastructure/cache"
	"github.com/docbrief/docbrief/internal/infrastructure/database"
	httpmw "github.com/docbrief/docbrief/internal/infrastructure/http/middleware"
	"github.com/docbrief/docbrief/internal/infrastructure/storage"
	"github.com/docbrief/docbrief/internal/usecase/auth"
	"github.com/docbrief/docbrief/internal/usecase/export"
	"github.com/docbrief/docbrief/internal/usecase/summarize"
	pkgai "github.com/docbrief/docbrief/pkg/ai"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/jwt"
)

// @title           DocBrief API
// @version         1.0
// @description     API for uploading PDF documents and generating structured, audience-aware summaries

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply SQL migrations only when explicitly enabled in config.
	// Production deployments should manage schema via the migrate script.
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; apply them with scripts/migrate.go in CI/CD/production")
	}

	// Initialize cache, falling back to in-process memory when Redis is
	// unreachable so a missing Redis never blocks local development
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		store = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		log.Println("✅ Redis connected successfully")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Initialize LLM client
	log.Println("🤖 Initializing LLM client...")
	var completer pkgai.Completer
	if cfg.LLM.APIKey == "" {
		log.Println("⚠️  LLM_API_KEY not set, using mock completer (development only)")
		completer = pkgai.MockCompleter{}
	} else {
		client, err := pkgai.NewOpenAIClient(&cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		completer = client
	}

	// Initialize object storage for source-file archival
	var archive summarize.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Initializing object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archive = minioClient
		log.Printf("✅ Object storage connected to: %s", cfg.Storage.Endpoint)
	} else {
		log.Println("🗄️  Object storage disabled, uploads are not archived")
	}

	// Initialize auth service
	log.Println("🔑 Initializing auth service...")
	verifier := jwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	authService := auth.NewService(userRepo, verifier, store, cfg, logger)

	// Initialize summarization pipeline
	log.Println("✨ Initializing summarization service...")
	keywordExtractor := summarize.NewKeywordExtractor(completer, logger)
	sectionParser := summarize.NewRegexSectionParser()
	summarizeService := summarize.NewService(summaryRepo, completer, keywordExtractor, sectionParser, archive, cfg, logger)

	// Initialize export service
	exportService := export.NewService(logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	summarizeHandler := handler.NewSummarizeHandler(summarizeService, cfg, logger)
	summariesHandler := handler.NewSummariesHandler(summarizeService, exportService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authEchoMW := httpmw.EchoAuth(authService)
	router := handler.NewRouter(cfg, summarizeHandler, summariesHandler, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/plans"
	"inkwell/internal/quota"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/upstream"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for identity-provider tokens
	verifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	quotaRepo := postgres.NewQuotaRepository(repoConfig)
	articleRepo := postgres.NewArticleRepository(repoConfig)

	// Load the plan entitlement registry
	planRegistry, err := plans.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load plan registry: %v", err)
	}
	gate := quota.NewGate(planRegistry)

	// Generation backend client
	backend := upstream.NewClient(cfg.UpstreamURL, logger)

	// Create services
	quotaService := service.NewQuotaService(quotaRepo, gate, logger)
	articleService := service.NewArticleService(backend, articleRepo, quotaService, logger)
	toolsService := service.NewToolsService(backend, quotaService, logger)
	billingService := service.NewBillingService(backend, logger)

	// Create handlers
	articleHandler := handler.NewArticleHandler(articleService, logger)
	generateHandler := handler.NewGenerateHandler(articleService, logger)
	profileHandler := handler.NewProfileHandler(backend, quotaService, gate, logger)
	toolsHandler := handler.NewToolsHandler(toolsService, logger)
	billingHandler := handler.NewBillingHandler(billingService, logger)
	authHandler := handler.NewAuthHandler(backend, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", articleHandler.HealthCheck)

	// Generation
	mux.HandleFunc("POST /v1/generate-draft", generateHandler.GenerateDraft)

	// Profile and quota
	mux.HandleFunc("GET /api/profile", profileHandler.GetProfile)
	mux.HandleFunc("GET /api/quota", profileHandler.GetQuota)

	// Article library
	mux.HandleFunc("GET /api/articles", articleHandler.ListArticles)
	mux.HandleFunc("POST /api/articles/preview", articleHandler.PreviewMarkdown) // Must come before {id} route
	mux.HandleFunc("GET /api/articles/{id}", articleHandler.GetArticle)
	mux.HandleFunc("PUT /api/articles/{id}", articleHandler.UpdateArticle)
	mux.HandleFunc("DELETE /api/articles/{id}", articleHandler.DeleteArticle)
	mux.HandleFunc("POST /api/articles/{id}/expand", articleHandler.ExpandArticle)
	mux.HandleFunc("GET /api/articles/{id}/export", articleHandler.ExportArticle)

	// SEO tools
	mux.HandleFunc("POST /api/tools/{tool}", toolsHandler.RunTool)

	// Billing
	mux.HandleFunc("POST /api/stripe/create-checkout", billingHandler.CreateCheckout)
	mux.HandleFunc("POST /api/stripe/portal", billingHandler.CreatePortal)

	// Auth handoff
	mux.HandleFunc("POST /auth/magic-link", authHandler.RequestMagicLink)
	mux.HandleFunc("GET /auth/google", authHandler.GoogleSignIn)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(verifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Visitor-Id"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second, // generation calls block on the backend
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petrocore-backend/internal/analytics"
	"petrocore-backend/internal/api"
	"petrocore-backend/internal/chatbot"
	"petrocore-backend/internal/config"
	"petrocore-backend/internal/crypto"
	"petrocore-backend/internal/handlers"
	"petrocore-backend/internal/integrations"
	"petrocore-backend/internal/services"
	"petrocore-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting PetroCore Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	// --- Create AEAD Cipher for PII Encryption ---
	aead, err := crypto.NewAESGCM(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("FATAL: Failed to create AES-GCM cipher: %v", err)
	}
	log.Println("AES-GCM cipher initialized.")

	// --- Analytics Sink ---
	var sink analytics.Sink
	switch cfg.AnalyticsBackend {
	case "sqlite":
		sqliteSink, err := analytics.NewSQLiteSink(cfg.AnalyticsDBPath)
		if err != nil {
			log.Fatalf("FATAL: Failed to open SQLite analytics sink at %s: %v", cfg.AnalyticsDBPath, err)
		}
		sink = sqliteSink
		log.Printf("SQLite analytics sink initialized at %s.", cfg.AnalyticsDBPath)
	default:
		sink = analytics.NewMemorySink()
		log.Println("In-memory analytics sink initialized.")
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Printf("WARN: Failed to close analytics sink: %v", err)
		}
	}()

	// --- Knowledge Store (with optional Notion content overrides) ---
	knowledge := chatbot.NewKnowledgeStore()
	if cfg.NotionAPIKey != "" && cfg.NotionDatabaseID != "" {
		notionSource := integrations.NewNotionKnowledgeSource(cfg.NotionAPIKey, cfg.NotionDatabaseID)
		hydrateCtx, hydrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
		loaded, err := notionSource.LoadOverrides(hydrateCtx, knowledge)
		hydrateCancel()
		if err != nil {
			log.Printf("WARN: Notion knowledge hydration failed, using built-in content: %v", err)
		} else {
			log.Printf("Knowledge store hydrated with %d Notion override(s).", loaded)
		}
	} else {
		log.Println("Notion knowledge source not configured, using built-in content.")
	}

	// --- Escalation Notifier ---
	var notifier integrations.EscalationNotifier
	if cfg.SlackBotToken != "" {
		notifier = integrations.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackSalesChannel, cfg.SlackSupportChannel)
		log.Println("Slack escalation notifier initialized.")
	} else {
		notifier = integrations.NewLogNotifier()
		log.Println("Slack not configured; escalations will be logged only.")
	}

	mailer := integrations.NewLogEmailSender()

	// --- Conversation Pipeline ---
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipeline := chatbot.NewPipeline(knowledge, rng)
	log.Println("Conversation pipeline initialized.")

	// --- Initialize Services ---
	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	demoService := services.NewDemoService(pgStore, aead, mailer)
	log.Println("DemoService initialized.")
	gdprService := services.NewGDPRService(pgStore, aead, mailer)
	log.Println("GDPRService initialized.")
	chatService := services.NewChatService(pipeline, sink, notifier, demoService, cfg.SessionTTL)
	log.Println("ChatService initialized.")

	// --- Background Loops ---
	loopCtx, loopCancel := context.WithCancel(context.Background())
	defer loopCancel()
	chatService.StartSweeper(loopCtx, cfg.SweepInterval, cfg.AnalyticsRetention)
	log.Printf("Session sweeper started (TTL %s, interval %s).", cfg.SessionTTL, cfg.SweepInterval)

	rateLimiter := api.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	rateLimiter.StartCleanup(loopCtx)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	demoHandler := handlers.NewDemoHandler(demoService)
	gdprHandler := handlers.NewGDPRHandler(gdprService)
	analyticsHandler := handlers.NewAnalyticsHandler(sink)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AuthHandler:      authHandler,
		ChatHandler:      chatHandler,
		DemoHandler:      demoHandler,
		GDPRHandler:      gdprHandler,
		AnalyticsHandler: analyticsHandler,
		RateLimiter:      rateLimiter,
		Config:           cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}

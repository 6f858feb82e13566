package config

import (
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	HTTPPort        string
	TokenExpiration time.Duration
	EncryptionKey   []byte // Raw key bytes (32 for AES-256), used for PII at rest

	// Chatbot session layer
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Analytics
	AnalyticsBackend   string // "memory" or "sqlite"
	AnalyticsDBPath    string
	AnalyticsRetention time.Duration

	// Rate limiting on public endpoints (requests per second per client IP)
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Escalation notifications
	SlackBotToken       string // empty disables the Slack notifier
	SlackSalesChannel   string
	SlackSupportChannel string

	// Knowledge-base content overrides
	NotionAPIKey     string // empty disables the Notion knowledge source
	NotionDatabaseID string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	// Load and decode the Encryption Key (MUST be 64 hex characters for 32 bytes)
	encryptionKeyHex := getEnv("ENCRYPTION_KEY", "")
	if encryptionKeyHex == "" {
		log.Fatal("FATAL: ENCRYPTION_KEY environment variable is not set.")
	}
	encryptionKeyBytes, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		log.Fatalf("FATAL: Failed to decode ENCRYPTION_KEY from hex: %v", err)
	}
	if len(encryptionKeyBytes) != 32 {
		log.Fatalf("FATAL: ENCRYPTION_KEY must be 32 bytes (64 hex characters) long, got %d bytes", len(encryptionKeyBytes))
	}

	analyticsBackend := getEnv("ANALYTICS_BACKEND", "memory")
	if analyticsBackend != "memory" && analyticsBackend != "sqlite" {
		log.Printf("Warning: Unknown ANALYTICS_BACKEND '%s', using 'memory'.", analyticsBackend)
		analyticsBackend = "memory"
	}

	cfg := &Config{
		HTTPPort:            port,
		JWTSecret:           jwtSecret,
		DatabaseURL:         dbURL,
		TokenExpiration:     time.Hour * time.Duration(tokenExpHours),
		EncryptionKey:       encryptionKeyBytes,
		SessionTTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval:       getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		AnalyticsBackend:    analyticsBackend,
		AnalyticsDBPath:     getEnv("ANALYTICS_DB_PATH", "data/analytics.db"),
		AnalyticsRetention:  getEnvDuration("ANALYTICS_RETENTION", 30*24*time.Hour),
		RateLimitPerSecond:  getEnvFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 5),
		SlackBotToken:       getEnv("SLACK_BOT_TOKEN", ""),
		SlackSalesChannel:   getEnv("SLACK_SALES_CHANNEL", "#sales-leads"),
		SlackSupportChannel: getEnv("SLACK_SUPPORT_CHANNEL", "#support-escalations"),
		NotionAPIKey:        getEnv("NOTION_API_KEY", ""),
		NotionDatabaseID:    getEnv("NOTION_KB_DATABASE_ID", ""),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, Analytics=%s, SessionTTL=%s",
		cfg.HTTPPort, cfg.TokenExpiration, cfg.AnalyticsBackend, cfg.SessionTTL)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, value, fallback, err)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %v. Error: %v", key, value, fallback, err)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %s. Error: %v", key, value, fallback, err)
		return fallback
	}
	return d
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	LogLevel          string
	StandardsPath     string // optional override of the embedded catalog
	MinKeywordOverlap int
	StandardsCacheTTL time.Duration
	MaxRequestBytes   int64

	RateLimitInterval time.Duration
	RateLimitBurst    int

	AllowedOrigins []string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	minOverlapStr := getEnv("MIN_KEYWORD_OVERLAP", "1")
	minOverlap, err := strconv.Atoi(minOverlapStr)
	if err != nil || minOverlap < 1 {
		log.Printf("WARNING: Invalid MIN_KEYWORD_OVERLAP '%s'. Using default 1.", minOverlapStr)
		minOverlap = 1
	}

	maxRequestBytesStr := getEnv("MAX_REQUEST_BYTES", "65536")
	maxRequestBytes, err := strconv.ParseInt(maxRequestBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_REQUEST_BYTES format '%s'. Using default 64KB. Error: %v", maxRequestBytesStr, err)
		maxRequestBytes = 64 * 1024
	}

	rateLimitBurstStr := getEnv("RATE_LIMIT_BURST", "30")
	rateLimitBurst, err := strconv.Atoi(rateLimitBurstStr)
	if err != nil {
		log.Printf("WARNING: Invalid RATE_LIMIT_BURST format '%s'. Using default 30. Error: %v", rateLimitBurstStr, err)
		rateLimitBurst = 30
	}

	Cfg = &AppConfig{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StandardsPath:     getEnv("STANDARDS_PATH", ""),
		MinKeywordOverlap: minOverlap,
		StandardsCacheTTL: getEnvAsDuration("STANDARDS_CACHE_TTL", time.Hour),
		MaxRequestBytes:   maxRequestBytes,
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:    rateLimitBurst,
		AllowedOrigins:    []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, StandardsPath=%s, MinKeywordOverlap=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.StandardsPath, Cfg.MinKeywordOverlap)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Worker    WorkerConfig
	RateLimit RateLimitConfig
}

// WorkerConfig describes how the external analytics worker is invoked.
type WorkerConfig struct {
	// PythonBin is the interpreter used to run the worker script.
	PythonBin string
	// ScriptPath points at the worker entry script.
	ScriptPath string
	// RequestTimeout bounds a single worker invocation at the HTTP layer.
	// The bridge itself does not enforce a deadline.
	RequestTimeout time.Duration
	// RecommendationTTL controls how long a stored recommendation is
	// considered fresh.
	RecommendationTTL time.Duration
	// RefreshInterval drives the background refresher that regenerates
	// stale recommendations. Zero disables it.
	RefreshInterval time.Duration
}

// RateLimitConfig guards the regenerate-class AI endpoints. Disabled unless
// a redis address is configured.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RegenerateRate  float64
	RegenerateBurst int
	LockTTLSeconds  int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "inventaris"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "inventaris"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),

		Worker: WorkerConfig{
			PythonBin:         getenv("AI_WORKER_PYTHON", "python3"),
			ScriptPath:        getenv("AI_WORKER_SCRIPT", "scripts/forecast_worker.py"),
			RequestTimeout:    time.Duration(getenvInt("AI_WORKER_TIMEOUT_SECONDS", 120)) * time.Second,
			RecommendationTTL: time.Duration(getenvInt("AI_RECOMMENDATION_TTL_HOURS", 24)) * time.Hour,
			RefreshInterval:   time.Duration(getenvInt("AI_REFRESH_INTERVAL_MINUTES", 0)) * time.Minute,
		},
	}

	redisAddr := strings.TrimSpace(getenv("RATELIMIT_REDIS_ADDR", ""))
	cfg.RateLimit = RateLimitConfig{
		Enabled:         redisAddr != "",
		RedisAddr:       redisAddr,
		RedisPassword:   strings.TrimSpace(getenv("RATELIMIT_REDIS_PASSWORD", "")),
		RedisDB:         getenvInt("RATELIMIT_REDIS_DB", 0),
		RegenerateRate:  getenvFloat("RATELIMIT_AI_REGENERATE_RATE", 0.5),
		RegenerateBurst: getenvInt("RATELIMIT_AI_REGENERATE_BURST", 3),
		LockTTLSeconds:  getenvInt("RATELIMIT_AI_LOCK_TTL_SECONDS", 300),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

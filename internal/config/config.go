package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers
const (
	StoreDriverMongoDB  = "mongodb"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Supported verdict cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Store selection
	StoreDriver string `json:"store_driver"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Collection / table names
	UsedEmailsCollection      string `json:"mongo_used_emails_collection"`
	SurveyResponsesCollection string `json:"mongo_survey_responses_collection"`

	// Postgres (Supabase) configuration. The Supabase URL and keys are carried as
	// opaque project settings; InitPostgres only reports whether they are set.
	DatabaseURL            string `json:"-"`
	SupabaseURL            string `json:"supabase_url"`
	SupabaseAnonKey        string `json:"-"`
	SupabaseServiceRoleKey string `json:"-"`

	// Verdict cache configuration
	CacheBackend         string        `json:"cache_backend"`
	CacheTTL             time.Duration `json:"cache_ttl"`
	CacheCleanupInterval time.Duration `json:"cache_cleanup_interval"`

	// Redis configuration
	RedisURI          string        `json:"redis_uri"`
	RedisPassword     string        `json:"-"`
	RedisDB           int           `json:"redis_db"`
	RedisPoolSize     int           `json:"redis_pool_size"`
	RedisMinIdleConns int           `json:"redis_min_idle_conns"`
	RedisDialTimeout  time.Duration `json:"redis_dial_timeout"`
	RedisReadTimeout  time.Duration `json:"redis_read_timeout"`
	RedisWriteTimeout time.Duration `json:"redis_write_timeout"`

	// Email registry configuration
	EmailDomainSuffix    string `json:"email_domain_suffix"`
	EmailRegisterRecheck bool   `json:"email_register_recheck"`
	BcryptCost           int    `json:"bcrypt_cost"`

	// Researcher access
	AdminAuthEnabled   bool          `json:"admin_auth_enabled"`
	ResearcherPassword string        `json:"-"`
	JWTSecret          string        `json:"-"`
	JWTTTL             time.Duration `json:"jwt_ttl"`

	// Per-client, per-endpoint request budget for the public endpoints.
	// 0 (the default) disables limiting.
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// CORS
	AllowedOrigins []string `json:"allowed_origins"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables, after reading an optional .env file
func LoadConfig() error {
	// A missing .env is the normal case outside local development
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnvOrDefault("CACHE_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL: must be positive")
	}

	cleanupInterval, err := time.ParseDuration(getEnvOrDefault("CACHE_CLEANUP_INTERVAL", "1m"))
	if err != nil {
		return fmt.Errorf("invalid CACHE_CLEANUP_INTERVAL: %w", err)
	}

	jwtTTL, err := time.ParseDuration(getEnvOrDefault("JWT_TTL", "8h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnvOrDefault("BCRYPT_COST", "10"))
	if err != nil {
		return fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if bcryptCost < 4 || bcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST: must be between 4 and 31")
	}

	recheck, err := strconv.ParseBool(getEnvOrDefault("EMAIL_REGISTER_RECHECK", "true"))
	if err != nil {
		return fmt.Errorf("invalid EMAIL_REGISTER_RECHECK: %w", err)
	}

	adminAuthEnabled, err := strconv.ParseBool(getEnvOrDefault("ADMIN_AUTH_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("invalid ADMIN_AUTH_ENABLED: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_PER_MINUTE", "0"))
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if rateLimit < 0 {
		return fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: must not be negative")
	}

	storeDriver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreDriverMongoDB))
	switch storeDriver {
	case StoreDriverMongoDB, StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %q", storeDriver)
	}

	// DATABASE_URL is the Supabase Postgres connection string. SUPABASE_URL is the
	// project's REST endpoint and is never used to connect.
	databaseURL := getEnvOrDefault("DATABASE_URL", "")
	if storeDriver == StoreDriverPostgres && databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required when STORE_DRIVER is postgres")
	}

	cacheBackend := strings.ToLower(getEnvOrDefault("CACHE_BACKEND", CacheBackendMemory))
	switch cacheBackend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND: %q", cacheBackend)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if adminAuthEnabled && jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required when ADMIN_AUTH_ENABLED is true")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		StoreDriver: storeDriver,

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "survey"),

		UsedEmailsCollection:      getEnvOrDefault("MONGODB_USED_EMAILS_COLLECTION", "used_emails"),
		SurveyResponsesCollection: getEnvOrDefault("MONGODB_SURVEY_RESPONSES_COLLECTION", "survey_responses"),

		// Postgres configuration
		DatabaseURL:            databaseURL,
		SupabaseURL:            getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseAnonKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseServiceRoleKey: getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),

		// Cache configuration
		CacheBackend:         cacheBackend,
		CacheTTL:             cacheTTL,
		CacheCleanupInterval: cleanupInterval,

		// Redis configuration
		RedisURI:          getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword:     getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:           redisDB,
		RedisPoolSize:     getEnvAsIntOrDefault("REDIS_POOL_SIZE", 10),
		RedisMinIdleConns: getEnvAsIntOrDefault("REDIS_MIN_IDLE_CONNS", 2),
		RedisDialTimeout:  getEnvAsDurationOrDefault("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:  getEnvAsDurationOrDefault("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout: getEnvAsDurationOrDefault("REDIS_WRITE_TIMEOUT", 3*time.Second),

		// Email registry
		EmailDomainSuffix:    strings.ToLower(strings.TrimSpace(getEnvOrDefault("EMAIL_DOMAIN_SUFFIX", ""))),
		EmailRegisterRecheck: recheck,
		BcryptCost:           bcryptCost,

		// Researcher access
		AdminAuthEnabled:   adminAuthEnabled,
		ResearcherPassword: getEnvOrDefault("RESEARCHER_PASSWORD", ""),
		JWTSecret:          jwtSecret,
		JWTTTL:             jwtTTL,

		RateLimitPerMinute: rateLimit,

		AllowedOrigins: parseCommaSeparatedList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		// Tracing configuration
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the integer value of an environment variable, or the default when unset or invalid
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the duration value of an environment variable, or the default when unset or invalid
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// parseCommaSeparatedList splits a comma separated value, dropping empty items
func parseCommaSeparatedList(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

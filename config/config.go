// config/config.go - Environment-backed application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devJWTSecret = "liga-dev-secret-change-in-production-0000"

type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins string
	BodyLimit   int
	StaticDir   string
	SeedFile    string

	// CurrentSeason is used when a request does not name a season.
	CurrentSeason string

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	AuthRateLimit     int
	AuthRateWindow    time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "4000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		DatabaseURL:       databaseURL(),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", time.Hour),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		BodyLimit:         getEnvInt("BODY_LIMIT_MB", 50) * 1024 * 1024,
		StaticDir:         getEnv("STATIC_DIR", "./public"),
		SeedFile:          getEnv("SEED_FILE", "./data/times.yaml"),
		CurrentSeason:     getEnv("CURRENT_SEASON", strconv.Itoa(time.Now().Year())),
		RateLimitEnabled:  !isFalse(os.Getenv("RATE_LIMIT_ENABLED")),
		RateLimitRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 300),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		AuthRateLimit:     getEnvInt("AUTH_RATE_LIMIT_MAX", 10),
		AuthRateWindow:    getEnvDuration("AUTH_RATE_LIMIT_WINDOW", 5*time.Minute),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET environment variable must be set")
		}
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters long")
	}
	if _, err := strconv.Atoi(c.CurrentSeason); err != nil {
		return fmt.Errorf("CURRENT_SEASON must be a year, got %q", c.CurrentSeason)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "liga"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}

func isFalse(val string) bool {
	val = strings.ToLower(strings.TrimSpace(val))
	return val == "false" || val == "0" || val == "no"
}

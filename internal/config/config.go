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

// Development-only signing secrets. LoadConfig refuses them when
// ENVIRONMENT=production.
const (
	defaultAccessSecret  = "default_secret"
	defaultRefreshSecret = "default_refresh_secret"
)

type Config struct {
	DBUrl       string
	Port        string
	Environment string
	LogLevel    string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	BcryptCost int
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using process environment")
	}

	cfg := Config{
		DBUrl:       withParseTime(os.Getenv("DB_URL")),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AccessTokenSecret:  os.Getenv("JWT_SECRET"),
		RefreshTokenSecret: os.Getenv("JWT_REFRESH_SECRET"),
	}

	var err error
	if cfg.AccessTokenTTL, err = getEnvDuration("ACCESS_TOKEN_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = getEnvInt("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}

	if err := cfg.applySecretFallbacks(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applySecretFallbacks() error {
	if c.AccessTokenSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using insecure development key")
		c.AccessTokenSecret = defaultAccessSecret
	}
	if c.RefreshTokenSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_REFRESH_SECRET is required in production")
		}
		log.Warn().Msg("JWT_REFRESH_SECRET not set, using insecure development key")
		c.RefreshTokenSecret = defaultRefreshSecret
	}
	return nil
}

// withParseTime makes the mysql driver scan DATETIME columns into time.Time.
func withParseTime(dsn string) string {
	if dsn == "" || strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

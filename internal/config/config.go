package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "UrbanLoft"
	defaultAppEnv        = "development"
	defaultPort          = "5000"
	defaultLogLevel      = "info"
	defaultDBHost        = "localhost"
	defaultDBPort        = "5432"
	defaultTokenTTL      = 24 * time.Hour
	defaultShutdownDelay = 10 * time.Second

	tokenTTLEnvVar         = "TOKEN_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. The database URL is assembled from the DB_* variables unless
// DATABASE_URL is set directly; outside development the database settings are
// mandatory. JWT_SECRET is always mandatory.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		ShutdownPeriod: defaultShutdownDelay,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts()
	}

	if v := os.Getenv(tokenTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", tokenTTLEnvVar, err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	if cfg.DatabaseURL == "" && !cfg.IsDev() {
		return Config{}, fmt.Errorf("database settings must be set when APP_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// databaseURLFromParts builds a pgx connection URL from the DB_* variables.
// Returns empty when DB_NAME is unset so development can run without a database.
func databaseURLFromParts() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		return ""
	}
	host := getEnv("DB_HOST", defaultDBHost)
	port := getEnv("DB_PORT", defaultDBPort)
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")

	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers selectable with DATABASE_DRIVER.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLX     = "sqlx"
	DriverSQLite3  = "sqlite3"
)

const (
	envDatabaseDriver         = "DATABASE_DRIVER"
	envDatabaseURL            = "DATABASE_URL"
	envDatabaseReplicaURL     = "DATABASE_REPLICA_URL"
	envSQLitePath             = "SQLITE_PATH"
	envHTTPAddr               = "HTTP_ADDR"
	envJWTSecret              = "JWT_SECRET"
	envJWTExpiryMinutes       = "JWT_EXPIRY_MINUTES"
	envCORSAllowedOrigins     = "CORS_ALLOWED_ORIGINS"
	envOverdueThresholdDays   = "OVERDUE_THRESHOLD_DAYS"
	envAllowAdminSignup       = "LIBRARY_ALLOW_ADMIN_SIGNUP"
	envAuthRateLimitPerMinute = "AUTH_RATE_LIMIT_PER_MINUTE"
	envTrustProxyHeaders      = "TRUST_PROXY_HEADERS"
	envLogLevel               = "LOG_LEVEL"
	envOTELEnabled            = "OTEL_ENABLED"
	envOTELEndpoint           = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envServiceName            = "OTEL_SERVICE_NAME"

	defaultSQLitePath             = "library.db"
	defaultHTTPAddr               = ":8000"
	defaultJWTExpiryMinutes       = 60
	defaultOverdueThresholdDays   = 14
	defaultAuthRateLimitPerMinute = 10
	defaultOTELEndpoint           = "localhost:4318"
	defaultServiceName            = "library-backend"
)

var (
	// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
	ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

	// ErrMissingDatabaseURL is returned when a postgres driver is selected without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set for postgres drivers")

	// ErrUnsupportedDriver is returned for unknown DATABASE_DRIVER values.
	ErrUnsupportedDriver = errors.New("unsupported DATABASE_DRIVER")

	// ErrInvalidValue is returned when an environment variable cannot be parsed.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the complete runtime configuration of the library backend.
type Config struct {
	DatabaseDriver     string
	DatabaseURL        string
	DatabaseReplicaURL string
	SQLitePath         string

	HTTPAddr               string
	JWTSecret              string
	JWTExpiry              time.Duration
	CORSAllowedOrigins     []string
	OverdueThreshold       time.Duration
	AllowAdminSignup       bool
	AuthRateLimitPerMinute int
	TrustProxyHeaders      bool

	LogLevel     slog.Level
	OTELEnabled  bool
	OTELEndpoint string
	ServiceName  string
}

// Load reads the configuration from the environment after loading an optional .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function, which makes it testable without touching the process env.
func FromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		DatabaseDriver:         p.string(envDatabaseDriver, DriverSQLite3),
		DatabaseURL:            p.string(envDatabaseURL, ""),
		DatabaseReplicaURL:     p.string(envDatabaseReplicaURL, ""),
		SQLitePath:             p.string(envSQLitePath, defaultSQLitePath),
		HTTPAddr:               p.string(envHTTPAddr, defaultHTTPAddr),
		JWTSecret:              p.string(envJWTSecret, ""),
		JWTExpiry:              time.Duration(p.int(envJWTExpiryMinutes, defaultJWTExpiryMinutes)) * time.Minute,
		CORSAllowedOrigins:     p.list(envCORSAllowedOrigins),
		OverdueThreshold:       time.Duration(p.int(envOverdueThresholdDays, defaultOverdueThresholdDays)) * 24 * time.Hour,
		AllowAdminSignup:       p.bool(envAllowAdminSignup, false),
		AuthRateLimitPerMinute: p.int(envAuthRateLimitPerMinute, defaultAuthRateLimitPerMinute),
		TrustProxyHeaders:      p.bool(envTrustProxyHeaders, false),
		LogLevel:               p.logLevel(envLogLevel, slog.LevelInfo),
		OTELEnabled:            p.bool(envOTELEnabled, false),
		OTELEndpoint:           p.string(envOTELEndpoint, defaultOTELEndpoint),
		ServiceName:            p.string(envServiceName, defaultServiceName),
	}

	if p.err != nil {
		return Config{}, p.err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the combinations of settings that cannot be checked per variable.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite3:
	case DriverPGX, DriverPostgres, DriverSQLX:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DatabaseDriver)
	}

	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	if c.JWTExpiry <= 0 || c.OverdueThreshold <= 0 || c.AuthRateLimitPerMinute <= 0 {
		return fmt.Errorf("%w: durations and rate limits must be positive", ErrInvalidValue)
	}

	return nil
}

// envParser collects the first parse error, so Load can report it after reading all variables.
type envParser struct {
	getenv func(string) string
	err    error
}

func (p *envParser) string(key, fallback string) string {
	if value := strings.TrimSpace(p.getenv(key)); value != "" {
		return value
	}

	return fallback
}

func (p *envParser) int(key string, fallback int) int {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw)
		return fallback
	}

	return value
}

func (p *envParser) bool(key string, fallback bool) bool {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw)
		return fallback
	}

	return value
}

func (p *envParser) list(key string) []string {
	var values []string

	for _, value := range strings.Split(p.getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	return values
}

func (p *envParser) logLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		p.fail(key, raw)
		return fallback
	}

	return level
}

func (p *envParser) fail(key, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
}

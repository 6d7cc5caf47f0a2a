package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"incidentTrust/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	GuestStorePrimary = "primary"
	GuestStoreRedis   = "redis"

	AuditLog   = "log"
	AuditRedis = "redis"
)

type Config struct {
	Env       string               `json:"env"`
	Http      HttpConfig           `json:"http"`
	Store     StoreConfig          `json:"store"`
	Postgres  PostgresConfig       `json:"postgres"`
	Mongo     MongoConfig          `json:"mongo"`
	Redis     RedisConfig          `json:"redis"`
	APIKey    string               `json:"api_key,omitempty"`
	RateLimit RateLimitConfig      `json:"rate_limit"`
	Guest     GuestConfig          `json:"guest"`
	Audit     AuditConfig          `json:"audit"`
	Scoring   domain.ScoringPolicy `json:"scoring"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver                string        `json:"driver"`
	GuestStore            string        `json:"guest_store"`
	Timeout               time.Duration `json:"timeout"`
	DuplicateRadiusMeters float64       `json:"duplicate_radius_m"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type MongoConfig struct {
	URI      string `json:"uri,omitempty"`
	Database string `json:"database"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type RateLimitConfig struct {
	RPS   int           `json:"rps"`
	Burst int           `json:"burst"`
	TTL   time.Duration `json:"ttl"`
}

type GuestConfig struct {
	MaxActions int           `json:"max_actions"`
	TTL        time.Duration `json:"ttl"`
}

// AuditConfig selects where audit events go. SinkURL, when set, starts the
// dispatcher that drains the redis queue into an HTTP endpoint.
type AuditConfig struct {
	Hook     string        `json:"hook"`
	QueueKey string        `json:"queue_key"`
	SinkURL  string        `json:"sink_url"`
	Timeout  time.Duration `json:"timeout"`
	Retries  int           `json:"retries"`
	Workers  int           `json:"workers"`
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:                getEnv("STORE_DRIVER", DriverPostgres),
			GuestStore:            getEnv("GUEST_STORE", GuestStorePrimary),
			Timeout:               getEnvDuration("STORE_TIMEOUT", 3*time.Second),
			DuplicateRadiusMeters: getEnvFloat("DUPLICATE_RADIUS_M", 100),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "incident_trust"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://mongo-local:27017"),
			Database: getEnv("MONGO_DB", "incident_trust"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		APIKey: getEnv("API_KEY", ""),
		RateLimit: RateLimitConfig{
			RPS:   getEnvInt("RATE_LIMIT_RPS", 10),
			Burst: getEnvInt("RATE_LIMIT_BURST", 20),
			TTL:   getEnvDuration("RATE_LIMIT_TTL", 3*time.Minute),
		},
		Guest: GuestConfig{
			MaxActions: getEnvInt("GUEST_MAX_ACTIONS", domain.DefaultGuestMaxActions),
			TTL:        getEnvDuration("GUEST_TTL", domain.DefaultGuestTTL),
		},
		Audit: AuditConfig{
			Hook:     getEnv("AUDIT_HOOK", AuditLog),
			QueueKey: getEnv("AUDIT_QUEUE_KEY", "audit:events"),
			SinkURL:  getEnv("AUDIT_SINK_URL", ""),
			Timeout:  getEnvDuration("AUDIT_SINK_TIMEOUT", 5*time.Second),
			Retries:  getEnvInt("AUDIT_SINK_RETRIES", 3),
			Workers:  getEnvInt("AUDIT_WORKERS", 2),
		},
		Scoring: domain.DefaultScoringPolicy(),
	}

	if path := getEnv("SCORING_POLICY_FILE", ""); path != "" {
		policy, err := LoadScoringPolicy(path)
		if err != nil {
			return nil, err
		}
		cfg.Scoring = policy
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("store_driver", cfg.Store.Driver),
		slog.String("guest_store", cfg.Store.GuestStore),
		slog.String("audit_hook", cfg.Audit.Hook),
		slog.Bool("audit_dispatch", cfg.Audit.SinkURL != ""))

	return cfg, nil
}

// LoadScoringPolicy reads a YAML policy. Keys missing from the file keep
// their default weights.
func LoadScoringPolicy(path string) (domain.ScoringPolicy, error) {
	policy := domain.DefaultScoringPolicy()

	raw, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read scoring policy: %w", err)
	}
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return policy, fmt.Errorf("parse scoring policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("scoring policy %s: %w", path, err)
	}
	return policy, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("MONGO_URI and MONGO_DB required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of postgres, mongo, memory; got %q", c.Store.Driver)
	}

	switch c.Store.GuestStore {
	case GuestStorePrimary, GuestStoreRedis:
	default:
		return fmt.Errorf("GUEST_STORE must be primary or redis; got %q", c.Store.GuestStore)
	}

	switch c.Audit.Hook {
	case AuditLog, AuditRedis:
	default:
		return fmt.Errorf("AUDIT_HOOK must be log or redis; got %q", c.Audit.Hook)
	}
	if c.Audit.SinkURL != "" && c.Audit.Hook != AuditRedis {
		return errors.New("AUDIT_SINK_URL requires AUDIT_HOOK=redis")
	}

	if c.Store.Timeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	if c.Store.DuplicateRadiusMeters <= 0 || c.Store.DuplicateRadiusMeters > domain.MaxNearbyRadiusMeters {
		return fmt.Errorf("DUPLICATE_RADIUS_M must be in (0, %.0f]", domain.MaxNearbyRadiusMeters)
	}
	if c.Guest.MaxActions <= 0 {
		return errors.New("GUEST_MAX_ACTIONS must be positive")
	}
	if c.Guest.TTL <= 0 {
		return errors.New("GUEST_TTL must be positive")
	}

	return c.Scoring.Validate()
}

// UsesRedis reports whether any component needs a redis connection.
func (c *Config) UsesRedis() bool {
	return c.Store.GuestStore == GuestStoreRedis || c.Audit.Hook == AuditRedis
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

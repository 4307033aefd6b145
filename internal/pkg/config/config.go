package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

type Config struct {
	Port            string        `env:"PORT,             default=8000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth        AuthConfig
	Idempotency IdempotencyConfig
	Mongo       MongoConfig
	Redis       RedisConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	// TokenTTL of zero issues tokens without an expiry claim.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	DefaultAdminUsername   string `env:"DEFAULT_ADMIN_USERNAME,   default=admin"`
	DefaultAdminPassword   string `env:"DEFAULT_ADMIN_PASSWORD,   default=admin"`
	DefaultAdminDepartment string `env:"DEFAULT_ADMIN_DEPARTMENT, default=FrontDesk"`
}

type IdempotencyConfig struct {
	TTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hotel"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL < 0 {
		errs = append(errs, errors.New("TOKEN_TTL must not be negative"))
	}
	if c.Auth.DefaultAdminUsername == "" || c.Auth.DefaultAdminPassword == "" {
		errs = append(errs, errors.New("default admin credentials must not be empty"))
	}
	if !domain.Department(c.Auth.DefaultAdminDepartment).Valid() {
		errs = append(errs, fmt.Errorf("DEFAULT_ADMIN_DEPARTMENT %q is not a known department", c.Auth.DefaultAdminDepartment))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

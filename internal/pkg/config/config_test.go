package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8000" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Idempotency.TTL != 24*time.Hour || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.Auth.DefaultAdminUsername != "admin" || cfg.Auth.DefaultAdminDepartment != "FrontDesk" {
		t.Errorf("unexpected admin defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Database != "hotel" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":       "9000",
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "0s",
		"REDIS_DB":   "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.TokenTTL != 0 || cfg.Redis.DB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"TOKEN_TTL": "forever"})); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := load(context.Background(), envconfig.MapLookuper(map[string]string{}))

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected missing secret error, got %v", err)
	}

	cfg.Auth.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_DefaultAdminDepartment(t *testing.T) {
	cfg, _ := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":               "s3cret",
		"DEFAULT_ADMIN_DEPARTMENT": "FrontDesks",
	}))

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "DEFAULT_ADMIN_DEPARTMENT") {
		t.Fatalf("expected department error, got %v", err)
	}

	cfg.Auth.DefaultAdminDepartment = "Housekeeping"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

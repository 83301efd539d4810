package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.JWT.TTL != time.Hour {
		t.Errorf("expected 1h token ttl, got %s", cfg.JWT.TTL)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if cfg.Report.Dir != "./public/uploads/reports" || cfg.Report.BaseURL != "/reports" {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.IsProduction() {
		t.Errorf("default env must not be production")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"ENV":                 "production",
		"RATE_LIMIT_REQUESTS": "5",
		"RATE_LIMIT_WINDOW":   "1m",
		"CORS_ORIGINS":        "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
	if cfg.RateLimit.Requests != 5 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"RATE_LIMIT_REQUESTS": "0",
	}))
	if err == nil {
		t.Fatalf("expected error for zero request quota")
	}
}

func TestLoad_RedisSettings(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"REDIS_PASSWORD":  "r3dis",
		"REDIS_POOL_SIZE": "25",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Password != "r3dis" || cfg.Redis.PoolSize != 25 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Redis.MinIdleConns != 2 || cfg.Redis.DialTimeout != 5*time.Second || cfg.Redis.OpTimeout != 500*time.Millisecond {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
}

func TestTrustedProxyRanges(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "10.0.0.0/8,192.0.2.7",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ranges, err := cfg.TrustedProxyRanges()
	if err != nil {
		t.Fatalf("ranges: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %v", ranges)
	}
	if ranges[0].String() != "10.0.0.0/8" || ranges[1].String() != "192.0.2.7/32" {
		t.Errorf("unexpected ranges: %v", ranges)
	}
}

func TestTrustedProxyRanges_EmptyByDefault(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ranges, err := cfg.TrustedProxyRanges()
	if err != nil || len(ranges) != 0 {
		t.Fatalf("expected no trusted proxies, got %v (%v)", ranges, err)
	}
}

func TestLoad_RejectsInvalidTrustedProxy(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "not-an-ip",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid proxy address")
	}
}

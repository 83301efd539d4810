package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,         default=3000"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	// TrustedProxies lists the CIDR ranges whose X-Forwarded-For header is
	// believed. When empty the client address is the socket peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	JWT          JWTConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Report       ReportConfig
	DefaultAdmin DefaultAdminConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	TTL    time.Duration `env:"JWT_TTL,    default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=coperex_case_analysis"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,           default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,             default=0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE,      default=10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS, default=2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT,   default=5s"`
	OpTimeout    time.Duration `env:"REDIS_OP_TIMEOUT,     default=500ms"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=15m"`
}

type ReportConfig struct {
	Dir     string `env:"REPORT_DIR,      default=./public/uploads/reports"`
	BaseURL string `env:"REPORT_BASE_URL, default=/reports"`
}

// DefaultAdminConfig seeds the first administrator. Seeding is skipped when
// Email or Password is empty.
type DefaultAdminConfig struct {
	Name     string `env:"DEFAULT_ADMIN_NAME,  default=Admin"`
	Email    string `env:"DEFAULT_ADMIN_EMAIL"`
	Password string `env:"DEFAULT_ADMIN_PASSWORD"`
	Phone    string `env:"DEFAULT_ADMIN_PHONE, default=00000000"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TrustedProxyRanges parses TrustedProxies. A bare IP is treated as a
// single-host range.
func (c *Config) TrustedProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("config: TRUSTED_PROXIES: invalid address %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimit.Requests <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_REQUESTS must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive")
	}
	if _, err := cfg.TrustedProxyRanges(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

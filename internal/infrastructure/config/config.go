package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"APP_ENV,   default=Development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// RoleManagePermission gates the /role routes when set.
	RoleManagePermission string `env:"ROLE_MANAGE_PERMISSION"`
	AuditWorkers         int    `env:"AUDIT_WORKERS, default=4"`
	BcryptCost           int    `env:"BCRYPT_COST,   default=10"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type TokenConfig struct {
	AccessSecret    string        `env:"ACCESS_TOKEN_SECRET,     required"`
	AccessExpireIn  Lifetime      `env:"ACCESS_TOKEN_EXPIRE_IN,  default=15m"`
	RefreshSecret   string        `env:"REFRESH_TOKEN_SECRET,    required"`
	RefreshExpireIn Lifetime      `env:"REFRESH_TOKEN_EXPIRE_IN, default=7d"`
	CookieMaxAge    time.Duration `env:"ACCESS_COOKIE_MAX_AGE,   default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ecom"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Lifetime is a token lifetime read from the environment. It accepts any
// time.ParseDuration value plus a whole number of days ("7d", "1d").
type Lifetime time.Duration

// EnvDecode implements envconfig.Decoder.
func (l *Lifetime) EnvDecode(val string) error {
	val = strings.TrimSpace(val)
	if days, ok := strings.CutSuffix(val, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid lifetime %q", val)
		}
		*l = Lifetime(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid lifetime %q: %w", val, err)
	}
	*l = Lifetime(d)
	return nil
}

func (l Lifetime) Duration() time.Duration { return time.Duration(l) }

// IsDevelopment reports whether APP_ENV is "development", ignoring case.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Package config loads process configuration. Everything is explicit:
// Load returns a value that main passes to the components that need
// it; nothing reads configuration after startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/skillsnap/portfolio/cache"
)

// ErrNoSecret aborts startup when the token signing secret is absent.
// There is no fallback: tokens signed with a default secret would be
// forgeable.
var ErrNoSecret = errors.New("config: jwt.secret is not set (SKILLSNAP_JWT_SECRET)")

// Config is the full process configuration.
type Config struct {
	Addr     string
	LogLevel string

	// JWTSecret signs and validates every token. Required.
	JWTSecret string

	// TokenLifetime is the validity window for issued tokens.
	TokenLifetime time.Duration

	// RedisAddr switches the cache to redis when non-empty; the
	// default is the in-process store.
	RedisAddr string

	// AdminEmail/AdminPassword seed an admin account at startup when
	// both are set.
	AdminEmail    string
	AdminPassword string

	cacheTTLs map[string]cache.TTL
}

// Load reads configuration from ./config.yaml (optional) with
// SKILLSNAP_* environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("skillsnap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("token.lifetime", "24h")
	v.SetDefault("cache.profile.list", "10m")
	v.SetDefault("cache.profile.item", "15m")
	v.SetDefault("cache.project.list", "5m")
	v.SetDefault("cache.project.item", "10m")
	v.SetDefault("cache.skill.list", "5m")
	v.SetDefault("cache.skill.item", "10m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	// Bare AutomaticEnv only resolves keys it has seen; bind the
	// nested keys explicitly so SKILLSNAP_JWT_SECRET et al. work
	// without a config file.
	for _, key := range []string{"jwt.secret", "admin.email", "admin.password", "redis.addr"} {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Addr:          v.GetString("addr"),
		LogLevel:      v.GetString("log.level"),
		JWTSecret:     v.GetString("jwt.secret"),
		TokenLifetime: v.GetDuration("token.lifetime"),
		RedisAddr:     v.GetString("redis.addr"),
		AdminEmail:    v.GetString("admin.email"),
		AdminPassword: v.GetString("admin.password"),
		cacheTTLs: map[string]cache.TTL{
			"profile": {List: v.GetDuration("cache.profile.list"), Item: v.GetDuration("cache.profile.item")},
			"project": {List: v.GetDuration("cache.project.list"), Item: v.GetDuration("cache.project.item")},
			"skill":   {List: v.GetDuration("cache.skill.list"), Item: v.GetDuration("cache.skill.item")},
		},
	}

	if cfg.JWTSecret == "" {
		return nil, ErrNoSecret
	}

	return cfg, nil
}

// CachePolicy builds the TTL policy from the loaded configuration.
func (c *Config) CachePolicy() *cache.Policy {
	p := cache.NewPolicy(cache.TTL{List: 5 * time.Minute, Item: 10 * time.Minute})
	for kind, ttl := range c.cacheTTLs {
		p.Set(kind, ttl)
	}
	return p
}

func bindEnv(v *viper.Viper, key string) error {
	if err := v.BindEnv(key); err != nil {
		return fmt.Errorf("config: bind %s: %w", key, err)
	}
	return nil
}

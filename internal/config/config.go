package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/apiclient"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/stream"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Stream    StreamConfig    `mapstructure:"stream"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Consul    ConsulConfig    `mapstructure:"consul"`
}

// ServerConfig.TrustProxy takes the client address from X-Forwarded-For and
// X-Real-IP. Enable it only behind a proxy that sets those headers.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustProxy     bool     `mapstructure:"trust_proxy"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Prefix  string `mapstructure:"prefix"`
}

type StreamConfig struct {
	Retry time.Duration `mapstructure:"retry"`
}

// RedisConfig points at the strike/ban store. An empty Addr keeps bans in
// process memory.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type RateLimitConfig struct {
	RPS         float64       `mapstructure:"rps"`
	Burst       int           `mapstructure:"burst"`
	MaxStrikes  int           `mapstructure:"max_strikes"`
	BanDuration time.Duration `mapstructure:"ban_duration"`
}

// ConsulConfig enables backend discovery when Addr is set; the discovered
// instance replaces api.base_url.
type ConsulConfig struct {
	Addr    string `mapstructure:"addr"`
	Service string `mapstructure:"service"`
}

// Load reads candy-ui.{yaml,json,toml} from the working directory when present
// and applies CANDY_* environment overrides on top of the defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("candy-ui")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CANDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("api.base_url", "http://localhost:4567")
	v.SetDefault("api.prefix", apiclient.DefaultPrefix)
	v.SetDefault("stream.retry", stream.DefaultRetry)
	v.SetDefault("redis.addr", "")
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("ratelimit.max_strikes", 5)
	v.SetDefault("ratelimit.ban_duration", 10*time.Minute)
	v.SetDefault("consul.addr", "")
	v.SetDefault("consul.service", "candy-api")
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" && c.Consul.Addr == "" {
		return errors.New("api.base_url is required when consul discovery is disabled")
	}
	if c.API.Prefix != "" && !strings.HasPrefix(c.API.Prefix, "/") {
		return fmt.Errorf("api.prefix must start with '/', got %q", c.API.Prefix)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("ratelimit.rps and ratelimit.burst must be greater than zero")
	}
	return nil
}

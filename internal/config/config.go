package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. TELEMETRY_EMITTER_SERVER.
const envPrefix = "TELEMETRY"

// Config holds settings for every binary in the repo. Each binary reads
// only the sections it needs.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Collector CollectorConfig `mapstructure:"collector"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Emitter   EmitterConfig   `mapstructure:"emitter"`
}

// LogConfig sets the level and an optional rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type CollectorConfig struct {
	Port string `mapstructure:"port"`
}

// AuthConfig enables the bearer guard on fault toggles when TokenSecret is set.
type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// RedisConfig enables the best-effort Redis mirror when Addr is set.
type RedisConfig struct {
	Addr          string `mapstructure:"addr"`
	DB            int    `mapstructure:"db"`
	LatestKey     string `mapstructure:"latest_key"`
	EventsChannel string `mapstructure:"events_channel"`
}

type EmitterConfig struct {
	Server   string        `mapstructure:"server"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

var (
	errBadServerURL = errors.New("emitter.server must be an absolute http(s) URL")
	errBadInterval  = errors.New("emitter.interval must be > 0")
	errBadTimeout   = errors.New("emitter.timeout must be > 0")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("collector.port", "8000")
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.latest_key", "telemetry:latest")
	v.SetDefault("redis.events_channel", "telemetry:events")
	v.SetDefault("emitter.server", "http://127.0.0.1:8000")
	v.SetDefault("emitter.interval", "100ms")
	v.SetDefault("emitter.timeout", "1s")
}

// Load reads configs/config.yml (or config.yml from any of paths), applies
// defaults and TELEMETRY_* env overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the emitter section; collector settings all have usable zero values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Emitter.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errBadServerURL, c.Emitter.Server)
	}
	if c.Emitter.Interval <= 0 {
		return errBadInterval
	}
	if c.Emitter.Timeout <= 0 {
		return errBadTimeout
	}
	return nil
}

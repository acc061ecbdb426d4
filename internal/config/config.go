package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/aretw0/turtle/internal/logging"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TURTLE_"

// Config is the resolved application configuration.
type Config struct {
	Grid        domain.Bounds `mapstructure:"grid" yaml:"grid"`
	BatchSuffix string        `mapstructure:"batch_suffix" yaml:"batch_suffix"`
	Strict      bool          `mapstructure:"strict" yaml:"strict"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	HTTP        HTTPConfig    `mapstructure:"http" yaml:"http"`
	Redis       RedisConfig   `mapstructure:"redis" yaml:"redis"`
}

// HTTPConfig configures `turtle serve`.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// RedisConfig enables the Redis report sink when Addr is set.
type RedisConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Key     string `mapstructure:"key" yaml:"key"`
	Channel string `mapstructure:"channel" yaml:"channel"`
	MaxLen  int64  `mapstructure:"max_len" yaml:"max_len"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:        domain.DefaultBounds(),
		BatchSuffix: domain.DefaultBatchSuffix,
		LogLevel:    "info",
		HTTP:        HTTPConfig{Addr: ":8080"},
		Redis:       RedisConfig{Key: "turtle:reports"},
	}
}

// envKeys maps environment variables to config paths.
var envKeys = map[string][]string{
	EnvPrefix + "GRID_MIN_X":    {"grid", "min", "x"},
	EnvPrefix + "GRID_MIN_Y":    {"grid", "min", "y"},
	EnvPrefix + "GRID_MAX_X":    {"grid", "max", "x"},
	EnvPrefix + "GRID_MAX_Y":    {"grid", "max", "y"},
	EnvPrefix + "BATCH_SUFFIX":  {"batch_suffix"},
	EnvPrefix + "STRICT":        {"strict"},
	EnvPrefix + "LOG_LEVEL":     {"log_level"},
	EnvPrefix + "HTTP_ADDR":     {"http", "addr"},
	EnvPrefix + "REDIS_ADDR":    {"redis", "addr"},
	EnvPrefix + "REDIS_KEY":     {"redis", "key"},
	EnvPrefix + "REDIS_CHANNEL": {"redis", "channel"},
	EnvPrefix + "REDIS_MAX_LEN": {"redis", "max_len"},
}

// Load resolves the configuration: defaults, then the YAML file at path
// (skipped when path is empty), then TURTLE_* environment variables.
func Load(path string) (*Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for env, keys := range envKeys {
		if val, ok := os.LookupEnv(env); ok {
			setPath(raw, keys, val)
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnvFile(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.BatchSuffix) == "" {
		return errors.New("batch_suffix must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Redis.MaxLen < 0 {
		return fmt.Errorf("redis.max_len must not be negative, got %d", c.Redis.MaxLen)
	}
	return nil
}

func decode(input map[string]any, output *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(input)
}

func setPath(m map[string]any, keys []string, val string) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = val
}

// Package config loads the agent configuration from a YAML file, with
// environment variable overrides for secrets and deployment specifics.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/a2acal/logging"
)

// CalendarConfig selects and parameterizes the calendar storage backend.
type CalendarConfig struct {
	// Backend is "file" or "redis".
	Backend string `yaml:"backend"`
	// Path is the calendar document path for the file backend.
	Path string `yaml:"path"`
	// Redis holds connection parameters for the redis backend.
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection parameters for the calendar backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// ModelConfig selects and parameterizes the language-model provider.
type ModelConfig struct {
	// Provider is "openai", "anthropic" or "mock".
	Provider string `yaml:"provider"`
	// Name is the provider-specific model identifier.
	Name string `yaml:"name"`
	// APIKey authenticates against the provider. The provider SDK's own
	// environment variable is used when empty.
	APIKey string `yaml:"api_key"`
	// Stream toggles streaming generation where supported.
	Stream bool `yaml:"stream"`
}

// Config is the full agent configuration.
type Config struct {
	// Name identifies the agent in status narration.
	Name string `yaml:"name"`
	// Instructions are the system instructions passed to the model.
	Instructions string `yaml:"instructions"`
	// MaxToolCalls bounds the tool execution loop per task turn.
	MaxToolCalls int `yaml:"max_tool_calls"`

	Calendar CalendarConfig `yaml:"calendar"`
	Model    ModelConfig    `yaml:"model"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file is given: a file-backed
// calendar next to the process and a mock model, so the agent runs without
// credentials.
func Default() Config {
	return Config{
		Name:         "calendar-agent",
		MaxToolCalls: 10,
		Calendar: CalendarConfig{
			Backend: "file",
			Path:    "calendar.json",
		},
		Model: ModelConfig{
			Provider: "mock",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads and validates a YAML configuration file, filling unset fields
// from Default().
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Calendar.Backend {
	case "file":
		if c.Calendar.Path == "" {
			return fmt.Errorf("calendar.path is required for the file backend")
		}
	case "redis":
		if c.Calendar.Redis.Addr == "" {
			return fmt.Errorf("calendar.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown calendar backend %q", c.Calendar.Backend)
	}

	switch c.Model.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}

	if c.MaxToolCalls <= 0 {
		return fmt.Errorf("max_tool_calls must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// LoggingConfig converts the logging fields into a logging.Config.
func (c Config) LoggingConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	if c.LogFormat != "" {
		cfg.Format = c.LogFormat
	}
	return cfg
}

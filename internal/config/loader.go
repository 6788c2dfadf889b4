package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/repforge/repforge/internal/types"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnvVars replaces ${VAR} references with the environment value.
// Unset variables become empty strings.
func interpolateEnvVars(raw []byte) []byte {
	return envVarPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// Load reads configuration from a YAML file. Returns an error if the file
// does not exist or fails validation.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(interpolateEnvVars(raw))); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to parse config file", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration from path, falling back to defaults
// when the file does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case "anthropic", "openai", "mock":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown provider %q", c.Provider.Name))
	}
	if c.Database.Path == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "database path is required")
	}
	if c.Retry.MaxRetries < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "retry max_retries cannot be negative")
	}
	if c.Retry.Multiplier < 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "retry multiplier must be at least 1")
	}
	if c.Pipeline.MaxPlanRetries < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "pipeline max_plan_retries cannot be negative")
	}
	if c.Pipeline.Timeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "pipeline timeout must be positive")
	}
	if c.Pipeline.SessionConcurrency < 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "pipeline session_concurrency must be at least 1")
	}
	return nil
}

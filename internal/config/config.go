// Package config loads and validates the application configuration from
// YAML files, with ${VAR} environment interpolation for secrets.
package config

import (
	"time"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/llm/providers"
	"github.com/repforge/repforge/internal/store"
)

// Config is the root configuration.
type Config struct {
	Core     CoreConfig     `mapstructure:"core" yaml:"core"`
	Database DBConfig       `mapstructure:"database" yaml:"database"`
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Retry    RetryConfig    `mapstructure:"retry" yaml:"retry"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CoreConfig contains core application settings.
type CoreConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	Debug   bool   `mapstructure:"debug" yaml:"debug"`
}

// DBConfig contains SQLite settings.
type DBConfig struct {
	Path         string        `mapstructure:"path" yaml:"path"`
	MaxOpenConns int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	BusyTimeout  time.Duration `mapstructure:"busy_timeout" yaml:"busy_timeout"`
}

// StoreConfig converts the section into the store package's config.
func (c DBConfig) StoreConfig() store.Config {
	cfg := store.DefaultConfig(c.Path)
	if c.MaxOpenConns > 0 {
		cfg.MaxOpenConns = c.MaxOpenConns
	}
	if c.MaxIdleConns > 0 {
		cfg.MaxIdleConns = c.MaxIdleConns
	}
	if c.BusyTimeout > 0 {
		cfg.BusyTimeout = c.BusyTimeout
	}
	return cfg
}

// ProviderConfig contains model provider settings.
type ProviderConfig struct {
	Name          string  `mapstructure:"name" yaml:"name"`
	APIKey        string  `mapstructure:"api_key" yaml:"api_key"`
	ModelFast     string  `mapstructure:"model_fast" yaml:"model_fast"`
	ModelStandard string  `mapstructure:"model_standard" yaml:"model_standard"`
	RateLimit     float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst     int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// ProviderSettings converts the section into the providers package's config.
func (c ProviderConfig) ProviderSettings() providers.Config {
	return providers.Config{
		Name:          c.Name,
		APIKey:        c.APIKey,
		ModelFast:     c.ModelFast,
		ModelStandard: c.ModelStandard,
	}
}

// RetryConfig contains transient-error retry settings.
type RetryConfig struct {
	MaxRetries   int           `mapstructure:"max_retries" yaml:"max_retries"`
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
	Multiplier   float64       `mapstructure:"multiplier" yaml:"multiplier"`
	MaxDelay     time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// RetrySettings converts the section into the llm package's retry config.
func (c RetryConfig) RetrySettings() llm.RetryConfig {
	cfg := llm.DefaultRetryConfig()
	if c.MaxRetries > 0 {
		cfg.MaxRetries = c.MaxRetries
	}
	if c.InitialDelay > 0 {
		cfg.InitialDelay = c.InitialDelay
	}
	if c.Multiplier > 0 {
		cfg.Multiplier = c.Multiplier
	}
	if c.MaxDelay > 0 {
		cfg.MaxDelay = c.MaxDelay
	}
	return cfg
}

// PipelineConfig contains generation pipeline settings.
type PipelineConfig struct {
	MaxPlanRetries     int           `mapstructure:"max_plan_retries" yaml:"max_plan_retries"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ContextTokens      int           `mapstructure:"context_tokens" yaml:"context_tokens"`
	SessionConcurrency int           `mapstructure:"session_concurrency" yaml:"session_concurrency"`
	MaxOutputTokens    int           `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

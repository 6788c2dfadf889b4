package config

import "time"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			DataDir: ".repforge",
		},
		Database: DBConfig{
			Path:         ".repforge/repforge.db",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5 * time.Second,
		},
		Provider: ProviderConfig{
			Name:          "anthropic",
			ModelFast:     "claude-3-5-haiku-latest",
			ModelStandard: "claude-sonnet-4-0",
			RateLimit:     2,
			RateBurst:     4,
		},
		Retry: RetryConfig{
			MaxRetries:   3,
			InitialDelay: 1 * time.Second,
			Multiplier:   2.0,
			MaxDelay:     30 * time.Second,
		},
		Pipeline: PipelineConfig{
			MaxPlanRetries:     1,
			Timeout:            2 * time.Minute,
			ContextTokens:      100_000,
			SessionConcurrency: 3,
			MaxOutputTokens:    8192,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

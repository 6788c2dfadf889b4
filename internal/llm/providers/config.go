package providers

import "github.com/repforge/repforge/internal/llm"

// Config holds provider construction settings.
type Config struct {
	// Name selects the backend: "anthropic", "openai", or "mock".
	Name string `yaml:"name"`

	// APIKey overrides the provider's environment variable when set.
	APIKey string `yaml:"api_key"`

	// ModelFast is the model resolved for the fast tier.
	ModelFast string `yaml:"model_fast"`

	// ModelStandard is the model resolved for the standard tier.
	ModelStandard string `yaml:"model_standard"`
}

// resolveModel maps a request's explicit model or tier to a concrete model
// name.
func (c Config) resolveModel(req llm.CompletionRequest) string {
	if req.Model != "" {
		return req.Model
	}
	if req.Tier == llm.TierFast && c.ModelFast != "" {
		return c.ModelFast
	}
	return c.ModelStandard
}

package providers

import (
	"fmt"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/schema"
	"github.com/repforge/repforge/internal/types"
)

// New constructs the provider named in the config.
func New(cfg Config) (llm.Provider, error) {
	switch cfg.Name {
	case "anthropic":
		return NewAnthropicProvider(cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	case "mock":
		return NewMockProvider(nil), nil
	default:
		return nil, types.NewError(llm.ErrProviderInitFailed,
			fmt.Sprintf("unknown provider %q", cfg.Name))
	}
}

// Capabilities returns the schema capability profile for a provider name.
// Anthropic's structured output rejects numeric bounds, string length
// bounds, and multi-item array minimums; OpenAI's JSON mode enforces no
// schema constraints at all. Both get the restricted profile, with the
// full schema re-checked after the call. The mock echoes whatever it is
// given, so it can carry full capabilities.
func Capabilities(name string) schema.CapabilityProfile {
	switch name {
	case "mock":
		return schema.FullCapabilities()
	default:
		return schema.RestrictedCapabilities()
	}
}

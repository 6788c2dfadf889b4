package agents

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/schema"
	"github.com/repforge/repforge/internal/types"
)

// Config carries the shared wiring every agent needs.
type Config struct {
	Client *llm.Client

	// Capabilities describes what the backend's structured output can
	// express. Schemas are sanitized to this profile before each call;
	// the full schema is still enforced afterward.
	Capabilities schema.CapabilityProfile

	// MaxOutputTokens bounds each agent response.
	MaxOutputTokens int

	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) maxOutput() int {
	if c.MaxOutputTokens > 0 {
		return c.MaxOutputTokens
	}
	return 8192
}

// call performs one structured agent invocation: sanitize the schema for
// the backend, send the request, and decode the response into out.
// The system prompt is marked cache-eligible: it is identical across runs.
func call(ctx context.Context, cfg Config, stage, systemPrompt, userMessage string, tier llm.ModelTier, outSchema *types.JSONSchema, out any) (llm.TokenUsage, error) {
	format := types.NewJSONSchemaFormat(stage, outSchema)
	wireFormat := types.NewJSONSchemaFormat(stage, schema.Sanitize(outSchema, cfg.Capabilities))

	req := llm.CompletionRequest{
		Tier:           tier,
		System:         []llm.SystemBlock{{Text: systemPrompt, Cacheable: true}},
		Messages:       []llm.Message{llm.NewUserMessage(userMessage)},
		MaxTokens:      cfg.maxOutput(),
		ResponseFormat: &wireFormat,
	}

	resp, err := cfg.Client.CompleteStructured(ctx, req)
	if err != nil {
		return llm.TokenUsage{}, types.WrapError(types.PIPELINE_STAGE_FAILED, "stage "+stage+" failed", err)
	}

	// Re-check against the unsanitized schema: constraints the backend
	// could not express natively are enforced here.
	if verr := schema.Validate([]byte(resp.Content), format.Schema); verr != nil {
		return resp.Usage, types.WrapError(types.PIPELINE_STAGE_FAILED,
			"stage "+stage+" produced output violating its schema", verr)
	}

	if err := json.Unmarshal([]byte(resp.Content), out); err != nil {
		return resp.Usage, types.WrapError(types.PIPELINE_STAGE_FAILED,
			"stage "+stage+" produced undecodable output", err)
	}

	cfg.logger().Debug("agent call complete",
		"stage", stage,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return resp.Usage, nil
}

// mustJSON marshals a value for embedding in a user message. Marshaling
// our own domain structs cannot fail.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

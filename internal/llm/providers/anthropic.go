package providers

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/repforge/repforge/internal/llm"
)

// AnthropicProvider implements llm.Provider for Anthropic's Claude models.
//
// Structured output rides on a schema instruction appended to the system
// prompt plus JSON extraction from the response; the backend's structured
// mechanism rejects numeric bounds, string length bounds, and multi-item
// array minimums, so callers sanitize schemas with the restricted
// capability profile before sending them here.
type AnthropicProvider struct {
	client *anthropic.LLM
	config Config
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, llm.NewAuthError("anthropic", nil)
	}

	client, err := anthropic.New(anthropic.WithToken(apiKey))
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	return &AnthropicProvider{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// CompleteStructured performs a structured completion.
func (p *AnthropicProvider) CompleteStructured(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	instruction, err := schemaInstruction(req.ResponseFormat)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	wireReq := req
	if instruction != "" {
		wireReq.System = append(append([]llm.SystemBlock{}, req.System...),
			llm.SystemBlock{Text: instruction})
	}

	model := p.config.resolveModel(req)
	resp, err := p.client.GenerateContent(ctx, toLangchainMessages(wireReq), buildCallOptions(wireReq, model)...)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}

	content := contentOf(resp)
	rawJSON, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, llm.NewParseError("anthropic", content, err)
	}

	var structured any
	if err := json.Unmarshal([]byte(rawJSON), &structured); err != nil {
		return nil, llm.NewParseError("anthropic", rawJSON, err)
	}

	return &llm.CompletionResponse{
		ID:             uuid.New().String(),
		Model:          model,
		Content:        rawJSON,
		StructuredData: structured,
		Usage:          usageFromResponse(resp, wireReq, content),
	}, nil
}

// Stream performs a streaming completion.
func (p *AnthropicProvider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	chunks := make(chan llm.StreamChunk, 10)
	model := p.config.resolveModel(req)

	opts := buildStreamingCallOptions(req, model, func(ctx context.Context, chunk []byte) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunks <- llm.StreamChunk{Content: string(chunk)}:
			return nil
		}
	})

	go func() {
		defer close(chunks)
		if _, err := p.client.GenerateContent(ctx, toLangchainMessages(req), opts...); err != nil {
			chunks <- llm.StreamChunk{Error: llm.TranslateError("anthropic", err)}
			return
		}
		chunks <- llm.StreamChunk{Done: true}
	}()

	return chunks, nil
}

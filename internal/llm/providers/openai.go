package providers

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/repforge/repforge/internal/llm"
)

// OpenAIProvider implements llm.Provider for OpenAI models. JSON mode
// keeps responses parseable; the schema instruction in the system prompt
// carries the shape.
type OpenAIProvider struct {
	client *openai.LLM
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, llm.NewAuthError("openai", nil)
	}

	client, err := openai.New(openai.WithToken(apiKey))
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	return &OpenAIProvider{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// CompleteStructured performs a structured completion.
func (p *OpenAIProvider) CompleteStructured(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	instruction, err := schemaInstruction(req.ResponseFormat)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	wireReq := req
	if instruction != "" {
		wireReq.System = append(append([]llm.SystemBlock{}, req.System...),
			llm.SystemBlock{Text: instruction})
	}

	model := p.config.resolveModel(req)
	opts := append(buildCallOptions(wireReq, model), llms.WithJSONMode())

	resp, err := p.client.GenerateContent(ctx, toLangchainMessages(wireReq), opts...)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	content := contentOf(resp)
	rawJSON, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, llm.NewParseError("openai", content, err)
	}

	var structured any
	if err := json.Unmarshal([]byte(rawJSON), &structured); err != nil {
		return nil, llm.NewParseError("openai", rawJSON, err)
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
func (p *OpenAIProvider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
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
			chunks <- llm.StreamChunk{Error: llm.TranslateError("openai", err)}
			return
		}
		chunks <- llm.StreamChunk{Done: true}
	}()

	return chunks, nil
}

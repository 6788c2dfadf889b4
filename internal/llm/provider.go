package llm

import "context"

// Provider defines the interface that all model providers must implement.
// It is the single outbound surface to the inference service: a structured
// call that returns a schema-conforming object plus usage, and a streaming
// call that returns free text incrementally.
//
// Implementations must be safe for use by concurrent pipeline runs.
type Provider interface {
	// Name returns the provider name (e.g., "anthropic", "openai", "mock")
	Name() string

	// CompleteStructured sends a completion request whose ResponseFormat
	// demands a JSON object matching a schema. The response's Content holds
	// the raw JSON and StructuredData the parsed object. A response that
	// fails to parse against the schema is a non-retryable error.
	CompleteStructured(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Stream sends a completion request and streams the response text.
	// The returned channel emits chunks until completion or error and is
	// closed when streaming is done.
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

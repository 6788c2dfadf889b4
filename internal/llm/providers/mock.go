package providers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/repforge/repforge/internal/llm"
)

// MockCall records one request seen by the mock provider.
type MockCall struct {
	Request llm.CompletionRequest
}

// MockProvider implements llm.Provider for testing. Responses are served
// in order, cycling when exhausted; errors can be queued ahead of them to
// exercise retry paths.
type MockProvider struct {
	mu            sync.Mutex
	responses     []string
	responseIndex int
	errs          []error
	calls         []MockCall
}

// NewMockProvider creates a mock provider serving the given responses.
func NewMockProvider(responses []string) *MockProvider {
	return &MockProvider{responses: responses}
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return "mock"
}

// FailWith queues errors returned before any response is served.
func (p *MockProvider) FailWith(errs ...error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, errs...)
}

// CompleteStructured serves the next canned response.
func (p *MockProvider) CompleteStructured(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, MockCall{Request: req})

	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		p.mu.Unlock()
		return nil, err
	}

	if len(p.responses) == 0 {
		p.mu.Unlock()
		return nil, llm.NewCompletionError("mock provider has no responses configured", nil)
	}

	response := p.responses[p.responseIndex%len(p.responses)]
	p.responseIndex++
	p.mu.Unlock()

	rawJSON, err := llm.ExtractJSON(response)
	if err != nil {
		return nil, llm.NewParseError("mock", response, err)
	}

	var structured any
	if err := json.Unmarshal([]byte(rawJSON), &structured); err != nil {
		return nil, llm.NewParseError("mock", rawJSON, err)
	}

	return &llm.CompletionResponse{
		ID:             uuid.New().String(),
		Model:          "mock-model",
		Content:        rawJSON,
		StructuredData: structured,
		Usage: llm.TokenUsage{
			InputTokens:  10,
			OutputTokens: len(response) / 4,
		},
	}, nil
}

// Stream serves the next canned response in small chunks.
func (p *MockProvider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	p.mu.Lock()
	p.calls = append(p.calls, MockCall{Request: req})

	if len(p.responses) == 0 {
		p.mu.Unlock()
		return nil, llm.NewCompletionError("mock provider has no responses configured", nil)
	}

	response := p.responses[p.responseIndex%len(p.responses)]
	p.responseIndex++
	p.mu.Unlock()

	chunks := make(chan llm.StreamChunk, 10)
	go func() {
		defer close(chunks)

		const chunkSize = 5
		for i := 0; i < len(response); i += chunkSize {
			end := i + chunkSize
			if end > len(response) {
				end = len(response)
			}
			select {
			case <-ctx.Done():
				return
			case chunks <- llm.StreamChunk{Content: response[i:end]}:
			}
		}

		select {
		case <-ctx.Done():
		case chunks <- llm.StreamChunk{Done: true}:
		}
	}()

	return chunks, nil
}

// Calls returns all recorded calls.
func (p *MockProvider) Calls() []MockCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// Reset clears recorded calls and rewinds the response cursor.
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = nil
	p.errs = nil
	p.responseIndex = 0
}

// SetResponses replaces the canned responses.
func (p *MockProvider) SetResponses(responses []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.responses = responses
	p.responseIndex = 0
}

var _ llm.Provider = (*MockProvider)(nil)

package llm

import (
	"encoding/json"
	"fmt"

	"github.com/repforge/repforge/internal/types"
)

// Role represents the role of a message in a conversation
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the Role
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is a valid value
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// MarshalJSON implements json.Marshaler
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	role := Role(str)
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", str)
	}

	*r = role
	return nil
}

// Message represents a single turn in a conversation with the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewSystemMessage creates a new system message
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a new assistant message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Validate checks if the message is valid
func (m Message) Validate() error {
	if !m.Role.IsValid() {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	if m.Content == "" {
		return fmt.Errorf("%s message must have content", m.Role)
	}
	return nil
}

// ModelTier selects between faster/cheaper and stronger/slower models.
// The provider resolves a tier to a concrete model name via its config.
type ModelTier string

const (
	TierFast     ModelTier = "fast"
	TierStandard ModelTier = "standard"
)

// SystemBlock is one segment of a system prompt. Blocks marked cacheable
// are eligible for provider-side prompt caching when the backend supports it.
type SystemBlock struct {
	Text      string `json:"text"`
	Cacheable bool   `json:"cacheable,omitempty"`
}

// SystemText joins system blocks into a single prompt string for backends
// without block-level caching.
func SystemText(blocks []SystemBlock) string {
	switch len(blocks) {
	case 0:
		return ""
	case 1:
		return blocks[0].Text
	}
	out := blocks[0].Text
	for _, b := range blocks[1:] {
		out += "\n\n" + b.Text
	}
	return out
}

// CompletionRequest represents a request to generate a completion.
type CompletionRequest struct {
	Model          string                `json:"model,omitempty"`
	Tier           ModelTier             `json:"tier,omitempty"`
	System         []SystemBlock         `json:"system,omitempty"`
	Messages       []Message             `json:"messages"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Temperature    float64               `json:"temperature,omitempty"`
	ResponseFormat *types.ResponseFormat `json:"response_format,omitempty"`
}

// Validate checks if the completion request is valid
func (r CompletionRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}

	for i, msg := range r.Messages {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}

	if r.Temperature < 0 || r.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", r.Temperature)
	}

	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d", r.MaxTokens)
	}

	if r.ResponseFormat != nil {
		if err := r.ResponseFormat.Validate(); err != nil {
			return fmt.Errorf("response_format: %w", err)
		}
	}

	return nil
}

// CompletionResponse represents the response from a completion request.
type CompletionResponse struct {
	// ID is a unique identifier for this completion
	ID string `json:"id"`

	// Model is the model that generated this response
	Model string `json:"model"`

	// Content is the assistant's response text. For structured calls this
	// holds the raw JSON of the structured object.
	Content string `json:"content"`

	// StructuredData holds the parsed structured object for json_schema calls
	StructuredData any `json:"structured_data,omitempty"`

	// Usage contains token usage statistics for this completion
	Usage TokenUsage `json:"usage"`
}

// StreamChunk represents a single chunk in a streaming response
type StreamChunk struct {
	// Content contains incremental text content
	Content string `json:"content,omitempty"`

	// Done marks the final chunk of the stream
	Done bool `json:"done,omitempty"`

	// Error carries a terminal stream error
	Error error `json:"-"`
}

// TokenUsage contains token usage statistics for a completion.
type TokenUsage struct {
	// InputTokens is the number of tokens in the prompt
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of tokens in the completion
	OutputTokens int `json:"output_tokens"`
}

// Total returns input plus output tokens.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Add accumulates another usage record into this one.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Package providers implements the llm.Provider interface over concrete
// inference backends via langchaingo, plus a mock for tests.
package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/types"
)

// toLangchainMessages converts a request's system blocks and messages to
// langchaingo MessageContent.
func toLangchainMessages(req llm.CompletionRequest) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(req.Messages)+1)

	if system := llm.SystemText(req.System); system != "" {
		result = append(result, llms.MessageContent{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		})
	}

	for _, msg := range req.Messages {
		role := schema.ChatMessageTypeHuman
		switch msg.Role {
		case llm.RoleAssistant:
			role = schema.ChatMessageTypeAI
		case llm.RoleSystem:
			role = schema.ChatMessageTypeSystem
		}
		result = append(result, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	return result
}

// buildCallOptions converts a request to langchaingo call options.
func buildCallOptions(req llm.CompletionRequest, model string) []llms.CallOption {
	opts := make([]llms.CallOption, 0, 4)

	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}

	return opts
}

// buildStreamingCallOptions adds a streaming func to the call options.
func buildStreamingCallOptions(req llm.CompletionRequest, model string, streamFunc func(ctx context.Context, chunk []byte) error) []llms.CallOption {
	return append(buildCallOptions(req, model), llms.WithStreamingFunc(streamFunc))
}

// usageFromResponse extracts token usage from a langchaingo response.
// Providers report usage under different GenerationInfo keys; when none
// are present the heuristic estimator stands in so accounting never
// silently drops a call.
func usageFromResponse(resp *llms.ContentResponse, req llm.CompletionRequest, content string) llm.TokenUsage {
	if resp != nil && len(resp.Choices) > 0 && resp.Choices[0].GenerationInfo != nil {
		info := resp.Choices[0].GenerationInfo
		input := intFromInfo(info, "InputTokens", "PromptTokens")
		output := intFromInfo(info, "OutputTokens", "CompletionTokens")
		if input > 0 || output > 0 {
			return llm.TokenUsage{InputTokens: input, OutputTokens: output}
		}
	}

	prompt := llm.SystemText(req.System)
	for _, msg := range req.Messages {
		prompt += msg.Content
	}
	return llm.TokenUsage{
		InputTokens:  llm.EstimateTokens(prompt),
		OutputTokens: llm.EstimateTokens(content),
	}
}

func intFromInfo(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

// schemaInstruction renders the structured-output contract appended to the
// system prompt for backends reached through plain text completion.
func schemaInstruction(format *types.ResponseFormat) (string, error) {
	if format == nil || format.Schema == nil {
		return "", nil
	}

	schemaJSON, err := json.Marshal(format.Schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal output schema: %w", err)
	}

	return fmt.Sprintf(
		"\n\nRespond with a single JSON object conforming to this JSON schema, and nothing else:\n%s",
		schemaJSON), nil
}

// contentOf returns the first choice's text content.
func contentOf(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}

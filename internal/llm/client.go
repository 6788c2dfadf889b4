package llm

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/repforge/repforge/internal/schema"
	"github.com/repforge/repforge/internal/types"
)

// Client wraps a Provider with transient-error retry, client-side rate
// limiting, and post-call schema validation. One Client is constructed at
// process start and shared by reference across concurrent pipeline runs;
// it holds no per-run mutable state.
type Client struct {
	provider Provider
	retry    RetryConfig
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetryConfig overrides the default retry behavior.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithRateLimit throttles provider calls to n requests per second with the
// given burst. Zero n disables throttling.
func WithRateLimit(n float64, burst int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), burst)
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client around a provider.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		retry:    DefaultRetryConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// CompleteStructured performs a structured call through the retry wrapper.
// Transient provider failures are retried with exponential backoff;
// structural validation failures surface immediately. When the request
// carries a json_schema format, the returned object is re-validated against
// the full schema, covering constraints the backend could not express
// natively.
func (c *Client) CompleteStructured(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, TranslateError(c.provider.Name(), err)
	}

	observe := func(attempt, remaining int, err error) {
		c.logger.Warn("retrying model call",
			"provider", c.provider.Name(),
			"attempt", attempt+1,
			"remaining", remaining,
			"error", err,
		)
	}

	resp, err := Retry(ctx, c.retry, IsTransient, observe, func(ctx context.Context) (*CompletionResponse, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		return c.provider.CompleteStructured(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Schema != nil {
		if verr := schema.Validate([]byte(resp.Content), req.ResponseFormat.Schema); verr != nil {
			return nil, types.WrapError(ErrSchemaViolation,
				"structured output violates schema "+req.ResponseFormat.Name, verr)
		}
	}

	return resp, nil
}

// Stream performs a streaming call. Streaming errors arrive on the channel;
// only call setup goes through the retry wrapper.
func (c *Client) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	if err := req.Validate(); err != nil {
		return nil, TranslateError(c.provider.Name(), err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return c.provider.Stream(ctx, req)
}

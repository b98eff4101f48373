package llm

import (
	"context"
)

const (
	// DefaultTemperature is the sampling temperature used for fiche generation.
	DefaultTemperature = 0.7
	// DefaultMaxTokens caps the completion length.
	DefaultMaxTokens = 2500
)

// Client abstracts text-completion providers.
type Client interface {
	// Complete returns the first candidate's text, or "" when the provider
	// returned no candidate. Provider failures are returned as *APIError.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest captures a single system + user prompt exchange.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// NewCompletionRequest builds a request with the default generation settings.
func NewCompletionRequest(system, prompt string) CompletionRequest {
	return CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

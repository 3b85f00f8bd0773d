package llm

import (
	"context"

	"github.com/ligacoach/ligacoach/internal/prompt"
)

// Provider defines the interface for answer-generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer generates the final response from the assembled prompt
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest carries the prompt and per-request overrides
type AnswerRequest struct {
	Prompt prompt.Prompt

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnswerResponse is the generated answer
type AnswerResponse struct {
	Answer     string
	Model      string
	TokensUsed int
}

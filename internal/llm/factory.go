package llm

import (
	"fmt"
	"strings"

	"github.com/ligacoach/ligacoach/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider name
// means answer generation is disabled and (nil, nil) is returned; callers
// fall back to the deterministic formatter.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

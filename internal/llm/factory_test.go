package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ligacoach/ligacoach/internal/model"
	"github.com/ligacoach/ligacoach/internal/prompt"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(model.LLMConfig{Provider: ""})
	if err != nil {
		t.Fatalf("disabled provider returned error: %v", err)
	}
	if provider != nil {
		t.Errorf("provider = %v, want nil when disabled", provider)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "anthropic"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProviderOllama(t *testing.T) {
	provider, err := NewProvider(model.LLMConfig{Provider: "Ollama", Model: "llama3"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("Name() = %q, want ollama", provider.Name())
	}
}

func TestNewProviderOpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error when no API key is configured")
	}
}

func TestOllamaAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream = true, want false")
		}
		if req.System == "" || req.Prompt == "" {
			t.Error("system or prompt missing from request")
		}
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:     req.Model,
			Response:  " Lukas Kwasniok is the current coach. ",
			Done:      true,
			EvalCount: 12,
		})
	}))
	defer srv.Close()

	provider, err := NewOllamaProvider(model.LLMConfig{Model: "llama3", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	resp, err := provider.Answer(context.Background(), AnswerRequest{
		Prompt: prompt.Prompt{System: "You are an expert.", User: "Who coaches Köln?"},
	})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if resp.Answer != "Lukas Kwasniok is the current coach." {
		t.Errorf("answer = %q, want trimmed text", resp.Answer)
	}
	if resp.Model != "llama3" || resp.TokensUsed != 12 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestOllamaAnswerRequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(model.LLMConfig{})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}
	if _, err := provider.Answer(context.Background(), AnswerRequest{}); err == nil {
		t.Error("expected error without a model name")
	}
}

func TestOllamaReportsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Error: "model not found"})
	}))
	defer srv.Close()

	provider, _ := NewOllamaProvider(model.LLMConfig{Model: "missing", BaseURL: srv.URL})
	if _, err := provider.Answer(context.Background(), AnswerRequest{}); err == nil {
		t.Error("expected the backend error to surface")
	}
}

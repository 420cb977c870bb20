package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskslip/taskslip/types"
)

// NewProvider is a factory that returns the extraction provider and the
// embedding backend for the configured LLM provider.
//
// The embedder may be nil: DeepSeek has no embedding models, so when it
// is the chat provider embeddings fall back to OpenAI if a key is
// present and are disabled otherwise (the store then degrades to text
// matching for duplicate detection).
func NewProvider(cfg *types.LLMConfig) (Provider, Embedder, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("LLM configuration cannot be nil")
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY is required when LLM provider is 'openai'")
		}
		p := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.ModelName, timeout, cfg.Debug)
		return p, newEmbedder(cfg, timeout), nil
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			return nil, nil, fmt.Errorf("DEEPSEEK_API_KEY is required when LLM provider is 'deepseek'")
		}
		p := NewDeepSeekProvider(cfg.DeepSeekAPIKey, cfg.ModelName, timeout, cfg.Debug)
		return p, newEmbedder(cfg, timeout), nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// NewEmbedder returns the embedding backend alone, for components that
// search but never extract (dashboard, setup).
func NewEmbedder(cfg *types.LLMConfig) Embedder {
	if cfg == nil {
		return nil
	}
	return newEmbedder(cfg, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
}

func newEmbedder(cfg *types.LLMConfig, timeout time.Duration) Embedder {
	if cfg.EmbeddingProvider == "none" {
		return nil
	}
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return NewOpenAIProvider(cfg.OpenAIAPIKey, "", timeout, cfg.Debug)
}

package providers

import (
	"net/http"

	"github.com/arcanalabs/arcana-api/internal/config"
	"github.com/arcanalabs/arcana-api/internal/generation"
)

// grokMinTokens is a deliberate floor on Grok's token budget, regardless of
// the caller's request: the provider has a tendency to truncate structured
// JSON output on tight budgets, which turns every response into a retry.
const grokMinTokens = 1200

// NewDeepSeek creates the DeepSeek adapter.
func NewDeepSeek(cfg config.ProviderConfig, httpClient *http.Client) *ChatClient {
	return newChatClient(generation.ProviderDeepSeek, cfg.APIKey, cfg.BaseURL, 0, httpClient)
}

// NewOpenAI creates the OpenAI adapter.
func NewOpenAI(cfg config.ProviderConfig, httpClient *http.Client) *ChatClient {
	return newChatClient(generation.ProviderOpenAI, cfg.APIKey, cfg.BaseURL, 0, httpClient)
}

// NewGrok creates the Grok (xAI) adapter with its token floor.
func NewGrok(cfg config.ProviderConfig, httpClient *http.Client) *ChatClient {
	return newChatClient(generation.ProviderGrok, cfg.APIKey, cfg.BaseURL, grokMinTokens, httpClient)
}

// NewQwen creates the Qwen (DashScope compatible-mode) adapter.
func NewQwen(cfg config.ProviderConfig, httpClient *http.Client) *ChatClient {
	return newChatClient(generation.ProviderQwen, cfg.APIKey, cfg.BaseURL, 0, httpClient)
}

package generation

import (
	"context"
	"fmt"
)

// ProviderID identifies one supported LLM vendor.
type ProviderID string

// The closed set of supported providers.
const (
	ProviderDeepSeek ProviderID = "deepseek"
	ProviderOpenAI   ProviderID = "openai"
	ProviderGrok     ProviderID = "grok"
	ProviderQwen     ProviderID = "qwen"
	ProviderGoogle   ProviderID = "google"
)

// ParseProviderID validates a provider identifier string.
func ParseProviderID(s string) (ProviderID, error) {
	switch ProviderID(s) {
	case ProviderDeepSeek, ProviderOpenAI, ProviderGrok, ProviderQwen, ProviderGoogle:
		return ProviderID(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
}

// CallOptions carries the per-call parameters handed to an adapter.
type CallOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider is the uniform call shape over one vendor's native API. One
// implementation exists per provider; adapters perform exactly one network
// call and never retry (retries are the orchestrator's responsibility).
// Transport, auth, and rate-limit errors propagate unchanged.
type Provider interface {
	Name() ProviderID
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts CallOptions) (string, error)
}

// Registry maps provider identifiers to their adapter instance and configured
// default model. It replaces per-call-site switches with a lookup table.
// Constructed once at startup; read-only afterwards, safe for concurrent use.
type Registry struct {
	providers       map[ProviderID]Provider
	defaultModels   map[ProviderID]string
	defaultProvider ProviderID
}

// NewRegistry builds a Registry with the given default provider. Adapters are
// added with Register.
func NewRegistry(defaultProvider ProviderID) *Registry {
	return &Registry{
		providers:       make(map[ProviderID]Provider),
		defaultModels:   make(map[ProviderID]string),
		defaultProvider: defaultProvider,
	}
}

// Register adds an adapter and its configured default model.
func (r *Registry) Register(p Provider, defaultModel string) {
	r.providers[p.Name()] = p
	r.defaultModels[p.Name()] = defaultModel
}

// Resolve picks the adapter and model for a request: the requested provider
// (or the configured default when absent), and the per-request model override
// for that provider when present (else the provider's configured default).
// Resolution has no side effects; a missing API key is NOT detected here but
// lazily at call time, since not all adapters are required for a deployment.
func (r *Registry) Resolve(req *GenerationRequest) (Provider, string, error) {
	id := r.defaultProvider
	if req.Provider != "" {
		parsed, err := ParseProviderID(req.Provider)
		if err != nil {
			return nil, "", err
		}
		id = parsed
	}

	provider, ok := r.providers[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, id)
	}

	model := req.modelOverride(id)
	if model == "" {
		model = r.defaultModels[id]
	}

	return provider, model, nil
}

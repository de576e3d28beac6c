package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/arcanalabs/arcana-api/internal/config"
	"github.com/arcanalabs/arcana-api/internal/generation"
)

// Google adapts the Gemini API to the generation.Provider interface. Gemini
// has no separate system role in the plain-text call shape used here, so the
// system and user prompts are concatenated into a single prompt.
type Google struct {
	client *genai.Client
}

var _ generation.Provider = (*Google)(nil)

// NewGoogle creates the Gemini adapter. A missing API key does NOT fail
// construction: the adapter is created unconfigured and rejects calls with
// ErrProviderNotConfigured instead, matching the other providers.
func NewGoogle(ctx context.Context, cfg config.ProviderConfig) (*Google, error) {
	if cfg.APIKey == "" {
		return &Google{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Google{client: client}, nil
}

// Name implements generation.Provider.
func (g *Google) Name() generation.ProviderID { return generation.ProviderGoogle }

// Generate implements generation.Provider.
func (g *Google) Generate(ctx context.Context, systemPrompt, userPrompt string, opts generation.CallOptions) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: google API key is missing", generation.ErrProviderNotConfigured)
	}

	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens: int32(opts.MaxTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, opts.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("google: no content generated")
	}

	return resp.Text(), nil
}

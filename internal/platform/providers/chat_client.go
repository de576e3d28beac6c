package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arcanalabs/arcana-api/internal/generation"
)

// defaultHTTPTimeout bounds a single provider call. The orchestrator imposes
// no timeout of its own.
const defaultHTTPTimeout = 120 * time.Second

// chatMessage is one entry in the chat-completions message list.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the OpenAI-compatible request payload.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatCompletionResponse is the subset of the response we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatClient adapts one OpenAI-compatible chat-completions API to the
// generation.Provider interface. Instances are constructed once at startup
// and are safe for concurrent use.
type ChatClient struct {
	name       generation.ProviderID
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// minTokens is a provider-specific floor applied to the caller's token
	// budget. Zero means no floor.
	minTokens int
}

var _ generation.Provider = (*ChatClient)(nil)

// newChatClient builds a ChatClient; httpClient may be nil.
func newChatClient(name generation.ProviderID, apiKey, baseURL string, minTokens int, httpClient *http.Client) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &ChatClient{
		name:       name,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		minTokens:  minTokens,
	}
}

// Name implements generation.Provider.
func (c *ChatClient) Name() generation.ProviderID { return c.name }

// Generate implements generation.Provider. It performs one POST to
// /chat/completions with a system+user message list and returns the first
// choice's content verbatim.
func (c *ChatClient) Generate(ctx context.Context, systemPrompt, userPrompt string, opts generation.CallOptions) (string, error) {
	// Configuration absence is detected lazily, per call, so deployments can
	// run with a subset of providers.
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: %s API key is missing", generation.ErrProviderNotConfigured, c.name)
	}

	maxTokens := opts.MaxTokens
	if maxTokens < c.minTokens {
		maxTokens = c.minTokens
	}

	payload := chatCompletionRequest{
		Model: opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", c.name, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode %s response: %w", c.name, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%s API error: %s", c.name, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New(string(c.name) + ": empty choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider records calls and plays back scripted responses.
type stubProvider struct {
	id        ProviderID
	responses []string // cycled; last entry repeats
	err       error
	calls     int

	lastSystemPrompt string
	lastUserPrompt   string
	lastOpts         CallOptions
}

func (s *stubProvider) Name() ProviderID { return s.id }

func (s *stubProvider) Generate(_ context.Context, systemPrompt, userPrompt string, opts CallOptions) (string, error) {
	s.calls++
	s.lastSystemPrompt = systemPrompt
	s.lastUserPrompt = userPrompt
	s.lastOpts = opts

	if s.err != nil {
		return "", s.err
	}

	idx := s.calls - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

func newTestService(t *testing.T, stubs ...*stubProvider) (*Service, *Registry) {
	t.Helper()
	registry := NewRegistry(ProviderDeepSeek)
	for _, stub := range stubs {
		registry.Register(stub, "default-"+string(stub.id))
	}
	svc, err := NewService(registry, nil)
	require.NoError(t, err)
	return svc, registry
}

// Bounded retry: a provider that always returns non-JSON is called exactly
// MaxAttempts times, and the result is a terminal value, not an error.
func TestGenerateRetriesExhausted(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"not json at all"}}
	svc, _ := newTestService(t, stub)

	result, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test"})
	require.NoError(t, err, "retry exhaustion is a value, not an error")

	failure, ok := result.(TerminalFailure)
	require.True(t, ok, "expected TerminalFailure, got %T", result)
	assert.True(t, failure.Error)
	assert.Equal(t, MaxAttempts, failure.Attempts)
	assert.NotEmpty(t, failure.Message)
	assert.Equal(t, MaxAttempts, stub.calls, "adapter must be called exactly MaxAttempts times")
}

// No retry on success: valid fenced JSON on the first attempt means exactly
// one adapter call.
func TestGenerateFirstAttemptSuccess(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"```json\n{\"message\":\"ok\"}\n```"}}
	svc, _ := newTestService(t, stub)

	result, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test", Provider: "deepseek"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "ok"}, result)
	assert.Equal(t, 1, stub.calls)
}

// A later attempt can succeed after earlier parse failures.
func TestGenerateRecoversOnSecondAttempt(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"garbage", `{"ok":true}`}}
	svc, _ := newTestService(t, stub)

	result, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, result)
	assert.Equal(t, 2, stub.calls)
}

// Non-parse errors are never retried: the adapter is called once and the
// error comes back unchanged.
func TestGenerateProviderErrorNotRetried(t *testing.T) {
	authErr := errors.New("401 unauthorized")
	stub := &stubProvider{id: ProviderDeepSeek, err: authErr}
	svc, _ := newTestService(t, stub)

	result, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test"})
	assert.Nil(t, result)
	assert.Equal(t, authErr, err, "provider errors propagate unchanged")
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateNotConfiguredErrorNotRetried(t *testing.T) {
	stub := &stubProvider{id: ProviderGoogle, err: ErrProviderNotConfigured}
	svc, _ := newTestService(t, stub)

	_, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test", Provider: "google"})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
	assert.Equal(t, 1, stub.calls)
}

// Empty or whitespace-only prompt is an input error surfaced before any
// adapter call.
func TestGenerateEmptyPrompt(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"{}"}}
	svc, _ := newTestService(t, stub)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: prompt})
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Equal(t, 0, stub.calls)
}

func TestGenerateUnknownProvider(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"{}"}}
	svc, _ := newTestService(t, stub)

	_, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test", Provider: "mistral"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Equal(t, 0, stub.calls)
}

// Provider/model resolution: configured default when no override, explicit
// override wins.
func TestRegistryModelResolution(t *testing.T) {
	openai := &stubProvider{id: ProviderOpenAI, responses: []string{"{}"}}
	registry := NewRegistry(ProviderDeepSeek)
	registry.Register(openai, "gpt-4o-mini")

	_, model, err := registry.Resolve(&GenerationRequest{Prompt: "p", Provider: "openai"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", model)

	_, model, err = registry.Resolve(&GenerationRequest{Prompt: "p", Provider: "openai", OpenAIModel: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", model)
}

func TestRegistryDefaultProvider(t *testing.T) {
	deepseek := &stubProvider{id: ProviderDeepSeek}
	openai := &stubProvider{id: ProviderOpenAI}
	registry := NewRegistry(ProviderDeepSeek)
	registry.Register(deepseek, "deepseek-chat")
	registry.Register(openai, "gpt-4o-mini")

	provider, model, err := registry.Resolve(&GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, provider.Name())
	assert.Equal(t, "deepseek-chat", model)
}

// Resolved options reach the adapter: request values win, defaults fill gaps.
func TestGenerateCallOptions(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"{}"}}
	svc, _ := newTestService(t, stub)

	_, err := svc.Generate(context.Background(), &GenerationRequest{Prompt: "Test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTemperature, stub.lastOpts.Temperature)
	assert.Equal(t, DefaultMaxTokens, stub.lastOpts.MaxTokens)

	temp := 0.2
	tokens := 2000
	_, err = svc.Generate(context.Background(), &GenerationRequest{
		Prompt:      "Test",
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.2, stub.lastOpts.Temperature)
	assert.Equal(t, 2000, stub.lastOpts.MaxTokens)
}

func TestChatPassthrough(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"plain text, not JSON"}}
	svc, _ := newTestService(t, stub)

	text, err := svc.Chat(context.Background(), &ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "plain text, not JSON", text)
	assert.Equal(t, 1, stub.calls, "chat never retries")
	assert.Equal(t, DefaultTemperature, stub.lastOpts.Temperature)
	assert.Equal(t, ChatDefaultMaxTokens, stub.lastOpts.MaxTokens)
}

func TestChatEmptyMessage(t *testing.T) {
	stub := &stubProvider{id: ProviderDeepSeek, responses: []string{"x"}}
	svc, _ := newTestService(t, stub)

	_, err := svc.Chat(context.Background(), &ChatRequest{Message: "  "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Equal(t, 0, stub.calls)
}

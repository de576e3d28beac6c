package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arcanalabs/arcana-api/internal/platform/logger"
)

// MaxAttempts bounds the retry loop. The orchestrator never exceeds it and
// never retries for any failure class other than invalid JSON output.
const MaxAttempts = 3

// Service is the retry orchestrator: it selects an adapter, assembles
// prompts, performs the call, normalizes the output, and retries on parse
// failure up to MaxAttempts.
type Service struct {
	registry *Registry
	logger   *slog.Logger
}

// NewService creates the generation service. The registry must hold the
// adapters constructed at startup.
func NewService(registry *Registry, log *slog.Logger) (*Service, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		registry: registry,
		logger:   log.With(slog.String("component", "generation")),
	}, nil
}

// Generate runs the full pipeline for one request.
//
// Returns, in order of precedence:
//   - the parsed JSON value when an attempt succeeds;
//   - a TerminalFailure value (nil error) when MaxAttempts attempts all
//     produced invalid JSON;
//   - the provider's error unchanged for any non-parse failure, immediately,
//     without further attempts.
//
// Each retry redoes the whole assemble → call → normalize sequence from
// scratch: the goal is a fresh, hopefully valid, output, so nothing from the
// failed attempt is reused.
func (s *Service) Generate(ctx context.Context, req *GenerationRequest) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, model, err := s.registry.Resolve(req)
	if err != nil {
		return nil, err
	}

	opts := CallOptions{
		Model:       model,
		Temperature: req.temperature(),
		MaxTokens:   req.maxTokens(),
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		systemPrompt, userPrompt := AssemblePrompts(req)

		log.DebugContext(ctx, "calling provider",
			slog.String("provider", string(provider.Name())),
			slog.String("model", model),
			slog.Int("attempt", attempt))

		raw, err := provider.Generate(ctx, systemPrompt, userPrompt, opts)
		if err != nil {
			// Transport, auth, quota: retrying would not change the outcome
			// and would mask a real operational problem.
			log.ErrorContext(ctx, "provider call failed",
				slog.String("provider", string(provider.Name())),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return nil, err
		}

		value, err := Normalize(raw)
		if err == nil {
			log.InfoContext(ctx, "generation succeeded",
				slog.String("provider", string(provider.Name())),
				slog.Int("attempt", attempt))
			return value, nil
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}

		log.WarnContext(ctx, "provider returned invalid JSON",
			slog.String("provider", string(provider.Name())),
			slog.Int("attempt", attempt),
			slog.Int("raw_length", len(parseErr.Raw)))
	}

	log.WarnContext(ctx, "retry attempts exhausted",
		slog.String("provider", string(provider.Name())),
		slog.Int("max_attempts", MaxAttempts))

	return TerminalFailure{
		Error:    true,
		Message:  fmt.Sprintf("could not obtain a valid response after %d attempts", MaxAttempts),
		Attempts: MaxAttempts,
	}, nil
}

// Chat is the plain passthrough: one provider call, no normalization, no
// retries. It carries its own defaults (temperature 0.7, max tokens 1000).
func (s *Service) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	genReq := &GenerationRequest{Prompt: req.Message, Provider: req.Provider}
	if err := genReq.Validate(); err != nil {
		return "", err
	}

	provider, model, err := s.registry.Resolve(genReq)
	if err != nil {
		return "", err
	}
	if req.Model != "" {
		model = req.Model
	}

	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := ChatDefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = "You are a helpful assistant."
	}

	log.DebugContext(ctx, "chat passthrough",
		slog.String("provider", string(provider.Name())),
		slog.String("model", model))

	return provider.Generate(ctx, systemPrompt, req.Message, CallOptions{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

// Package analysis answers questions about user-supplied documents through a
// stored prompt template. Unlike the generation pipeline it never retries: a
// response that fails to parse as JSON degrades to a plain-text answer so the
// caller still receives the model's output.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/platform/logger"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// templateKey names the prompt template driving document analysis. Its prompt
// may reference {document} and {question} placeholders.
const templateKey = "document_analysis"

// Request is the input to one analysis call.
type Request struct {
	Document  string   `json:"document,omitempty"`
	Documents []string `json:"documents,omitempty"`
	Question  string   `json:"question,omitempty"`

	Provider     string   `json:"provider,omitempty"     validate:"omitempty,oneof=deepseek openai grok qwen google"`
	Model        string   `json:"model,omitempty"`
	ResponseLang string   `json:"response_lang,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"  validate:"omitempty,gte=0,lte=2"`
	MaxTokens    *int     `json:"max_tokens,omitempty"   validate:"omitempty,gte=1,lte=4096"`
}

// Service performs document analysis calls.
type Service struct {
	registry  *generation.Registry
	templates store.TemplateStore
	logger    *slog.Logger
}

// NewService creates the analysis service.
func NewService(registry *generation.Registry, templates store.TemplateStore, log *slog.Logger) (*Service, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if templates == nil {
		return nil, errors.New("template store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		registry:  registry,
		templates: templates,
		logger:    log.With(slog.String("component", "analysis")),
	}, nil
}

// AnalyzeDocument runs one analysis call over a single document.
func (s *Service) AnalyzeDocument(ctx context.Context, req *Request) (any, error) {
	if strings.TrimSpace(req.Document) == "" {
		return nil, domain.ErrEmptyContent
	}
	return s.analyze(ctx, req, req.Document)
}

// AnalyzeDocuments runs one analysis call over several documents, joined into
// a single numbered corpus so the model can cross-reference them.
func (s *Service) AnalyzeDocuments(ctx context.Context, req *Request) (any, error) {
	var parts []string
	for i, doc := range req.Documents {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Document %d:\n%s", i+1, doc))
	}
	if len(parts) == 0 {
		return nil, domain.ErrEmptyContent
	}
	return s.analyze(ctx, req, strings.Join(parts, "\n\n"))
}

// analyze performs a single provider call and normalizes the output. A parse
// failure is not retried: the cleaned text becomes the answer of a degraded
// result instead.
func (s *Service) analyze(ctx context.Context, req *Request, document string) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tpl, err := s.templates.GetByKey(ctx, templateKey)
	if err != nil {
		return nil, fmt.Errorf("load template %q: %w", templateKey, err)
	}

	genReq := &generation.GenerationRequest{
		Prompt:       renderPrompt(tpl.Prompt, document, req.Question),
		SystemPrompt: tpl.SystemPrompt,
		Temperature:  &tpl.Temperature,
		MaxTokens:    &tpl.MaxTokens,
		Provider:     req.Provider,
		ResponseLang: req.ResponseLang,
	}
	if req.Temperature != nil {
		genReq.Temperature = req.Temperature
	}
	if req.MaxTokens != nil {
		genReq.MaxTokens = req.MaxTokens
	}
	if err := genReq.Validate(); err != nil {
		return nil, err
	}

	provider, model, err := s.registry.Resolve(genReq)
	if err != nil {
		return nil, err
	}
	if req.Model != "" {
		model = req.Model
	}

	systemPrompt, userPrompt := generation.AssemblePrompts(genReq)

	log.DebugContext(ctx, "analyzing document",
		slog.String("provider", string(provider.Name())),
		slog.String("model", model),
		slog.Int("document_length", len(document)))

	raw, err := provider.Generate(ctx, systemPrompt, userPrompt, generation.CallOptions{
		Model:       model,
		Temperature: *genReq.Temperature,
		MaxTokens:   *genReq.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	value, err := generation.Normalize(raw)
	if err == nil {
		return value, nil
	}

	var parseErr *generation.ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}

	log.InfoContext(ctx, "analysis response was not JSON, degrading to plain answer",
		slog.String("provider", string(provider.Name())),
		slog.Int("raw_length", len(parseErr.Raw)))

	return map[string]any{
		"answer":     parseErr.Raw,
		"highlights": []any{},
	}, nil
}

// renderPrompt substitutes the {document} and {question} placeholders. A
// template without a {document} placeholder gets the document appended so the
// model always sees it.
func renderPrompt(prompt, document, question string) string {
	hasDocPlaceholder := strings.Contains(prompt, "{document}")
	rendered := strings.NewReplacer(
		"{document}", document,
		"{question}", question,
	).Replace(prompt)

	if !hasDocPlaceholder {
		rendered = rendered + "\n\n" + document
	}
	return rendered
}

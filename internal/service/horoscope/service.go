// Package horoscope generates and caches zodiac readings. Each reading is
// produced once per (sign, period, date, language) key and served from the
// database afterwards.
package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/platform/logger"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// Template keys consumed per period. Admins seed and edit these through the
// prompt template endpoints.
const (
	templateKeyDaily   = "horoscope_daily"
	templateKeyWeekly  = "horoscope_weekly"
	templateKeyMonthly = "horoscope_monthly"
)

// Generator is the slice of the generation service the horoscope flow needs.
type Generator interface {
	Generate(ctx context.Context, req *generation.GenerationRequest) (any, error)
}

// Service produces horoscopes on demand and caches successful results.
type Service struct {
	generator  Generator
	templates  store.TemplateStore
	horoscopes store.HoroscopeStore
	logger     *slog.Logger
}

// NewService creates the horoscope service.
func NewService(generator Generator, templates store.TemplateStore, horoscopes store.HoroscopeStore, log *slog.Logger) (*Service, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if templates == nil {
		return nil, errors.New("template store cannot be nil")
	}
	if horoscopes == nil {
		return nil, errors.New("horoscope store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		generator:  generator,
		templates:  templates,
		horoscopes: horoscopes,
		logger:     log.With(slog.String("component", "horoscope")),
	}, nil
}

// Get returns the reading for the given key, generating and persisting it on
// first request. The result is either the parsed JSON content or a
// generation.TerminalFailure value when every attempt produced invalid JSON;
// terminal failures are never cached.
func (s *Service) Get(ctx context.Context, sign string, period domain.HoroscopePeriod, date, language string) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsZodiacSign(sign) {
		return nil, domain.ErrInvalidZodiacSign
	}
	switch period {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly:
	default:
		return nil, domain.ErrInvalidHoroscopePeriod
	}

	stored, err := s.horoscopes.Get(ctx, sign, period, date, language)
	if err == nil {
		log.DebugContext(ctx, "horoscope served from store",
			slog.String("sign", sign),
			slog.String("period", string(period)),
			slog.String("date", date))
		var content any
		if err := json.Unmarshal(stored.Content, &content); err != nil {
			return nil, fmt.Errorf("decode stored horoscope: %w", err)
		}
		return content, nil
	}
	if !errors.Is(err, store.ErrHoroscopeNotFound) {
		return nil, err
	}

	req, err := s.buildRequest(ctx, sign, period, date, language)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if failure, ok := result.(generation.TerminalFailure); ok {
		return failure, nil
	}

	content, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode horoscope content: %w", err)
	}
	horoscope, err := domain.NewHoroscope(sign, period, date, language, content)
	if err != nil {
		return nil, err
	}
	if err := s.horoscopes.Create(ctx, horoscope); err != nil {
		// A concurrent request for the same key may have won the insert;
		// the generated content is still valid to return.
		if !store.IsDuplicateError(err) {
			return nil, err
		}
		log.DebugContext(ctx, "horoscope already stored by concurrent request",
			slog.String("sign", sign),
			slog.String("period", string(period)))
	}

	log.InfoContext(ctx, "horoscope generated",
		slog.String("sign", sign),
		slog.String("period", string(period)),
		slog.String("date", date))
	return result, nil
}

// buildRequest assembles the generation request from the period's prompt
// template and the contextual fields.
func (s *Service) buildRequest(ctx context.Context, sign string, period domain.HoroscopePeriod, date, language string) (*generation.GenerationRequest, error) {
	key := templateKeyDaily
	switch period {
	case domain.PeriodWeekly:
		key = templateKeyWeekly
	case domain.PeriodMonthly:
		key = templateKeyMonthly
	}

	tpl, err := s.templates.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load template %q: %w", key, err)
	}

	req := &generation.GenerationRequest{
		Prompt:       tpl.Prompt,
		SystemPrompt: tpl.SystemPrompt,
		Temperature:  &tpl.Temperature,
		MaxTokens:    &tpl.MaxTokens,
		ResponseLang: language,
		ZodiacSign:   sign,
	}

	switch period {
	case domain.PeriodDaily:
		req.HoroscopeDate = date
	case domain.PeriodWeekly:
		req.HoroscopeWeek = date
	case domain.PeriodMonthly:
		req.HoroscopeMonth = date
	}
	return req, nil
}

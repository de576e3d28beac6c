package horoscope

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/store"
)

type stubGenerator struct {
	result  any
	err     error
	calls   int
	lastReq *generation.GenerationRequest
}

func (g *stubGenerator) Generate(_ context.Context, req *generation.GenerationRequest) (any, error) {
	g.calls++
	g.lastReq = req
	return g.result, g.err
}

type stubTemplateStore struct {
	store.TemplateStore
	templates map[string]*domain.PromptTemplate
	lastKey   string
}

func (s *stubTemplateStore) GetByKey(_ context.Context, key string) (*domain.PromptTemplate, error) {
	s.lastKey = key
	tpl, ok := s.templates[key]
	if !ok {
		return nil, store.ErrTemplateNotFound
	}
	return tpl, nil
}

type stubHoroscopeStore struct {
	stored    *domain.Horoscope
	createErr error
	created   []*domain.Horoscope
}

func (s *stubHoroscopeStore) Create(_ context.Context, h *domain.Horoscope) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, h)
	return nil
}

func (s *stubHoroscopeStore) Get(_ context.Context, sign string, period domain.HoroscopePeriod, date, language string) (*domain.Horoscope, error) {
	if s.stored != nil && s.stored.Sign == sign && s.stored.Period == period &&
		s.stored.Date == date && s.stored.Language == language {
		return s.stored, nil
	}
	return nil, store.ErrHoroscopeNotFound
}

func dailyTemplate(t *testing.T) *domain.PromptTemplate {
	t.Helper()
	tpl, err := domain.NewPromptTemplate("horoscope_daily",
		"You are an astrologer.", "Write today's horoscope.", 0.9, 600)
	require.NoError(t, err)
	return tpl
}

func newTestService(t *testing.T, gen *stubGenerator, templates *stubTemplateStore, horoscopes *stubHoroscopeStore) *Service {
	t.Helper()
	svc, err := NewService(gen, templates, horoscopes, nil)
	require.NoError(t, err)
	return svc
}

func TestGetGeneratesAndStores(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{result: map[string]any{"general": "a good day"}}
	templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
		"horoscope_daily": dailyTemplate(t),
	}}
	horoscopes := &stubHoroscopeStore{}
	svc := newTestService(t, gen, templates, horoscopes)

	result, err := svc.Get(context.Background(), "aries", domain.PeriodDaily, "2025-03-10", "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"general": "a good day"}, result)

	require.Equal(t, 1, gen.calls)
	req := gen.lastReq
	assert.Equal(t, "Write today's horoscope.", req.Prompt)
	assert.Equal(t, "You are an astrologer.", req.SystemPrompt)
	assert.Equal(t, "aries", req.ZodiacSign)
	assert.Equal(t, "2025-03-10", req.HoroscopeDate)
	assert.Equal(t, "en", req.ResponseLang)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.9, *req.Temperature, 0.001)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 600, *req.MaxTokens)

	require.Len(t, horoscopes.created, 1)
	assert.Equal(t, "aries", horoscopes.created[0].Sign)
	assert.JSONEq(t, `{"general":"a good day"}`, string(horoscopes.created[0].Content))
}

func TestGetServesStoredReading(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{result: map[string]any{"general": "fresh"}}
	templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
		"horoscope_daily": dailyTemplate(t),
	}}
	horoscopes := &stubHoroscopeStore{stored: &domain.Horoscope{
		ID:       uuid.New(),
		Sign:     "leo",
		Period:   domain.PeriodDaily,
		Date:     "2025-03-10",
		Language: "en",
		Content:  json.RawMessage(`{"general":"stored"}`),
	}}
	svc := newTestService(t, gen, templates, horoscopes)

	result, err := svc.Get(context.Background(), "leo", domain.PeriodDaily, "2025-03-10", "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"general": "stored"}, result)
	assert.Equal(t, 0, gen.calls, "no provider call when a stored reading exists")
}

func TestGetPeriodSelectsTemplateAndContextField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		period      domain.HoroscopePeriod
		wantKey     string
		checkFields func(t *testing.T, req *generation.GenerationRequest)
	}{
		{
			period:  domain.PeriodDaily,
			wantKey: "horoscope_daily",
			checkFields: func(t *testing.T, req *generation.GenerationRequest) {
				assert.Equal(t, "2025-W11", req.HoroscopeDate)
				assert.Empty(t, req.HoroscopeWeek)
				assert.Empty(t, req.HoroscopeMonth)
			},
		},
		{
			period:  domain.PeriodWeekly,
			wantKey: "horoscope_weekly",
			checkFields: func(t *testing.T, req *generation.GenerationRequest) {
				assert.Equal(t, "2025-W11", req.HoroscopeWeek)
				assert.Empty(t, req.HoroscopeDate)
				assert.Empty(t, req.HoroscopeMonth)
			},
		},
		{
			period:  domain.PeriodMonthly,
			wantKey: "horoscope_monthly",
			checkFields: func(t *testing.T, req *generation.GenerationRequest) {
				assert.Equal(t, "2025-W11", req.HoroscopeMonth)
				assert.Empty(t, req.HoroscopeDate)
				assert.Empty(t, req.HoroscopeWeek)
			},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			tpl := dailyTemplate(t)
			gen := &stubGenerator{result: map[string]any{"ok": true}}
			templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
				tc.wantKey: tpl,
			}}
			svc := newTestService(t, gen, templates, &stubHoroscopeStore{})

			_, err := svc.Get(context.Background(), "virgo", tc.period, "2025-W11", "en")
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, templates.lastKey)
			tc.checkFields(t, gen.lastReq)
		})
	}
}

func TestGetInvalidInputs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubGenerator{}, &stubTemplateStore{}, &stubHoroscopeStore{})

	_, err := svc.Get(context.Background(), "dragon", domain.PeriodDaily, "2025-03-10", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidZodiacSign)

	_, err = svc.Get(context.Background(), "aries", domain.HoroscopePeriod("yearly"), "2025", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidHoroscopePeriod)
}

func TestGetMissingTemplate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubGenerator{}, &stubTemplateStore{templates: map[string]*domain.PromptTemplate{}}, &stubHoroscopeStore{})

	_, err := svc.Get(context.Background(), "aries", domain.PeriodDaily, "2025-03-10", "en")
	assert.ErrorIs(t, err, store.ErrTemplateNotFound)
}

func TestGetTerminalFailureNotStored(t *testing.T) {
	t.Parallel()

	failure := generation.TerminalFailure{Error: true, Message: "could not obtain a valid response after 3 attempts", Attempts: 3}
	gen := &stubGenerator{result: failure}
	templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
		"horoscope_daily": dailyTemplate(t),
	}}
	horoscopes := &stubHoroscopeStore{}
	svc := newTestService(t, gen, templates, horoscopes)

	result, err := svc.Get(context.Background(), "aries", domain.PeriodDaily, "2025-03-10", "en")
	require.NoError(t, err)
	assert.Equal(t, failure, result)
	assert.Empty(t, horoscopes.created, "failures must not be cached")
}

func TestGetDuplicateInsertTolerated(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{result: map[string]any{"general": "raced"}}
	templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
		"horoscope_daily": dailyTemplate(t),
	}}
	horoscopes := &stubHoroscopeStore{createErr: store.ErrDuplicate}
	svc := newTestService(t, gen, templates, horoscopes)

	result, err := svc.Get(context.Background(), "aries", domain.PeriodDaily, "2025-03-10", "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"general": "raced"}, result)
}

func TestGetProviderErrorPropagated(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("upstream unavailable")
	gen := &stubGenerator{err: providerErr}
	templates := &stubTemplateStore{templates: map[string]*domain.PromptTemplate{
		"horoscope_daily": dailyTemplate(t),
	}}
	svc := newTestService(t, gen, templates, &stubHoroscopeStore{})

	_, err := svc.Get(context.Background(), "aries", domain.PeriodDaily, "2025-03-10", "en")
	assert.ErrorIs(t, err, providerErr)
}

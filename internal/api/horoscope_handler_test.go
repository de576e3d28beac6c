package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanalabs/arcana-api/internal/domain"
)

type stubHoroscopeService struct {
	result       any
	err          error
	lastSign     string
	lastPeriod   domain.HoroscopePeriod
	lastDate     string
	lastLanguage string
}

func (s *stubHoroscopeService) Get(_ context.Context, sign string, period domain.HoroscopePeriod, date, language string) (any, error) {
	s.lastSign = sign
	s.lastPeriod = period
	s.lastDate = date
	s.lastLanguage = language
	return s.result, s.err
}

func horoscopeRequest(t *testing.T, svc *stubHoroscopeService, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/api/horoscopes/{sign}", NewHoroscopeHandler(svc).Get)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHoroscopeGetSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubHoroscopeService{result: map[string]any{"general": "a calm day"}}
	w := horoscopeRequest(t, svc, "/api/horoscopes/Aries?period=weekly&date=2025-W11&lang=ru")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a calm day", body["general"])

	assert.Equal(t, "aries", svc.lastSign, "sign is lowercased")
	assert.Equal(t, domain.PeriodWeekly, svc.lastPeriod)
	assert.Equal(t, "2025-W11", svc.lastDate)
	assert.Equal(t, "ru", svc.lastLanguage)
}

func TestHoroscopeGetDefaults(t *testing.T) {
	t.Parallel()

	svc := &stubHoroscopeService{result: map[string]any{}}
	w := horoscopeRequest(t, svc, "/api/horoscopes/leo")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PeriodDaily, svc.lastPeriod)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, svc.lastDate, "daily default date is an ISO day")
	assert.Empty(t, svc.lastLanguage)
}

func TestHoroscopeGetInvalidSign(t *testing.T) {
	t.Parallel()

	svc := &stubHoroscopeService{err: domain.ErrInvalidZodiacSign}
	w := horoscopeRequest(t, svc, "/api/horoscopes/dragon")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHoroscopeGetInvalidPeriod(t *testing.T) {
	t.Parallel()

	svc := &stubHoroscopeService{err: domain.ErrInvalidHoroscopePeriod}
	w := horoscopeRequest(t, svc, "/api/horoscopes/leo?period=yearly")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDefaultDatePerPeriod(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, defaultDate(domain.PeriodDaily))
	assert.Regexp(t, `^\d{4}-W\d{2}$`, defaultDate(domain.PeriodWeekly))
	assert.Regexp(t, `^\d{4}-\d{2}$`, defaultDate(domain.PeriodMonthly))
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arcanalabs/arcana-api/internal/api/shared"
	"github.com/arcanalabs/arcana-api/internal/domain"
)

// HoroscopeService is the slice of the horoscope service the handler uses.
type HoroscopeService interface {
	Get(ctx context.Context, sign string, period domain.HoroscopePeriod, date, language string) (any, error)
}

// HoroscopeHandler serves GET /api/horoscopes/{sign}. The first request for a
// key generates the reading; later requests return the stored one.
type HoroscopeHandler struct {
	horoscopes HoroscopeService
}

// NewHoroscopeHandler creates a new HoroscopeHandler.
func NewHoroscopeHandler(horoscopes HoroscopeService) *HoroscopeHandler {
	return &HoroscopeHandler{horoscopes: horoscopes}
}

// Get handles GET /api/horoscopes/{sign}?period=daily&date=2025-03-10&lang=en.
// Period defaults to daily and date to today when omitted.
func (h *HoroscopeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sign := strings.ToLower(chi.URLParam(r, "sign"))

	period := domain.HoroscopePeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = domain.PeriodDaily
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = defaultDate(period)
	}

	language := r.URL.Query().Get("lang")

	result, err := h.horoscopes.Get(r.Context(), sign, period, date, language)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// defaultDate formats the current UTC moment as the period's key: ISO day,
// ISO week, or year-month.
func defaultDate(period domain.HoroscopePeriod) string {
	now := time.Now().UTC()
	switch period {
	case domain.PeriodWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case domain.PeriodMonthly:
		return now.Format("2006-01")
	default:
		return now.Format("2006-01-02")
	}
}

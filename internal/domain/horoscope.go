package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Horoscope validation errors.
var (
	ErrInvalidZodiacSign      = errors.New("unknown zodiac sign")
	ErrInvalidHoroscopePeriod = errors.New("invalid horoscope period")
	ErrEmptyHoroscopeContent  = errors.New("horoscope content cannot be empty")
)

// HoroscopePeriod identifies the time span a horoscope covers.
type HoroscopePeriod string

// Supported horoscope periods.
const (
	PeriodDaily   HoroscopePeriod = "daily"
	PeriodWeekly  HoroscopePeriod = "weekly"
	PeriodMonthly HoroscopePeriod = "monthly"
)

// zodiacSigns is the closed set of accepted sign identifiers (lowercase).
var zodiacSigns = map[string]struct{}{
	"aries": {}, "taurus": {}, "gemini": {}, "cancer": {},
	"leo": {}, "virgo": {}, "libra": {}, "scorpio": {},
	"sagittarius": {}, "capricorn": {}, "aquarius": {}, "pisces": {},
}

// IsZodiacSign reports whether sign is one of the twelve accepted identifiers.
func IsZodiacSign(sign string) bool {
	_, ok := zodiacSigns[sign]
	return ok
}

// Horoscope is a generated reading persisted for reuse: repeated requests for
// the same (sign, period, date) return the stored content instead of calling
// a provider again. Content is the raw JSON object the generation pipeline
// produced; its shape is provider-prompt-defined, not fixed here.
type Horoscope struct {
	ID        uuid.UUID       `json:"id"`
	Sign      string          `json:"sign"`
	Period    HoroscopePeriod `json:"period"`
	Date      string          `json:"date"` // ISO day, ISO week, or YYYY-MM depending on period
	Language  string          `json:"language"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewHoroscope creates a validated Horoscope with generated ID and timestamp.
func NewHoroscope(sign string, period HoroscopePeriod, date, language string, content json.RawMessage) (*Horoscope, error) {
	h := &Horoscope{
		ID:        uuid.New(),
		Sign:      sign,
		Period:    period,
		Date:      date,
		Language:  language,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks if the Horoscope has valid data.
func (h *Horoscope) Validate() error {
	if !IsZodiacSign(h.Sign) {
		return ErrInvalidZodiacSign
	}
	switch h.Period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return ErrInvalidHoroscopePeriod
	}
	if len(h.Content) == 0 {
		return ErrEmptyHoroscopeContent
	}
	return nil
}

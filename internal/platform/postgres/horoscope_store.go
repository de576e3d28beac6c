package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// HoroscopeStore implements store.HoroscopeStore using PostgreSQL. Rows are
// keyed by (sign, period, date, language) so a reading is generated at most
// once per key.
type HoroscopeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewHoroscopeStore creates a new PostgreSQL implementation of
// store.HoroscopeStore.
func NewHoroscopeStore(db store.DBTX, log *slog.Logger) *HoroscopeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &HoroscopeStore{
		db:     db,
		logger: log.With(slog.String("component", "horoscope_store")),
	}
}

var _ store.HoroscopeStore = (*HoroscopeStore)(nil)

// Create saves a generated horoscope.
func (s *HoroscopeStore) Create(ctx context.Context, horoscope *domain.Horoscope) error {
	if err := horoscope.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO horoscopes (id, sign, period, date, language, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, query,
		horoscope.ID, horoscope.Sign, horoscope.Period, horoscope.Date,
		horoscope.Language, []byte(horoscope.Content), horoscope.CreatedAt); err != nil {
		return MapError(err)
	}
	return nil
}

// Get returns the stored horoscope for the given key, or
// store.ErrHoroscopeNotFound when none has been generated yet.
func (s *HoroscopeStore) Get(ctx context.Context, sign string, period domain.HoroscopePeriod, date, language string) (*domain.Horoscope, error) {
	query := `
		SELECT id, sign, period, date, language, content, created_at
		FROM horoscopes
		WHERE sign = $1 AND period = $2 AND date = $3 AND language = $4
	`
	var h domain.Horoscope
	var content []byte
	err := s.db.QueryRowContext(ctx, query, sign, period, date, language).Scan(
		&h.ID, &h.Sign, &h.Period, &h.Date, &h.Language, &content, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHoroscopeNotFound
		}
		return nil, MapError(err)
	}
	h.Content = content
	return &h, nil
}

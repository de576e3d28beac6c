// Package store defines the persistence interfaces consumed by services and
// handlers, keeping them decoupled from the PostgreSQL implementations in
// internal/platform/postgres.
package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/arcanalabs/arcana-api/internal/domain"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing store code
// to work with either a database connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserStore manages user persistence.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TemplateStore manages prompt template persistence. Templates are looked up
// by key from the generation paths and managed by ID from the admin surface.
type TemplateStore interface {
	Create(ctx context.Context, tpl *domain.PromptTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PromptTemplate, error)
	GetByKey(ctx context.Context, key string) (*domain.PromptTemplate, error)
	List(ctx context.Context) ([]*domain.PromptTemplate, error)
	Update(ctx context.Context, tpl *domain.PromptTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeckStore manages tarot deck persistence.
type DeckStore interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	List(ctx context.Context) ([]*domain.Deck, error)
	Update(ctx context.Context, deck *domain.Deck) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpreadStore manages tarot spread persistence.
type SpreadStore interface {
	Create(ctx context.Context, spread *domain.Spread) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spread, error)
	List(ctx context.Context) ([]*domain.Spread, error)
	Update(ctx context.Context, spread *domain.Spread) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseStore manages course persistence.
type CourseStore interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// HoroscopeStore manages generated horoscope persistence.
type HoroscopeStore interface {
	Create(ctx context.Context, horoscope *domain.Horoscope) error
	// Get returns the stored horoscope for the given key, or
	// ErrHoroscopeNotFound when none has been generated yet.
	Get(ctx context.Context, sign string, period domain.HoroscopePeriod, date, language string) (*domain.Horoscope, error)
}

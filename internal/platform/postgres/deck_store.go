package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// DeckStore implements store.DeckStore using PostgreSQL. Cards are stored as
// a JSONB document alongside the deck row; they are always read and written
// as a unit through the admin editor, so a separate table buys nothing.
type DeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDeckStore creates a new PostgreSQL implementation of store.DeckStore.
func NewDeckStore(db store.DBTX, log *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeckStore{
		db:     db,
		logger: log.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*DeckStore)(nil)

// Create saves a new deck.
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, err := json.Marshal(deck.Cards)
	if err != nil {
		return fmt.Errorf("marshal deck cards: %w", err)
	}

	query := `
		INSERT INTO decks (id, name, description, cards, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		deck.ID, deck.Name, deck.Description, cards, deck.CreatedAt, deck.UpdatedAt); err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID retrieves a deck by ID. Returns store.ErrDeckNotFound if absent.
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, cards, created_at, updated_at FROM decks WHERE id = $1`, id)
	return scanDeck(row.Scan)
}

// List returns all decks ordered by name.
func (s *DeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, cards, created_at, updated_at FROM decks ORDER BY name`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows.Scan)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return decks, nil
}

// Update persists changes to an existing deck.
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, err := json.Marshal(deck.Cards)
	if err != nil {
		return fmt.Errorf("marshal deck cards: %w", err)
	}

	query := `
		UPDATE decks SET name = $2, description = $3, cards = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		deck.ID, deck.Name, deck.Description, cards, deck.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrDeckNotFound
	}
	return nil
}

// Delete removes a deck by ID.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrDeckNotFound
	}
	return nil
}

func scanDeck(scan func(dest ...any) error) (*domain.Deck, error) {
	var deck domain.Deck
	var cards []byte
	err := scan(&deck.ID, &deck.Name, &deck.Description, &cards, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, MapError(err)
	}
	if len(cards) > 0 {
		if err := json.Unmarshal(cards, &deck.Cards); err != nil {
			return nil, fmt.Errorf("unmarshal deck cards: %w", err)
		}
	}
	return &deck, nil
}

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

// SpreadStore implements store.SpreadStore using PostgreSQL. Positions are
// stored as a JSONB document, same reasoning as deck cards.
type SpreadStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSpreadStore creates a new PostgreSQL implementation of store.SpreadStore.
func NewSpreadStore(db store.DBTX, log *slog.Logger) *SpreadStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SpreadStore{
		db:     db,
		logger: log.With(slog.String("component", "spread_store")),
	}
}

var _ store.SpreadStore = (*SpreadStore)(nil)

// Create saves a new spread.
func (s *SpreadStore) Create(ctx context.Context, spread *domain.Spread) error {
	if err := spread.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	positions, err := json.Marshal(spread.Positions)
	if err != nil {
		return fmt.Errorf("marshal spread positions: %w", err)
	}

	query := `
		INSERT INTO spreads (id, name, description, positions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		spread.ID, spread.Name, spread.Description, positions, spread.CreatedAt, spread.UpdatedAt); err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID retrieves a spread by ID. Returns store.ErrSpreadNotFound if absent.
func (s *SpreadStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spread, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, positions, created_at, updated_at FROM spreads WHERE id = $1`, id)
	return scanSpread(row.Scan)
}

// List returns all spreads ordered by name.
func (s *SpreadStore) List(ctx context.Context) ([]*domain.Spread, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, positions, created_at, updated_at FROM spreads ORDER BY name`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var spreads []*domain.Spread
	for rows.Next() {
		spread, err := scanSpread(rows.Scan)
		if err != nil {
			return nil, err
		}
		spreads = append(spreads, spread)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return spreads, nil
}

// Update persists changes to an existing spread.
func (s *SpreadStore) Update(ctx context.Context, spread *domain.Spread) error {
	if err := spread.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	positions, err := json.Marshal(spread.Positions)
	if err != nil {
		return fmt.Errorf("marshal spread positions: %w", err)
	}

	query := `
		UPDATE spreads SET name = $2, description = $3, positions = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		spread.ID, spread.Name, spread.Description, positions, spread.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrSpreadNotFound
	}
	return nil
}

// Delete removes a spread by ID.
func (s *SpreadStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM spreads WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrSpreadNotFound
	}
	return nil
}

func scanSpread(scan func(dest ...any) error) (*domain.Spread, error) {
	var spread domain.Spread
	var positions []byte
	err := scan(&spread.ID, &spread.Name, &spread.Description, &positions, &spread.CreatedAt, &spread.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSpreadNotFound
		}
		return nil, MapError(err)
	}
	if len(positions) > 0 {
		if err := json.Unmarshal(positions, &spread.Positions); err != nil {
			return nil, fmt.Errorf("unmarshal spread positions: %w", err)
		}
	}
	return &spread, nil
}

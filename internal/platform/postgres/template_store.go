package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/platform/logger"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// TemplateStore implements store.TemplateStore using PostgreSQL.
type TemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTemplateStore creates a new PostgreSQL implementation of
// store.TemplateStore.
func NewTemplateStore(db store.DBTX, log *slog.Logger) *TemplateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TemplateStore{
		db:     db,
		logger: log.With(slog.String("component", "template_store")),
	}
}

var _ store.TemplateStore = (*TemplateStore)(nil)

// Create saves a new prompt template. Returns store.ErrTemplateKeyExists
// when the key is taken.
func (s *TemplateStore) Create(ctx context.Context, tpl *domain.PromptTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tpl.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO prompt_templates (id, key, system_prompt, prompt, temperature, max_tokens, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		tpl.ID, tpl.Key, tpl.SystemPrompt, tpl.Prompt, tpl.Temperature, tpl.MaxTokens, tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrTemplateKeyExists
		}
		log.Error("failed to create prompt template",
			slog.String("error", err.Error()),
			slog.String("key", tpl.Key))
		return MapError(err)
	}

	log.Info("prompt template created", slog.String("key", tpl.Key))
	return nil
}

const templateColumns = `id, key, system_prompt, prompt, temperature, max_tokens, created_at, updated_at`

// GetByID retrieves a template by ID.
func (s *TemplateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PromptTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates WHERE id = $1`, id)
	return scanTemplate(row)
}

// GetByKey retrieves a template by its stable key. This is the lookup the
// generation paths use. Returns store.ErrTemplateNotFound if the key is
// absent.
func (s *TemplateStore) GetByKey(ctx context.Context, key string) (*domain.PromptTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates WHERE key = $1`, key)
	return scanTemplate(row)
}

// List returns all templates ordered by key.
func (s *TemplateStore) List(ctx context.Context) ([]*domain.PromptTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM prompt_templates ORDER BY key`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.PromptTemplate
	for rows.Next() {
		var tpl domain.PromptTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Key, &tpl.SystemPrompt, &tpl.Prompt,
			&tpl.Temperature, &tpl.MaxTokens, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		templates = append(templates, &tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return templates, nil
}

// Update persists changes to an existing template.
func (s *TemplateStore) Update(ctx context.Context, tpl *domain.PromptTemplate) error {
	if err := tpl.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE prompt_templates
		SET key = $2, system_prompt = $3, prompt = $4, temperature = $5, max_tokens = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		tpl.ID, tpl.Key, tpl.SystemPrompt, tpl.Prompt, tpl.Temperature, tpl.MaxTokens, tpl.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrTemplateKeyExists
		}
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prompt_templates WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row *sql.Row) (*domain.PromptTemplate, error) {
	var tpl domain.PromptTemplate
	err := row.Scan(&tpl.ID, &tpl.Key, &tpl.SystemPrompt, &tpl.Prompt,
		&tpl.Temperature, &tpl.MaxTokens, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTemplateNotFound
		}
		return nil, MapError(err)
	}
	return &tpl, nil
}

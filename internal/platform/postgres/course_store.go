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

// CourseStore implements store.CourseStore using PostgreSQL. Lessons are
// stored as a JSONB document on the course row.
type CourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCourseStore creates a new PostgreSQL implementation of store.CourseStore.
func NewCourseStore(db store.DBTX, log *slog.Logger) *CourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CourseStore{
		db:     db,
		logger: log.With(slog.String("component", "course_store")),
	}
}

var _ store.CourseStore = (*CourseStore)(nil)

const courseColumns = `id, slug, title, description, lessons, published, created_at, updated_at`

// Create saves a new course. The slug is unique.
func (s *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	lessons, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("marshal course lessons: %w", err)
	}

	query := `
		INSERT INTO courses (id, slug, title, description, lessons, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := s.db.ExecContext(ctx, query,
		course.ID, course.Slug, course.Title, course.Description, lessons,
		course.Published, course.CreatedAt, course.UpdatedAt); err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID retrieves a course by ID. Returns store.ErrCourseNotFound if absent.
func (s *CourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	return scanCourse(row.Scan)
}

// GetBySlug retrieves a course by slug. Returns store.ErrCourseNotFound if
// absent.
func (s *CourseStore) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE slug = $1`, slug)
	return scanCourse(row.Scan)
}

// List returns all courses ordered by title.
func (s *CourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY title`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*domain.Course
	for rows.Next() {
		course, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return courses, nil
}

// Update persists changes to an existing course.
func (s *CourseStore) Update(ctx context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	lessons, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("marshal course lessons: %w", err)
	}

	query := `
		UPDATE courses
		SET slug = $2, title = $3, description = $4, lessons = $5, published = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		course.ID, course.Slug, course.Title, course.Description, lessons,
		course.Published, course.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course by ID.
func (s *CourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}
	return nil
}

func scanCourse(scan func(dest ...any) error) (*domain.Course, error) {
	var course domain.Course
	var lessons []byte
	err := scan(&course.ID, &course.Slug, &course.Title, &course.Description,
		&lessons, &course.Published, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		return nil, MapError(err)
	}
	if len(lessons) > 0 {
		if err := json.Unmarshal(lessons, &course.Lessons); err != nil {
			return nil, fmt.Errorf("unmarshal course lessons: %w", err)
		}
	}
	return &course, nil
}

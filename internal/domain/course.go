package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Course validation errors.
var (
	ErrEmptyCourseTitle  = errors.New("course title cannot be empty")
	ErrEmptyLessonTitle  = errors.New("lesson title cannot be empty")
	ErrInvalidCourseSlug = errors.New("course slug cannot be empty")
)

// Course is an educational unit (e.g. "Major Arcana basics") composed of
// ordered lessons, edited through the admin UI.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Lessons     []Lesson  `json:"lessons"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Lesson is one unit of course content. Body holds rendered-markdown source.
type Lesson struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewCourse creates a validated Course with generated ID and timestamps.
func NewCourse(slug, title, description string, lessons []Lesson) (*Course, error) {
	now := time.Now().UTC()
	course := &Course{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       title,
		Description: description,
		Lessons:     lessons,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.Slug == "" {
		return ErrInvalidCourseSlug
	}
	if c.Title == "" {
		return ErrEmptyCourseTitle
	}
	for _, lesson := range c.Lessons {
		if lesson.Title == "" {
			return ErrEmptyLessonTitle
		}
	}
	return nil
}

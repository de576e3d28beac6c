package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Spread validation errors.
var (
	ErrEmptySpreadName   = errors.New("spread name cannot be empty")
	ErrNoSpreadPositions = errors.New("spread must define at least one position")
)

// Spread describes a tarot layout: named card positions in a fixed order,
// each with the question that position answers in a reading.
type Spread struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Positions   []SpreadPosition `json:"positions"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SpreadPosition is one slot in a spread layout.
type SpreadPosition struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

// NewSpread creates a validated Spread with generated ID and timestamps.
func NewSpread(name, description string, positions []SpreadPosition) (*Spread, error) {
	now := time.Now().UTC()
	spread := &Spread{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Positions:   positions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := spread.Validate(); err != nil {
		return nil, err
	}
	return spread, nil
}

// Validate checks if the Spread has valid data.
func (s *Spread) Validate() error {
	if s.Name == "" {
		return ErrEmptySpreadName
	}
	if len(s.Positions) == 0 {
		return ErrNoSpreadPositions
	}
	return nil
}

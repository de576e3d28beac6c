package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck validation errors.
var (
	ErrEmptyDeckName = errors.New("deck name cannot be empty")
	ErrEmptyCardName = errors.New("card name cannot be empty")
)

// Deck represents a tarot deck: a named, ordered collection of cards with
// artwork references managed through the admin editor.
type Deck struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cards       []TarotCard `json:"cards"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TarotCard is a single card within a deck. Meaning fields hold the upright
// and reversed interpretations shown to users and fed into prompts.
type TarotCard struct {
	Name            string `json:"name"`
	Arcana          string `json:"arcana"`
	ImageURL        string `json:"image_url"`
	UprightMeaning  string `json:"upright_meaning"`
	ReversedMeaning string `json:"reversed_meaning"`
}

// NewDeck creates a validated Deck with generated ID and timestamps.
func NewDeck(name, description string, cards []TarotCard) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Cards:       cards,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.Name == "" {
		return ErrEmptyDeckName
	}
	for _, card := range d.Cards {
		if card.Name == "" {
			return ErrEmptyCardName
		}
	}
	return nil
}

package api

import (
	"github.com/google/uuid"

	"github.com/arcanalabs/arcana-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// ChatResponse wraps the plain-text output of the chat passthrough.
type ChatResponse struct {
	Response string `json:"response"`
}

// TemplateRequest defines the payload for creating or updating a prompt
// template.
type TemplateRequest struct {
	Key          string  `json:"key"           validate:"required"`
	SystemPrompt string  `json:"system_prompt"`
	Prompt       string  `json:"prompt"        validate:"required"`
	Temperature  float64 `json:"temperature"   validate:"gte=0,lte=2"`
	MaxTokens    int     `json:"max_tokens"    validate:"required,gte=1,lte=4096"`
}

// DeckRequest defines the payload for creating or updating a tarot deck.
type DeckRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Cards       []domain.TarotCard `json:"cards"`
}

// SpreadRequest defines the payload for creating or updating a tarot spread.
type SpreadRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description"`
	Positions   []domain.SpreadPosition `json:"positions"`
}

// CourseRequest defines the payload for creating or updating a course.
type CourseRequest struct {
	Slug        string          `json:"slug"  validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Lessons     []domain.Lesson `json:"lessons"`
	Published   bool            `json:"published"`
}

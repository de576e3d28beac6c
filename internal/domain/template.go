package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Prompt template validation errors.
var (
	ErrEmptyTemplateKey    = errors.New("template key cannot be empty")
	ErrEmptyTemplatePrompt = errors.New("template prompt cannot be empty")
	ErrInvalidTemperature  = errors.New("temperature must be between 0 and 2")
	ErrInvalidMaxTokens    = errors.New("max tokens must be between 1 and 4096")
)

// PromptTemplate is a stored generation preset keyed by a stable string key
// (e.g. "horoscope_daily", "document_analysis"). The prompt may contain
// {placeholder} markers substituted by callers before generation.
type PromptTemplate struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	SystemPrompt string    `json:"system_prompt"`
	Prompt       string    `json:"prompt"`
	Temperature  float64   `json:"temperature"`
	MaxTokens    int       `json:"max_tokens"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPromptTemplate creates a validated PromptTemplate with generated ID and
// timestamps.
func NewPromptTemplate(key, systemPrompt, prompt string, temperature float64, maxTokens int) (*PromptTemplate, error) {
	now := time.Now().UTC()
	tpl := &PromptTemplate{
		ID:           uuid.New(),
		Key:          key,
		SystemPrompt: systemPrompt,
		Prompt:       prompt,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Validate checks if the PromptTemplate has valid data.
func (t *PromptTemplate) Validate() error {
	if t.Key == "" {
		return ErrEmptyTemplateKey
	}
	if t.Prompt == "" {
		return ErrEmptyTemplatePrompt
	}
	if t.Temperature < 0 || t.Temperature > 2 {
		return ErrInvalidTemperature
	}
	if t.MaxTokens < 1 || t.MaxTokens > 4096 {
		return ErrInvalidMaxTokens
	}
	return nil
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/arcanalabs/arcana-api/internal/domain"
	"github.com/arcanalabs/arcana-api/internal/generation"
	"github.com/arcanalabs/arcana-api/internal/service/auth"
	"github.com/arcanalabs/arcana-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Unknown
// errors become 500 so no internal detail leaks by default.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTemplateNotFound),
		errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrSpreadNotFound),
		errors.Is(err, store.ErrCourseNotFound),
		errors.Is(err, store.ErrHoroscopeNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrTemplateKeyExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidZodiacSign),
		errors.Is(err, domain.ErrInvalidHoroscopePeriod),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, generation.ErrUnsupportedProvider):
		return http.StatusBadRequest

	// A provider without an API key is a deployment gap, not a client error.
	case errors.Is(err, generation.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTemplateNotFound):
		return "Prompt template not found"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrSpreadNotFound):
		return "Spread not found"

	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, store.ErrHoroscopeNotFound):
		return "Horoscope not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrTemplateKeyExists):
		return "Template key already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrInvalidZodiacSign):
		return "Unknown zodiac sign"

	case errors.Is(err, domain.ErrInvalidHoroscopePeriod):
		return "Invalid horoscope period"

	case errors.Is(err, domain.ErrEmptyContent):
		return "Document content cannot be empty"

	case errors.Is(err, generation.ErrEmptyPrompt):
		return "Prompt cannot be empty"

	case errors.Is(err, generation.ErrUnsupportedProvider):
		return "Unsupported provider"

	case errors.Is(err, generation.ErrProviderNotConfigured):
		return "Provider is not configured"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a go-playground/validator error into a short
// user-facing message without echoing struct internals.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

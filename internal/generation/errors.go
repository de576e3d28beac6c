package generation

import "errors"

// Common errors returned by the generation package.
var (
	// ErrEmptyPrompt is returned when a request carries no prompt text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrUnsupportedProvider is returned when the requested provider
	// identifier is not part of the supported set.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderNotConfigured is returned at call time when the resolved
	// adapter has no API key. Configuration absence must not crash startup;
	// it surfaces here, per call, instead.
	ErrProviderNotConfigured = errors.New("provider not configured")
)

package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports that provider output was not valid JSON after fence
// stripping. It is the ONLY error class the retry orchestrator recovers from;
// the tagged type makes that decision an errors.As check instead of string
// matching on messages.
type ParseError struct {
	// Raw is the cleaned (fence-stripped) text that failed to parse.
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripFences removes a markdown code fence wrapping the payload, preferring
// the ```json form over a bare ``` form. A fence that is only a prefix (the
// closing fence was truncated away) is handled too; text without a fence is
// returned trimmed and otherwise untouched.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	default:
		return s
	}

	s = strings.TrimPrefix(s, "\n")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// Normalize strips fences and parses the result as JSON. On success the
// parsed value is returned unchanged; the contract is "valid JSON", not a
// fixed schema. On failure it returns a *ParseError carrying the cleaned text.
func Normalize(raw string) (any, error) {
	cleaned := StripFences(raw)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, &ParseError{Raw: cleaned, Err: err}
	}
	return value, nil
}

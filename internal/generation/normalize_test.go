package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All fence shapes must yield the identical parsed object.
func TestNormalizeFenceShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "json-tagged fence", raw: "```json\n{\"a\":1}\n```"},
		{name: "bare fence", raw: "```\n{\"a\":1}\n```"},
		{name: "no fence", raw: `{"a":1}`},
		{name: "fence with surrounding whitespace", raw: "  ```json\n{\"a\":1}\n```  \n"},
		{name: "prefix-only fence", raw: "```json\n{\"a\":1}"},
	}

	want := map[string]any{"a": float64(1)}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, want, value)
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty input", raw: "", want: ""},
		{name: "plain text untouched", raw: "hello", want: "hello"},
		{name: "json fence", raw: "```json\n{\"x\":true}\n```", want: `{"x":true}`},
		{name: "bare fence", raw: "```\ntext body\n```", want: "text body"},
		{name: "fence without newline", raw: "```json{\"x\":1}```", want: `{"x":1}`},
		{name: "missing closing fence", raw: "```json\n{\"x\":1}", want: `{"x":1}`},
		{
			name: "inner backticks preserved",
			raw:  "```json\n{\"code\":\"use `go test`\"}\n```",
			want: "{\"code\":\"use `go test`\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.raw))
		})
	}
}

// Stripping is idempotent: normalizing already-stripped text parses the same.
func TestStripFencesIdempotent(t *testing.T) {
	raw := "```json\n{\"a\":1}\n```"
	once := StripFences(raw)
	twice := StripFences(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeInvalidJSON(t *testing.T) {
	value, err := Normalize("I am sorry, I cannot produce JSON today.")
	assert.Nil(t, value)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "failure must be a tagged *ParseError")
	assert.Equal(t, "I am sorry, I cannot produce JSON today.", parseErr.Raw)
	assert.Contains(t, parseErr.Error(), "not valid JSON")
}

func TestNormalizeArbitraryShapes(t *testing.T) {
	// The contract is "valid JSON", not "JSON object".
	value, err := Normalize(`[1,2,3]`)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, value)
}

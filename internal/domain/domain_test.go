package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid user", email: "reader@example.com", password: "longenoughpassword"},
		{name: "empty email", email: "", password: "longenoughpassword", wantErr: ErrEmptyEmail},
		{name: "malformed email", email: "not-an-email", password: "longenoughpassword", wantErr: ErrInvalidEmail},
		{name: "missing domain dot", email: "user@localhost", password: "longenoughpassword", wantErr: ErrInvalidEmail},
		{name: "short password", email: "reader@example.com", password: "short", wantErr: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.NotZero(t, user.ID)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestPromptTemplateValidate(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		prompt      string
		temperature float64
		maxTokens   int
		wantErr     error
	}{
		{name: "valid", key: "daily-horoscope", prompt: "Write a horoscope", temperature: 0.7, maxTokens: 800},
		{name: "empty key", key: "", prompt: "p", temperature: 0.7, maxTokens: 800, wantErr: ErrEmptyTemplateKey},
		{name: "empty prompt", key: "k", prompt: "", temperature: 0.7, maxTokens: 800, wantErr: ErrEmptyTemplatePrompt},
		{name: "temperature too high", key: "k", prompt: "p", temperature: 2.5, maxTokens: 800, wantErr: ErrInvalidTemperature},
		{name: "zero max tokens", key: "k", prompt: "p", temperature: 0.7, maxTokens: 0, wantErr: ErrInvalidMaxTokens},
		{name: "max tokens over limit", key: "k", prompt: "p", temperature: 0.7, maxTokens: 5000, wantErr: ErrInvalidMaxTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := NewPromptTemplate(tt.key, "system", tt.prompt, tt.temperature, tt.maxTokens)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tpl)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, tpl.Key)
		})
	}
}

func TestNewHoroscope(t *testing.T) {
	content := json.RawMessage(`{"message":"a good day"}`)

	h, err := NewHoroscope("aries", PeriodDaily, "2026-09-01", "english", content)
	require.NoError(t, err)
	assert.Equal(t, "aries", h.Sign)

	_, err = NewHoroscope("ophiuchus", PeriodDaily, "2026-09-01", "english", content)
	assert.ErrorIs(t, err, ErrInvalidZodiacSign)

	_, err = NewHoroscope("aries", HoroscopePeriod("yearly"), "2026", "english", content)
	assert.ErrorIs(t, err, ErrInvalidHoroscopePeriod)

	_, err = NewHoroscope("aries", PeriodDaily, "2026-09-01", "english", nil)
	assert.ErrorIs(t, err, ErrEmptyHoroscopeContent)
}

func TestDeckAndSpreadValidate(t *testing.T) {
	_, err := NewDeck("", "desc", nil)
	assert.ErrorIs(t, err, ErrEmptyDeckName)

	deck, err := NewDeck("Rider-Waite", "classic deck", []TarotCard{{Name: "The Fool", Arcana: "major"}})
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 1)

	_, err = NewDeck("Broken", "", []TarotCard{{Name: ""}})
	assert.ErrorIs(t, err, ErrEmptyCardName)

	_, err = NewSpread("Celtic Cross", "", nil)
	assert.ErrorIs(t, err, ErrNoSpreadPositions)

	spread, err := NewSpread("Three Card", "", []SpreadPosition{{Index: 0, Name: "Past"}})
	require.NoError(t, err)
	assert.Equal(t, "Three Card", spread.Name)
}

func TestCourseValidate(t *testing.T) {
	course, err := NewCourse("major-arcana", "Major Arcana", "", []Lesson{{Index: 0, Title: "The Fool"}})
	require.NoError(t, err)
	assert.False(t, course.Published)

	_, err = NewCourse("", "Major Arcana", "", nil)
	assert.ErrorIs(t, err, ErrInvalidCourseSlug)

	_, err = NewCourse("slug", "", "", nil)
	assert.ErrorIs(t, err, ErrEmptyCourseTitle)
}

package learner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

func validParams() NewLearnerParams {
	return NewLearnerParams{
		ID:           "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Email:        shared.Email("anna@example.com"),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		DisplayName:  "Anna",
	}
}

func TestNewLearner(t *testing.T) {
	l, err := NewLearner(validParams())
	require.NoError(t, err)

	assert.Equal(t, shared.XP(0), l.XP)
	assert.Equal(t, 0, l.Streak)
	assert.Equal(t, shared.FullHearts, l.Hearts)
	assert.Equal(t, shared.Level(1), l.Level())
	assert.False(t, l.HasEverPracticed())
	assert.Empty(t, l.LanguagesLearning)
}

func TestNewLearner_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewLearnerParams)
	}{
		{"empty id", func(p *NewLearnerParams) { p.ID = "" }},
		{"invalid email", func(p *NewLearnerParams) { p.Email = "not-an-email" }},
		{"empty password hash", func(p *NewLearnerParams) { p.PasswordHash = "" }},
		{"empty display name", func(p *NewLearnerParams) { p.DisplayName = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			_, err := NewLearner(params)
			assert.Error(t, err)
		})
	}
}

func TestStartLanguage(t *testing.T) {
	l, err := NewLearner(validParams())
	require.NoError(t, err)

	added, err := l.StartLanguage("es")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, shared.LanguageCode("es"), l.CurrentLanguage)

	// Повторный старт того же языка только переключает текущий.
	added, err = l.StartLanguage("es")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, l.LanguagesLearning, 1)

	added, err = l.StartLanguage("fr")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, shared.LanguageCode("fr"), l.CurrentLanguage)
	assert.True(t, l.HasStarted("es"))
	assert.Len(t, l.LanguagesLearning, 2)

	_, err = l.StartLanguage("español")
	assert.Error(t, err)
}

func TestApplyProgress(t *testing.T) {
	l, err := NewLearner(validParams())
	require.NoError(t, err)

	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	l.ApplyProgress(shared.XP(115), 3, shared.Hearts(4), today)

	assert.Equal(t, shared.XP(115), l.XP)
	assert.Equal(t, shared.Level(2), l.Level())
	assert.Equal(t, 3, l.Streak)
	assert.Equal(t, shared.Hearts(4), l.Hearts)
	assert.True(t, l.HasEverPracticed())
	assert.Equal(t, today, l.LastPracticeDate)
}

func TestUpdateDisplayNameAndRefill(t *testing.T) {
	l, err := NewLearner(validParams())
	require.NoError(t, err)

	require.NoError(t, l.UpdateDisplayName("  Anna K.  "))
	assert.Equal(t, "Anna K.", l.DisplayName)

	assert.Error(t, l.UpdateDisplayName(""))

	l.Hearts = 0
	l.RefillHearts()
	assert.Equal(t, shared.FullHearts, l.Hearts)
}

func TestClone(t *testing.T) {
	l, err := NewLearner(validParams())
	require.NoError(t, err)
	_, err = l.StartLanguage("es")
	require.NoError(t, err)

	clone := l.Clone()
	clone.LanguagesLearning[0] = "de"
	assert.Equal(t, shared.LanguageCode("es"), l.LanguagesLearning[0])
}

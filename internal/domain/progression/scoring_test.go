package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

func fourItems() []GradedItem {
	return []GradedItem{
		{Prompt: "Hello", CorrectAnswer: "Hola"},
		{Prompt: "Thank you", CorrectAnswer: "Gracias"},
		{Prompt: "Goodbye", CorrectAnswer: "Adiós"},
		{Prompt: "Please", CorrectAnswer: "Por favor"},
	}
}

func TestScore_AllCorrect(t *testing.T) {
	result, err := Score(fourItems(), []string{"Hola", "Gracias", "Adiós", "Por favor"})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Correct)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, shared.ScorePercent(100), result.Percent)
	assert.True(t, result.Passed)
	assert.True(t, result.IsPerfect())
}

func TestScore_ThreeOfFour(t *testing.T) {
	result, err := Score(fourItems(), []string{"Hola", "Gracias", "Adiós", "wrong"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Correct)
	assert.Equal(t, shared.ScorePercent(75), result.Percent)
	assert.True(t, result.Passed)
	assert.False(t, result.IsPerfect())
}

func TestScore_OneOfFour(t *testing.T) {
	result, err := Score(fourItems(), []string{"Hola", "no", "no", "no"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, shared.ScorePercent(25), result.Percent)
	assert.False(t, result.Passed)
}

func TestScore_Normalization(t *testing.T) {
	items := []GradedItem{
		{CorrectAnswer: "  Hola "},
		{CorrectAnswer: "GRACIAS"},
	}
	result, err := Score(items, []string{"hola", "  gracias  "})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Correct)
}

func TestScore_MissingAnswersCountWrong(t *testing.T) {
	result, err := Score(fourItems(), []string{"Hola"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, shared.ScorePercent(25), result.Percent)
}

func TestScore_ExcessAnswersIgnored(t *testing.T) {
	result, err := Score(fourItems(), []string{"Hola", "Gracias", "Adiós", "Por favor", "extra", "extra"})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Correct)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, shared.ScorePercent(100), result.Percent)
}

func TestScore_FloorRounding(t *testing.T) {
	items := []GradedItem{
		{CorrectAnswer: "a"},
		{CorrectAnswer: "b"},
		{CorrectAnswer: "c"},
	}
	// 2/3 = 66.66 -> 66, ниже порога 70.
	result, err := Score(items, []string{"a", "b", "x"})
	require.NoError(t, err)

	assert.Equal(t, shared.ScorePercent(66), result.Percent)
	assert.False(t, result.Passed)
}

func TestScore_EmptyLesson(t *testing.T) {
	_, err := Score(nil, []string{"a"})
	assert.ErrorIs(t, err, shared.ErrEmptyLesson)
}

func TestScore_EmptySubmission(t *testing.T) {
	result, err := Score(fourItems(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Correct)
	assert.Equal(t, shared.ScorePercent(0), result.Percent)
	assert.False(t, result.Passed)
}

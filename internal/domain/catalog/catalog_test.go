package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

func TestDefault_EveryLanguageHasSixLessons(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	langs := c.Languages()
	require.Len(t, langs, 10)

	for _, lang := range langs {
		lessons := c.Lessons(lang.Code)
		assert.GreaterOrEqual(t, len(lessons), 6, "language %s", lang.Code)

		// Плотные order-ы: 1..N без пропусков.
		orders := make(map[int]bool)
		for _, l := range lessons {
			assert.Equal(t, lang.Code, l.Language)
			assert.NotEmpty(t, l.Content, "lesson %s", l.ID)
			assert.Positive(t, l.XPReward, "lesson %s", l.ID)
			orders[l.Order] = true
		}
		for o := 1; o <= len(lessons); o++ {
			assert.True(t, orders[o], "language %s missing order %d", lang.Code, o)
		}
	}
}

func TestDefault_CuratedLessonsPreserved(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	lesson, ok := c.Lesson("es", "es-basics-1")
	require.True(t, ok)
	assert.Equal(t, "Greetings", lesson.Title)
	assert.Equal(t, 1, lesson.Order)
	assert.Equal(t, 15, lesson.XPReward)
	require.Len(t, lesson.Content, 4)
	assert.Equal(t, "Adiós", lesson.Content[3].CorrectAnswer)

	// Сгенерированный урок дополняет кураторские.
	travel, ok := c.Lesson("es", "es-travel-6")
	require.True(t, ok)
	assert.Equal(t, 6, travel.Order)
	assert.Equal(t, 25, travel.XPReward)
}

func TestLessonLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, ok := c.Lesson("es", "no-such-lesson")
	assert.False(t, ok)

	// Урок существует, но под другим языком.
	_, ok = c.Lesson("fr", "es-basics-1")
	assert.False(t, ok)

	_, ok = c.Language("xx")
	assert.False(t, ok)

	lang, ok := c.Language("ja")
	require.True(t, ok)
	assert.Equal(t, "Japanese", lang.Name)
}

func TestDefault_Flashcards(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	sets := c.Flashcards("es")
	require.Len(t, sets, 2)
	assert.Equal(t, "es-flash-1", sets[0].ID)
	assert.Len(t, sets[0].Cards, 6)

	// Для языков без наборов возвращается пустой список.
	assert.Empty(t, c.Flashcards("ko"))
}

func TestDefault_Achievements(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	defs := c.Achievements()
	assert.Len(t, defs, 11)

	a, ok := c.Achievement("perfect-lesson")
	require.True(t, ok)
	assert.Equal(t, "Perfectionist", a.Name)
	assert.Equal(t, "target", a.Icon)

	_, ok = c.Achievement("unknown")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	lang := []Language{{Code: "es", Name: "Spanish", Flag: "🇪🇸"}}
	item := ExerciseItem{Type: ExerciseWritten, Question: "q", CorrectAnswer: "a"}

	tests := []struct {
		name    string
		lessons map[shared.LanguageCode][]Lesson
	}{
		{
			"duplicate lesson id",
			map[shared.LanguageCode][]Lesson{"es": {
				{ID: "es-a-1", Language: "es", Order: 1, XPReward: 10, Content: []ExerciseItem{item}},
				{ID: "es-a-1", Language: "es", Order: 2, XPReward: 10, Content: []ExerciseItem{item}},
			}},
		},
		{
			"gap in orders",
			map[shared.LanguageCode][]Lesson{"es": {
				{ID: "es-a-1", Language: "es", Order: 1, XPReward: 10, Content: []ExerciseItem{item}},
				{ID: "es-a-3", Language: "es", Order: 3, XPReward: 10, Content: []ExerciseItem{item}},
			}},
		},
		{
			"empty content",
			map[shared.LanguageCode][]Lesson{"es": {
				{ID: "es-a-1", Language: "es", Order: 1, XPReward: 10},
			}},
		},
		{
			"wrong language bucket",
			map[shared.LanguageCode][]Lesson{"es": {
				{ID: "fr-a-1", Language: "fr", Order: 1, XPReward: 10, Content: []ExerciseItem{item}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(lang, tt.lessons, nil, nil)
			assert.ErrorIs(t, err, shared.ErrInvalidFormat)
		})
	}
}

package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixLessons() []LessonRef {
	return []LessonRef{
		{ID: "es-basics-1", Order: 1},
		{ID: "es-basics-2", Order: 2},
		{ID: "es-basics-3", Order: 3},
		{ID: "es-phrases-1", Order: 4},
		{ID: "es-family-1", Order: 5},
		{ID: "es-travel-1", Order: 6},
	}
}

func statusByID(t *testing.T, statuses []LessonStatus, id string) LessonStatus {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	require.Failf(t, "lesson not found", "id=%s", id)
	return LessonStatus{}
}

func TestDeriveUnlocks_NoProgress(t *testing.T) {
	statuses := DeriveUnlocks(sixLessons(), nil, nil)
	require.Len(t, statuses, 6)

	assert.False(t, statusByID(t, statuses, "es-basics-1").Locked)
	for _, id := range []string{"es-basics-2", "es-basics-3", "es-phrases-1", "es-family-1", "es-travel-1"} {
		assert.True(t, statusByID(t, statuses, id).Locked, id)
	}
}

func TestDeriveUnlocks_SequentialGating(t *testing.T) {
	completed := map[string]bool{"es-basics-1": true, "es-basics-2": true}
	scores := map[string]int{"es-basics-1": 100, "es-basics-2": 75}

	statuses := DeriveUnlocks(sixLessons(), completed, scores)

	first := statusByID(t, statuses, "es-basics-1")
	assert.True(t, first.Completed)
	assert.Equal(t, 100, first.Score)

	// Пройдены order 1 и 2: открыты уроки до order 3 включительно.
	assert.False(t, statusByID(t, statuses, "es-basics-2").Locked)
	assert.False(t, statusByID(t, statuses, "es-basics-3").Locked)
	assert.True(t, statusByID(t, statuses, "es-phrases-1").Locked)
}

func TestDeriveUnlocks_FailedAttemptDoesNotUnlock(t *testing.T) {
	// Записанная непройденная попытка не открывает следующий order.
	completed := map[string]bool{}
	scores := map[string]int{"es-basics-1": 25}

	statuses := DeriveUnlocks(sixLessons(), completed, scores)

	first := statusByID(t, statuses, "es-basics-1")
	assert.False(t, first.Completed)
	assert.Equal(t, 25, first.Score)
	assert.True(t, statusByID(t, statuses, "es-basics-2").Locked)
}

func TestDeriveUnlocks_ParallelOrders(t *testing.T) {
	// Два урока с одним order: прохождение любого из них открывает следующий.
	lessons := []LessonRef{
		{ID: "fr-a", Order: 1},
		{ID: "fr-b", Order: 1},
		{ID: "fr-c", Order: 2},
	}
	statuses := DeriveUnlocks(lessons, map[string]bool{"fr-b": true}, nil)

	assert.False(t, statusByID(t, statuses, "fr-a").Locked)
	assert.False(t, statusByID(t, statuses, "fr-c").Locked)
}

func TestDeriveUnlocks_Empty(t *testing.T) {
	assert.Empty(t, DeriveUnlocks(nil, nil, nil))
}

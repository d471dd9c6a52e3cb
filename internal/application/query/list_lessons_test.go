package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

type fakeCompletionRepo struct {
	records []progression.LessonCompletion
}

func (r *fakeCompletionRepo) GetByLearnerAndLanguage(_ context.Context, learnerID string, language shared.LanguageCode) ([]progression.LessonCompletion, error) {
	var out []progression.LessonCompletion
	for _, rec := range r.records {
		if rec.LearnerID == learnerID && rec.Language == language {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) CountCompletedByLanguage(_ context.Context, learnerID string, language shared.LanguageCode) (int, error) {
	n := 0
	for _, rec := range r.records {
		if rec.LearnerID == learnerID && rec.Language == language && rec.Completed {
			n++
		}
	}
	return n, nil
}

const lessonsTestLearner = "11111111-2222-3333-4444-555555555555"

func TestListLessonsHandler_FreshLearner(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	h := NewListLessonsHandler(cat, &fakeCompletionRepo{})

	res, err := h.Handle(context.Background(), ListLessonsQuery{
		LearnerID: lessonsTestLearner,
		Language:  "es",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Lessons)

	assert.Equal(t, 1, res.Lessons[0].Order)
	assert.False(t, res.Lessons[0].Locked, "the first lesson is always open")
	for _, l := range res.Lessons[1:] {
		assert.True(t, l.Locked, "lesson %s should be locked for a fresh learner", l.ID)
	}
}

func TestListLessonsHandler_CompletionUnlocksNext(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	repo := &fakeCompletionRepo{records: []progression.LessonCompletion{
		{LearnerID: lessonsTestLearner, LessonID: "es-basics-1", Language: "es", Completed: true, Score: 80},
	}}
	h := NewListLessonsHandler(cat, repo)

	res, err := h.Handle(context.Background(), ListLessonsQuery{
		LearnerID: lessonsTestLearner,
		Language:  "es",
	})
	require.NoError(t, err)

	byID := make(map[string]LessonSummaryDTO)
	for _, l := range res.Lessons {
		byID[l.ID] = l
	}

	first := byID["es-basics-1"]
	assert.True(t, first.Completed)
	assert.Equal(t, 80, first.Score)

	second := byID["es-basics-2"]
	assert.False(t, second.Locked, "completing order 1 opens order 2")
	assert.False(t, second.Completed)

	third := byID["es-basics-3"]
	assert.True(t, third.Locked, "order 3 stays locked until order 2 is completed")
}

func TestListLessonsHandler_FailedAttemptDoesNotUnlock(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	repo := &fakeCompletionRepo{records: []progression.LessonCompletion{
		{LearnerID: lessonsTestLearner, LessonID: "es-basics-1", Language: "es", Completed: false, Score: 40},
	}}
	h := NewListLessonsHandler(cat, repo)

	res, err := h.Handle(context.Background(), ListLessonsQuery{
		LearnerID: lessonsTestLearner,
		Language:  "es",
	})
	require.NoError(t, err)

	byID := make(map[string]LessonSummaryDTO)
	for _, l := range res.Lessons {
		byID[l.ID] = l
	}

	assert.False(t, byID["es-basics-1"].Completed)
	assert.Equal(t, 40, byID["es-basics-1"].Score, "last score is kept even for failed attempts")
	assert.True(t, byID["es-basics-2"].Locked)
}

func TestListLessonsHandler_UnknownLanguage(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	h := NewListLessonsHandler(cat, &fakeCompletionRepo{})

	_, err = h.Handle(context.Background(), ListLessonsQuery{
		LearnerID: lessonsTestLearner,
		Language:  "xx",
	})
	assert.ErrorIs(t, err, shared.ErrLanguageNotFound)
}

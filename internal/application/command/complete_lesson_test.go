package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeTx struct {
	learner     *learner.Learner
	completions map[string]progression.LessonCompletion
	unlocked    map[string]bool
}

func (t *fakeTx) Learner() *learner.Learner { return t.learner }

func (t *fakeTx) UpdateLearner(_ context.Context, l *learner.Learner) error {
	t.learner = l
	return nil
}

func (t *fakeTx) UpsertCompletion(_ context.Context, c progression.LessonCompletion) error {
	t.completions[c.LessonID] = c
	return nil
}

func (t *fakeTx) CountCompleted(_ context.Context) (int, error) {
	n := 0
	for _, c := range t.completions {
		if c.Completed {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) Unlocked(_ context.Context) (map[string]bool, error) {
	out := make(map[string]bool, len(t.unlocked))
	for k, v := range t.unlocked {
		out[k] = v
	}
	return out, nil
}

func (t *fakeTx) UnlockAchievements(_ context.Context, ids []string) ([]string, error) {
	var inserted []string
	for _, id := range ids {
		if !t.unlocked[id] {
			t.unlocked[id] = true
			inserted = append(inserted, id)
		}
	}
	return inserted, nil
}

type fakeUnitOfWork struct {
	tx *fakeTx
}

func (u *fakeUnitOfWork) WithLearner(ctx context.Context, learnerID string, fn func(context.Context, progression.Tx) error) error {
	if u.tx.learner == nil || u.tx.learner.ID != learnerID {
		return shared.ErrLearnerNotFound
	}
	return fn(ctx, u.tx)
}

type fakePublisher struct {
	events []shared.Event
}

func (p *fakePublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []shared.EventType {
	var out []shared.EventType
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────────────────────

func testLearner(t *testing.T) *learner.Learner {
	t.Helper()
	email, err := shared.NewEmail("maria@example.com")
	require.NoError(t, err)
	l, err := learner.NewLearner(learner.NewLearnerParams{
		ID:           "5f0c66aa-93f5-4f8e-a3d1-2b9f3f6f7a01",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		DisplayName:  "Maria",
	})
	require.NoError(t, err)
	_, err = l.StartLanguage("es")
	require.NoError(t, err)
	return l
}

func newTestHandler(t *testing.T, l *learner.Learner) (*CompleteLessonHandler, *fakeUnitOfWork, *fakePublisher) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	uow := &fakeUnitOfWork{tx: &fakeTx{
		learner:     l,
		completions: make(map[string]progression.LessonCompletion),
		unlocked:    make(map[string]bool),
	}}
	pub := &fakePublisher{}
	h := NewCompleteLessonHandler(cat, uow, nil, pub, logger.NewNop())
	return h, uow, pub
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

// All four es-basics-1 answers correct, case and whitespace mangled.
var perfectAnswers = []string{" HOLA ", "good morning", "Gracias", "adiós"}

func TestCompleteLessonHandler_PerfectFirstLesson(t *testing.T) {
	l := testLearner(t)
	h, uow, pub := newTestHandler(t, l)

	res, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID,
		Language:  "es",
		LessonID:  "es-basics-1",
		Answers:   perfectAnswers,
		Now:       time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Correct)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 100, res.ScorePercent)
	assert.True(t, res.Passed)
	assert.Equal(t, 15, res.XPEarned, "first ever practice has no streak bonus")
	assert.Equal(t, 0, res.StreakBonus)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 5, res.Hearts)
	assert.Equal(t, 15, res.TotalXP)
	assert.Nil(t, res.NewLevel)

	ids := make(map[string]bool)
	for _, a := range res.UnlockedAchievements {
		ids[a.ID] = true
	}
	assert.True(t, ids[progression.AchievementFirstLesson])
	assert.True(t, ids[progression.AchievementPerfectLesson])

	comp := uow.tx.completions["es-basics-1"]
	assert.True(t, comp.Completed)
	assert.Equal(t, 100, comp.Score)

	assert.Contains(t, pub.types(), shared.EventLessonCompleted)
	assert.Contains(t, pub.types(), shared.EventAchievementUnlocked)
}

func TestCompleteLessonHandler_FailedAttempt(t *testing.T) {
	l := testLearner(t)
	h, uow, _ := newTestHandler(t, l)

	// Only the first answer is right: 1/4 = 25%, below the threshold.
	res, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID,
		Language:  "es",
		LessonID:  "es-basics-1",
		Answers:   []string{"hola", "wrong", "wrong", "wrong"},
	})
	require.NoError(t, err)

	assert.Equal(t, 25, res.ScorePercent)
	assert.False(t, res.Passed)
	assert.Equal(t, 7, res.XPEarned, "failed lesson yields half the reward, floored")
	assert.Equal(t, 4, res.Hearts, "a failed lesson costs one heart")

	comp := uow.tx.completions["es-basics-1"]
	assert.False(t, comp.Completed, "failed attempt is recorded but not completed")
	assert.Equal(t, 25, comp.Score)
	assert.Empty(t, res.UnlockedAchievements)
}

func TestCompleteLessonHandler_StreakExtension(t *testing.T) {
	l := testLearner(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	l.ApplyProgress(30, 2, l.Hearts, now.AddDate(0, 0, -1))
	h, _, _ := newTestHandler(t, l)

	res, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID,
		Language:  "es",
		LessonID:  "es-basics-1",
		Answers:   perfectAnswers,
		Now:       now,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Streak)
	assert.Equal(t, 6, res.StreakBonus)
	assert.Equal(t, 21, res.XPEarned, "15 reward + 6 streak bonus")

	ids := make(map[string]bool)
	for _, a := range res.UnlockedAchievements {
		ids[a.ID] = true
	}
	assert.True(t, ids[progression.AchievementStreak3])
}

func TestCompleteLessonHandler_LevelUpEmitsEvent(t *testing.T) {
	l := testLearner(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	l.ApplyProgress(90, 1, l.Hearts, now) // same day: no streak bonus
	h, _, pub := newTestHandler(t, l)

	res, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID,
		Language:  "es",
		LessonID:  "es-basics-1",
		Answers:   perfectAnswers,
		Now:       now,
	})
	require.NoError(t, err)

	require.NotNil(t, res.NewLevel)
	assert.Equal(t, 2, *res.NewLevel)
	assert.Equal(t, 105, res.TotalXP)
	assert.Contains(t, pub.types(), shared.EventLevelUp)
}

func TestCompleteLessonHandler_RepeatDoesNotReawardAchievements(t *testing.T) {
	l := testLearner(t)
	h, _, _ := newTestHandler(t, l)

	_, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID, Language: "es", LessonID: "es-basics-1", Answers: perfectAnswers,
	})
	require.NoError(t, err)

	res, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID, Language: "es", LessonID: "es-basics-1", Answers: perfectAnswers,
	})
	require.NoError(t, err)
	assert.Empty(t, res.UnlockedAchievements)
}

func TestCompleteLessonHandler_UnknownLesson(t *testing.T) {
	l := testLearner(t)
	h, _, _ := newTestHandler(t, l)

	_, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID, Language: "es", LessonID: "es-nope-1", Answers: []string{"x"},
	})
	assert.ErrorIs(t, err, shared.ErrLessonNotFound)

	_, err = h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: l.ID, Language: "xx", LessonID: "es-basics-1", Answers: []string{"x"},
	})
	assert.ErrorIs(t, err, shared.ErrLanguageNotFound)
}

func TestCompleteLessonHandler_UnknownLearner(t *testing.T) {
	l := testLearner(t)
	h, _, _ := newTestHandler(t, l)

	_, err := h.Handle(context.Background(), CompleteLessonCommand{
		LearnerID: "00000000-0000-0000-0000-000000000000",
		Language:  "es",
		LessonID:  "es-basics-1",
		Answers:   []string{"x"},
	})
	assert.ErrorIs(t, err, shared.ErrLearnerNotFound)
}

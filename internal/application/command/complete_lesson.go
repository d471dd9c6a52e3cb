// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE LESSON COMMAND
// The core write path of the progression engine: grades a submission,
// advances streak/XP/hearts, records the completion and awards achievements.
// Everything runs in a single transaction holding the learner row lock,
// so concurrent submissions for one learner are applied sequentially.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteLessonCommand contains a graded lesson submission.
type CompleteLessonCommand struct {
	// LearnerID is the internal ID of the learner.
	LearnerID string

	// Language is the course language code.
	Language string

	// LessonID identifies the lesson within the language.
	LessonID string

	// Answers is the submitted answer sequence, positional.
	Answers []string

	// Now is the submission time; defaults to time.Now when zero.
	// Only the UTC calendar date matters for streak math.
	Now time.Time
}

// Validate validates the command.
func (c CompleteLessonCommand) Validate() error {
	if c.LearnerID == "" {
		return fmt.Errorf("complete_lesson: learner_id is required: %w", shared.ErrValidation)
	}
	if c.Language == "" {
		return fmt.Errorf("complete_lesson: language is required: %w", shared.ErrValidation)
	}
	if c.LessonID == "" {
		return fmt.Errorf("complete_lesson: lesson_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// UnlockedAchievementDTO describes an achievement awarded by this submission.
type UnlockedAchievementDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CompleteLessonResult contains the outcome of a graded submission.
type CompleteLessonResult struct {
	// Correct and Total describe the grading outcome.
	Correct int `json:"correct"`
	Total   int `json:"total"`

	// ScorePercent is the whole-number percentage.
	ScorePercent int `json:"score_percent"`

	// Passed reports whether the score met the 70% threshold.
	Passed bool `json:"passed"`

	// XPEarned includes the streak bonus.
	XPEarned    int `json:"xp_earned"`
	StreakBonus int `json:"streak_bonus"`

	// NewLevel is set only when the submission caused a level-up.
	NewLevel *int `json:"new_level,omitempty"`

	// Streak and Hearts reflect the learner state after the submission.
	Streak int `json:"streak"`
	Hearts int `json:"hearts"`

	// TotalXP is the learner's cumulative XP after the submission.
	TotalXP int `json:"total_xp"`

	// UnlockedAchievements lists achievements newly awarded here.
	UnlockedAchievements []UnlockedAchievementDTO `json:"unlocked_achievements,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CompleteLessonHandler handles the CompleteLessonCommand.
type CompleteLessonHandler struct {
	catalog   *catalog.Catalog
	uow       progression.UnitOfWork
	cache     learner.Cache
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewCompleteLessonHandler creates the handler.
func NewCompleteLessonHandler(
	cat *catalog.Catalog,
	uow progression.UnitOfWork,
	cache learner.Cache,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *CompleteLessonHandler {
	return &CompleteLessonHandler{
		catalog:   cat,
		uow:       uow,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Handle grades the submission and applies it to the learner's progress.
func (h *CompleteLessonHandler) Handle(ctx context.Context, cmd CompleteLessonCommand) (*CompleteLessonResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	langCode := shared.LanguageCode(cmd.Language)
	if _, ok := h.catalog.Language(langCode); !ok {
		return nil, shared.ErrLanguageNotFound
	}

	lesson, ok := h.catalog.Lesson(langCode, cmd.LessonID)
	if !ok {
		return nil, shared.ErrLessonNotFound
	}

	score, err := progression.Score(gradedItems(lesson), cmd.Answers)
	if err != nil {
		return nil, fmt.Errorf("complete_lesson: %w", err)
	}

	var (
		result CompleteLessonResult
		events []shared.Event
	)

	err = h.uow.WithLearner(ctx, cmd.LearnerID, func(ctx context.Context, tx progression.Tx) error {
		l := tx.Learner()
		prevStreak := l.Streak

		update := progression.Advance(progression.PracticeState{
			XP:               l.XP,
			Streak:           l.Streak,
			Hearts:           l.Hearts,
			LastPracticeDate: l.LastPracticeDate,
		}, score.Passed, lesson.XPReward, now)

		l.ApplyProgress(update.NewXP, update.NewStreak, update.NewHearts, update.PracticeDate)
		if err := tx.UpdateLearner(ctx, l); err != nil {
			return err
		}

		if err := tx.UpsertCompletion(ctx, progression.LessonCompletion{
			LearnerID:   l.ID,
			LessonID:    lesson.ID,
			Language:    langCode,
			Completed:   score.Passed,
			Score:       score.Percent.Int(),
			CompletedAt: now,
		}); err != nil {
			return err
		}

		completedCount, err := tx.CountCompleted(ctx)
		if err != nil {
			return err
		}

		unlocked, err := tx.Unlocked(ctx)
		if err != nil {
			return err
		}

		earned := progression.EvaluateLesson(progression.Metrics{
			CompletedLessons: completedCount,
			Streak:           update.NewStreak,
			TotalXP:          update.NewXP.Int(),
			Level:            update.NewLevel.Int(),
			PerfectLesson:    score.IsPerfect(),
		}, unlocked)

		newlyUnlocked, err := tx.UnlockAchievements(ctx, earned)
		if err != nil {
			return err
		}

		result = CompleteLessonResult{
			Correct:      score.Correct,
			Total:        score.Total,
			ScorePercent: score.Percent.Int(),
			Passed:       score.Passed,
			XPEarned:     update.XPEarned,
			StreakBonus:  update.StreakBonus,
			Streak:       update.NewStreak,
			Hearts:       update.NewHearts.Int(),
			TotalXP:      update.NewXP.Int(),
		}
		if update.LeveledUp {
			lvl := update.NewLevel.Int()
			result.NewLevel = &lvl
		}

		for _, id := range newlyUnlocked {
			def, _ := h.catalog.Achievement(id)
			result.UnlockedAchievements = append(result.UnlockedAchievements, UnlockedAchievementDTO{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				Icon:        def.Icon,
			})
			events = append(events, shared.NewAchievementUnlockedEvent(l.ID, def.ID, def.Name))
		}

		events = append(events, shared.NewLessonCompletedEvent(
			l.ID, lesson.ID, langCode.String(),
			score.Percent.Int(), score.Passed, update.XPEarned, update.StreakBonus,
		))
		if update.LeveledUp {
			events = append(events, shared.NewLevelUpEvent(l.ID, update.OldLevel.Int(), update.NewLevel.Int(), update.NewXP.Int()))
		}
		if update.StreakBroken {
			events = append(events, shared.NewDailyStreakBrokenEvent(l.ID, prevStreak, update.DaysMissed))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The transaction is committed: publish events and drop stale cache.
	for _, event := range events {
		if err := h.publisher.Publish(event); err != nil {
			h.log.Warn("failed to publish event",
				logger.String("event_type", string(event.EventType())),
				logger.Err(err),
			)
		}
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, cmd.LearnerID); err != nil {
			h.log.Warn("failed to invalidate learner cache",
				logger.LearnerID(cmd.LearnerID), logger.Err(err))
		}
	}

	h.log.Info("lesson completed",
		logger.LearnerID(cmd.LearnerID),
		logger.LessonID(cmd.LessonID),
		logger.ScorePercent(result.ScorePercent),
		logger.XPAmount(result.XPEarned),
	)

	return &result, nil
}

// gradedItems converts catalog content to the scoring engine's input.
func gradedItems(lesson catalog.Lesson) []progression.GradedItem {
	items := make([]progression.GradedItem, 0, len(lesson.Content))
	for _, item := range lesson.Content {
		items = append(items, progression.GradedItem{
			Prompt:        item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
		})
	}
	return items
}

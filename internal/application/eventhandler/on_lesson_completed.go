// Package eventhandler содержит обработчики доменных событий.
package eventhandler

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON LESSON COMPLETED HANDLER
// Держит рейтинг в Redis актуальным между полными перестройками:
// после каждого урока обновляет XP ученика в ZSET.
// ═══════════════════════════════════════════════════════════════════════════

// OnLessonCompletedHandler обрабатывает событие завершения урока.
type OnLessonCompletedHandler struct {
	learners    learner.Repository
	leaderboard learner.LeaderboardCache
	log         *logger.Logger
}

// NewOnLessonCompletedHandler создаёт новый обработчик.
func NewOnLessonCompletedHandler(
	learners learner.Repository,
	leaderboard learner.LeaderboardCache,
	log *logger.Logger,
) *OnLessonCompletedHandler {
	return &OnLessonCompletedHandler{learners: learners, leaderboard: leaderboard, log: log}
}

// Handle обновляет строку ученика в рейтинге.
// Реализует shared.EventHandler.
func (h *OnLessonCompletedHandler) Handle(event shared.Event) error {
	ctx := context.Background()

	completed, ok := event.(shared.LessonCompletedEvent)
	if !ok {
		h.log.Warn("received unexpected event",
			logger.String("event_type", string(event.EventType())))
		return nil
	}

	if h.leaderboard == nil {
		return nil
	}

	l, err := h.learners.GetByID(ctx, completed.LearnerID)
	if err != nil {
		return fmt.Errorf("get learner: %w", err)
	}

	if err := h.leaderboard.UpdateScore(ctx, learner.LeaderboardEntry{
		LearnerID:   l.ID,
		DisplayName: l.DisplayName,
		XP:          l.XP.Int(),
		Level:       l.Level().Int(),
		Streak:      l.Streak,
	}); err != nil {
		return fmt.Errorf("update leaderboard score: %w", err)
	}

	h.log.Debug("leaderboard score updated",
		logger.LearnerID(l.ID),
		logger.XPAmount(l.XP.Int()),
	)

	return nil
}

// EventType возвращает тип события, который обрабатывает этот handler.
func (h *OnLessonCompletedHandler) EventType() shared.EventType {
	return shared.EventLessonCompleted
}

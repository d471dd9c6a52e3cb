package eventhandler

import (
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON ACHIEVEMENT UNLOCKED HANDLER
// ═══════════════════════════════════════════════════════════════════════════

// OnAchievementUnlockedHandler логирует разблокировку достижения.
type OnAchievementUnlockedHandler struct {
	log *logger.Logger
}

// NewOnAchievementUnlockedHandler создаёт новый обработчик.
func NewOnAchievementUnlockedHandler(log *logger.Logger) *OnAchievementUnlockedHandler {
	return &OnAchievementUnlockedHandler{log: log}
}

// Handle реализует shared.EventHandler.
func (h *OnAchievementUnlockedHandler) Handle(event shared.Event) error {
	unlocked, ok := event.(shared.AchievementUnlockedEvent)
	if !ok {
		return nil
	}

	h.log.Info("achievement unlocked",
		logger.LearnerID(unlocked.LearnerID),
		logger.String("achievement_id", unlocked.AchievementID),
		logger.String("title", unlocked.Title),
	)

	return nil
}

// EventType возвращает тип события, который обрабатывает этот handler.
func (h *OnAchievementUnlockedHandler) EventType() shared.EventType {
	return shared.EventAchievementUnlocked
}

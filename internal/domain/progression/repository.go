package progression

import (
	"context"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE TYPES
// ══════════════════════════════════════════════════════════════════════════════

// LessonCompletion - запись о последней попытке прохождения урока.
// Повторная попытка перезаписывает предыдущую: считается последний результат.
type LessonCompletion struct {
	// LearnerID - идентификатор ученика.
	LearnerID string

	// LessonID - идентификатор урока.
	LessonID string

	// Language - код языка урока.
	Language shared.LanguageCode

	// Completed - пройден ли урок в последней попытке.
	Completed bool

	// Score - процент последней попытки.
	Score int

	// CompletedAt - время последней попытки.
	CompletedAt time.Time
}

// UnlockedAchievement - разблокированное достижение ученика.
type UnlockedAchievement struct {
	// LearnerID - идентификатор ученика.
	LearnerID string

	// AchievementID - идентификатор достижения.
	AchievementID string

	// UnlockedAt - когда разблокировано.
	UnlockedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// CompletionRepository определяет операции чтения завершений уроков.
type CompletionRepository interface {
	// GetByLearnerAndLanguage возвращает завершения ученика по языку.
	GetByLearnerAndLanguage(ctx context.Context, learnerID string, language shared.LanguageCode) ([]LessonCompletion, error)

	// CountCompletedByLanguage возвращает количество пройденных уроков языка.
	CountCompletedByLanguage(ctx context.Context, learnerID string, language shared.LanguageCode) (int, error)
}

// AchievementRepository определяет операции чтения достижений.
type AchievementRepository interface {
	// GetUnlocked возвращает все разблокированные достижения ученика.
	GetUnlocked(ctx context.Context, learnerID string) ([]UnlockedAchievement, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// Все мутации прогресса одного ученика выполняются в одной транзакции
// с блокировкой строки ученика (SELECT ... FOR UPDATE). Это гарантирует
// последовательное применение конкурентных завершений уроков.
// ══════════════════════════════════════════════════════════════════════════════

// Tx - операции, доступные внутри транзакции прогресса.
type Tx interface {
	// Learner возвращает заблокированного ученика.
	Learner() *learner.Learner

	// UpdateLearner сохраняет изменённого ученика.
	UpdateLearner(ctx context.Context, l *learner.Learner) error

	// UpsertCompletion вставляет или перезаписывает завершение урока.
	UpsertCompletion(ctx context.Context, c LessonCompletion) error

	// CountCompleted возвращает количество пройденных уроков ученика
	// по всем языкам (для достижения за первый урок).
	CountCompleted(ctx context.Context) (int, error)

	// Unlocked возвращает множество уже разблокированных достижений.
	Unlocked(ctx context.Context) (map[string]bool, error)

	// UnlockAchievements разблокирует достижения идемпотентно
	// и возвращает только фактически новые.
	UnlockAchievements(ctx context.Context, ids []string) ([]string, error)
}

// UnitOfWork открывает транзакцию прогресса для одного ученика.
type UnitOfWork interface {
	// WithLearner выполняет fn в транзакции, удерживая блокировку
	// строки ученика. Возвращает shared.ErrLearnerNotFound, если
	// ученик не существует.
	WithLearner(ctx context.Context, learnerID string, fn func(ctx context.Context, tx Tx) error) error
}

package learner

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет основные операции для учеников.
type Repository interface {
	// Create создаёт нового ученика.
	// Возвращает shared.ErrEmailTaken, если email уже занят.
	Create(ctx context.Context, learner *Learner) error

	// GetByID возвращает ученика по внутреннему ID.
	// Возвращает shared.ErrLearnerNotFound, если ученик не найден.
	GetByID(ctx context.Context, id string) (*Learner, error)

	// GetByEmail возвращает ученика по email.
	// Возвращает shared.ErrLearnerNotFound, если ученик не найден.
	GetByEmail(ctx context.Context, email string) (*Learner, error)

	// Update обновляет данные ученика.
	// Возвращает shared.ErrLearnerNotFound, если ученик не найден.
	Update(ctx context.Context, learner *Learner) error

	// ExistsByEmail проверяет, занят ли email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetTopByXP возвращает учеников, отсортированных по XP (для лидерборда).
	GetTopByXP(ctx context.Context, limit int) ([]*Learner, error)

	// Count возвращает общее количество учеников.
	Count(ctx context.Context) (int, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INTERFACE
// Для кеширования часто запрашиваемых данных.
// ══════════════════════════════════════════════════════════════════════════════

// Cache определяет операции кеширования данных учеников.
type Cache interface {
	// Get получает ученика из кеша.
	Get(ctx context.Context, learnerID string) (*Learner, error)

	// Set сохраняет ученика в кеш.
	Set(ctx context.Context, learner *Learner, ttl time.Duration) error

	// Invalidate удаляет все записи ученика из кеша.
	Invalidate(ctx context.Context, learnerID string) error
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD CACHE
// Отсортированный рейтинг учеников по XP. Реализация хранит его
// в Redis ZSET и периодически перестраивается фоновым воркером.
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardEntry - одна строка рейтинга.
type LeaderboardEntry struct {
	LearnerID   string
	DisplayName string
	XP          int
	Level       int
	Streak      int
}

// LeaderboardCache определяет операции с кешем рейтинга.
type LeaderboardCache interface {
	// Top возвращает первые limit строк рейтинга по убыванию XP.
	// Возвращает shared.ErrCacheUnavailable, если рейтинг не построен.
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// UpdateScore обновляет XP одного ученика в рейтинге.
	UpdateScore(ctx context.Context, entry LeaderboardEntry) error

	// Rebuild атомарно заменяет рейтинг целиком.
	Rebuild(ctx context.Context, entries []LeaderboardEntry) error
}

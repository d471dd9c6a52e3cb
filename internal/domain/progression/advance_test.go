package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

var practiceDay = time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return practiceDay.AddDate(0, 0, -n)
}

func TestAdvance_FirstEverPractice(t *testing.T) {
	update := Advance(PracticeState{XP: 0, Streak: 0, Hearts: 5}, true, 15, practiceDay)

	assert.Equal(t, 1, update.NewStreak)
	assert.Equal(t, 0, update.StreakBonus)
	assert.Equal(t, 15, update.XPEarned)
	assert.Equal(t, shared.XP(15), update.NewXP)
	assert.False(t, update.StreakBroken)
}

func TestAdvance_SameDayKeepsStreak(t *testing.T) {
	state := PracticeState{XP: 50, Streak: 4, Hearts: 5, LastPracticeDate: daysAgo(0)}
	update := Advance(state, true, 15, practiceDay)

	assert.Equal(t, 4, update.NewStreak)
	assert.Equal(t, 0, update.StreakBonus)
	assert.Equal(t, 15, update.XPEarned)
}

func TestAdvance_NextDayExtendsStreak(t *testing.T) {
	// Вчерашняя практика, серия 2 -> серия 3, бонус min(3*2, 20) = 6.
	state := PracticeState{XP: 50, Streak: 2, Hearts: 5, LastPracticeDate: daysAgo(1)}
	update := Advance(state, true, 15, practiceDay)

	assert.Equal(t, 3, update.NewStreak)
	assert.Equal(t, 6, update.StreakBonus)
	assert.Equal(t, 21, update.XPEarned)
	assert.Equal(t, shared.XP(71), update.NewXP)
}

func TestAdvance_StreakBonusCapped(t *testing.T) {
	state := PracticeState{XP: 0, Streak: 14, Hearts: 5, LastPracticeDate: daysAgo(1)}
	update := Advance(state, true, 10, practiceDay)

	assert.Equal(t, 15, update.NewStreak)
	assert.Equal(t, MaxStreakBonus, update.StreakBonus)
	assert.Equal(t, 10+MaxStreakBonus, update.XPEarned)
}

func TestAdvance_MissedDaysResetStreak(t *testing.T) {
	// Практика 3 дня назад, серия 10 -> сброс в 1, без бонуса.
	state := PracticeState{XP: 200, Streak: 10, Hearts: 5, LastPracticeDate: daysAgo(3)}
	update := Advance(state, true, 15, practiceDay)

	assert.Equal(t, 1, update.NewStreak)
	assert.Equal(t, 0, update.StreakBonus)
	assert.True(t, update.StreakBroken)
	assert.Equal(t, 2, update.DaysMissed)
}

func TestAdvance_FailedLesson(t *testing.T) {
	// Провал: половина награды (floor), минус одно сердце.
	state := PracticeState{XP: 30, Streak: 1, Hearts: 3, LastPracticeDate: daysAgo(0)}
	update := Advance(state, false, 15, practiceDay)

	assert.Equal(t, 7, update.XPEarned)
	assert.Equal(t, shared.XP(37), update.NewXP)
	assert.Equal(t, shared.Hearts(2), update.NewHearts)
}

func TestAdvance_FailedLessonAtZeroHearts(t *testing.T) {
	state := PracticeState{XP: 30, Streak: 1, Hearts: 0, LastPracticeDate: daysAgo(0)}
	update := Advance(state, false, 15, practiceDay)

	assert.Equal(t, shared.Hearts(0), update.NewHearts)
	// XP всё равно начисляется: ноль сердец не блокирует практику.
	assert.Equal(t, 7, update.XPEarned)
}

func TestAdvance_PassedLessonKeepsHearts(t *testing.T) {
	state := PracticeState{XP: 0, Streak: 0, Hearts: 4}
	update := Advance(state, true, 20, practiceDay)

	assert.Equal(t, shared.Hearts(4), update.NewHearts)
}

func TestAdvance_LevelUp(t *testing.T) {
	// XP 90 + 15 = 105: уровень 1 -> 2.
	state := PracticeState{XP: 90, Streak: 1, Hearts: 5, LastPracticeDate: daysAgo(0)}
	update := Advance(state, true, 15, practiceDay)

	assert.Equal(t, shared.XP(105), update.NewXP)
	assert.Equal(t, shared.Level(1), update.OldLevel)
	assert.Equal(t, shared.Level(2), update.NewLevel)
	assert.True(t, update.LeveledUp)
}

func TestAdvance_NoLevelUp(t *testing.T) {
	state := PracticeState{XP: 10, Streak: 1, Hearts: 5, LastPracticeDate: daysAgo(0)}
	update := Advance(state, true, 15, practiceDay)

	assert.False(t, update.LeveledUp)
	assert.Equal(t, shared.Level(1), update.NewLevel)
}

func TestAdvance_PracticeDateTruncated(t *testing.T) {
	update := Advance(PracticeState{Hearts: 5}, true, 10, practiceDay)
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), update.PracticeDate)
}

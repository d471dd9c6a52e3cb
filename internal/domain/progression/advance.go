package progression

import (
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK & LEVELING ENGINE
// Правила:
//   - первая практика: серия = 1, без бонуса;
//   - тот же день: серия не меняется, без бонуса;
//   - следующий день: серия +1, бонус = min(серия*2, 20) XP;
//   - пропуск дней: серия сбрасывается в 1, без бонуса.
// ══════════════════════════════════════════════════════════════════════════════

// MaxStreakBonus - максимальный дневной бонус XP за серию.
const MaxStreakBonus = 20

// PracticeState - снимок прогресса ученика перед прохождением урока.
type PracticeState struct {
	// XP - суммарный XP до урока.
	XP shared.XP

	// Streak - серия дней до урока.
	Streak int

	// Hearts - сердца до урока.
	Hearts shared.Hearts

	// LastPracticeDate - дата последней практики (нулевая, если её не было).
	LastPracticeDate time.Time
}

// ProgressUpdate - вычисленный результат применения урока к прогрессу.
type ProgressUpdate struct {
	// NewXP - суммарный XP после урока.
	NewXP shared.XP

	// NewStreak - серия дней после урока.
	NewStreak int

	// NewHearts - сердца после урока.
	NewHearts shared.Hearts

	// XPEarned - заработано XP за урок, включая бонус за серию.
	XPEarned int

	// StreakBonus - бонусная часть XPEarned.
	StreakBonus int

	// OldLevel, NewLevel - уровень до и после.
	OldLevel shared.Level
	NewLevel shared.Level

	// LeveledUp - поднялся ли уровень.
	LeveledUp bool

	// StreakBroken - была ли сброшена ненулевая серия.
	StreakBroken bool

	// DaysMissed - сколько дней пропущено при сбросе серии.
	DaysMissed int

	// PracticeDate - дата практики (полночь UTC).
	PracticeDate time.Time
}

// Advance применяет результат урока к прогрессу ученика.
// passed и xpReward берутся из результата Score и каталога урока,
// now - момент прохождения (важна только календарная дата UTC).
func Advance(state PracticeState, passed bool, xpReward int, now time.Time) ProgressUpdate {
	today := timeutil.DateOnly(now)

	// XP за урок: полная награда за прохождение, половина за провал.
	baseXP := xpReward
	if !passed {
		baseXP = xpReward / 2
	}

	newStreak := state.Streak
	streakBonus := 0
	streakBroken := false
	daysMissed := 0

	if state.LastPracticeDate.IsZero() {
		newStreak = 1
	} else {
		daysDiff := timeutil.DaysBetween(state.LastPracticeDate, today)
		switch {
		case daysDiff == 1:
			newStreak++
			streakBonus = newStreak * 2
			if streakBonus > MaxStreakBonus {
				streakBonus = MaxStreakBonus
			}
		case daysDiff > 1:
			streakBroken = state.Streak > 0
			daysMissed = daysDiff - 1
			newStreak = 1
		}
		// Тот же день: серия не меняется.
	}

	xpEarned := baseXP + streakBonus
	newXP := state.XP.Add(xpEarned)

	oldLevel := state.XP.Level()
	newLevel := newXP.Level()

	newHearts := state.Hearts
	if !passed {
		newHearts = newHearts.Lose()
	}

	return ProgressUpdate{
		NewXP:        newXP,
		NewStreak:    newStreak,
		NewHearts:    newHearts,
		XPEarned:     xpEarned,
		StreakBonus:  streakBonus,
		OldLevel:     oldLevel,
		NewLevel:     newLevel,
		LeveledUp:    newLevel > oldLevel,
		StreakBroken: streakBroken,
		DaysMissed:   daysMissed,
		PracticeDate: today,
	}
}

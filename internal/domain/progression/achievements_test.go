package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateLesson_FirstLesson(t *testing.T) {
	earned := EvaluateLesson(Metrics{CompletedLessons: 1, TotalXP: 15, Level: 1, Streak: 1}, nil)
	assert.Equal(t, []string{AchievementFirstLesson}, earned)
}

func TestEvaluateLesson_FirstLessonOnlyOnce(t *testing.T) {
	// Второй пройденный урок уже не "первый".
	earned := EvaluateLesson(Metrics{CompletedLessons: 2, TotalXP: 30, Level: 1, Streak: 1}, nil)
	assert.Empty(t, earned)
}

func TestEvaluateLesson_StreakThresholds(t *testing.T) {
	earned := EvaluateLesson(Metrics{CompletedLessons: 5, Streak: 7, TotalXP: 80, Level: 1}, nil)
	assert.Contains(t, earned, AchievementStreak3)
	assert.Contains(t, earned, AchievementStreak7)
	assert.NotContains(t, earned, AchievementStreak30)
}

func TestEvaluateLesson_Idempotent(t *testing.T) {
	unlocked := map[string]bool{
		AchievementStreak3: true,
		AchievementXP100:   true,
	}
	earned := EvaluateLesson(Metrics{CompletedLessons: 3, Streak: 3, TotalXP: 120, Level: 2}, unlocked)
	assert.Empty(t, earned)
}

func TestEvaluateLesson_XPAndLevel(t *testing.T) {
	earned := EvaluateLesson(Metrics{CompletedLessons: 30, Streak: 1, TotalXP: 1050, Level: 11}, nil)
	assert.Contains(t, earned, AchievementXP100)
	assert.Contains(t, earned, AchievementXP500)
	assert.Contains(t, earned, AchievementXP1000)
	assert.Contains(t, earned, AchievementLevel5)
	assert.Contains(t, earned, AchievementLevel10)
}

func TestEvaluateLesson_PerfectLesson(t *testing.T) {
	earned := EvaluateLesson(Metrics{CompletedLessons: 2, Streak: 1, TotalXP: 30, Level: 1, PerfectLesson: true}, nil)
	assert.Equal(t, []string{AchievementPerfectLesson}, earned)

	earned = EvaluateLesson(Metrics{CompletedLessons: 2, Streak: 1, TotalXP: 30, Level: 1, PerfectLesson: false}, nil)
	assert.Empty(t, earned)
}

func TestEvaluateLesson_FailedAttemptStillCountsThresholds(t *testing.T) {
	// CompletedLessons считает только пройденные, но XP-пороги
	// могут сработать и после провала (половинная награда).
	earned := EvaluateLesson(Metrics{CompletedLessons: 0, Streak: 1, TotalXP: 100, Level: 2}, nil)
	assert.Equal(t, []string{AchievementXP100}, earned)
}

func TestEvaluateLanguageStart(t *testing.T) {
	assert.Empty(t, EvaluateLanguageStart(2, nil))
	assert.Equal(t, []string{AchievementMultiLanguage}, EvaluateLanguageStart(3, nil))
	assert.Equal(t, []string{AchievementMultiLanguage}, EvaluateLanguageStart(5, nil))
	assert.Empty(t, EvaluateLanguageStart(4, map[string]bool{AchievementMultiLanguage: true}))
}

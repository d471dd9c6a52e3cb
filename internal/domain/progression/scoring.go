// Package progression содержит чистое ядро движка прогресса Stratos:
// подсчёт очков за урок, серии дней, начисление XP и уровней,
// выдачу достижений и открытие уроков. Пакет детерминирован -
// текущее время всегда передаётся параметром.
package progression

import (
	"strings"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCORING ENGINE
// ══════════════════════════════════════════════════════════════════════════════

// GradedItem - одно задание урока с ожидаемым ответом.
type GradedItem struct {
	// Prompt - текст задания.
	Prompt string

	// Options - варианты ответа (для заданий с выбором).
	Options []string

	// CorrectAnswer - ожидаемый ответ.
	CorrectAnswer string
}

// ScoreResult - результат проверки присланных ответов.
type ScoreResult struct {
	// Correct - количество правильных ответов.
	Correct int

	// Total - общее количество заданий в уроке.
	Total int

	// Percent - итоговый процент (целочисленное округление вниз).
	Percent shared.ScorePercent

	// Passed - пройден ли урок (порог 70%).
	Passed bool
}

// IsPerfect возвращает true при стопроцентном результате.
func (r ScoreResult) IsPerfect() bool {
	return r.Percent.IsPerfect()
}

// normalizeAnswer приводит ответ к канонической форме для сравнения.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Score проверяет присланные ответы против заданий урока.
// Ответы сверяются позиционно: лишние ответы игнорируются,
// недостающие считаются неправильными.
func Score(items []GradedItem, answers []string) (ScoreResult, error) {
	if len(items) == 0 {
		return ScoreResult{}, shared.ErrEmptyLesson
	}

	correct := 0
	for i, answer := range answers {
		if i >= len(items) {
			break
		}
		if normalizeAnswer(answer) == normalizeAnswer(items[i].CorrectAnswer) {
			correct++
		}
	}

	total := len(items)
	percent := shared.ScorePercent(correct * 100 / total)

	return ScoreResult{
		Correct: correct,
		Total:   total,
		Percent: percent,
		Passed:  percent.Passed(),
	}, nil
}

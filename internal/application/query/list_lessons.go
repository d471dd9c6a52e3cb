// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST LESSONS QUERY
// Returns the lesson track for a language with per-learner unlock state.
// ══════════════════════════════════════════════════════════════════════════════

// ListLessonsQuery contains parameters for the lesson track.
type ListLessonsQuery struct {
	// LearnerID - чей прогресс накладываем на список.
	LearnerID string

	// Language - код языка.
	Language string
}

// Validate validates the query.
func (q ListLessonsQuery) Validate() error {
	if q.LearnerID == "" {
		return fmt.Errorf("list_lessons: learner_id is required: %w", shared.ErrValidation)
	}
	if q.Language == "" {
		return fmt.Errorf("list_lessons: language is required: %w", shared.ErrValidation)
	}
	return nil
}

// LessonSummaryDTO is one row of the lesson track.
type LessonSummaryDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Order         int    `json:"order"`
	XPReward      int    `json:"xp_reward"`
	ExerciseCount int    `json:"exercise_count"`
	Completed     bool   `json:"completed"`
	Score         int    `json:"score"`
	Locked        bool   `json:"locked"`
}

// ListLessonsResult contains the lesson track.
type ListLessonsResult struct {
	Language string             `json:"language"`
	Lessons  []LessonSummaryDTO `json:"lessons"`
}

// ListLessonsHandler handles the ListLessonsQuery.
type ListLessonsHandler struct {
	catalog     *catalog.Catalog
	completions progression.CompletionRepository
}

// NewListLessonsHandler creates the handler.
func NewListLessonsHandler(cat *catalog.Catalog, completions progression.CompletionRepository) *ListLessonsHandler {
	return &ListLessonsHandler{catalog: cat, completions: completions}
}

// Handle returns the lesson track with unlock and completion state.
func (h *ListLessonsHandler) Handle(ctx context.Context, q ListLessonsQuery) (*ListLessonsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	code := shared.LanguageCode(q.Language)
	if _, ok := h.catalog.Language(code); !ok {
		return nil, shared.ErrLanguageNotFound
	}
	lessons := h.catalog.Lessons(code)

	records, err := h.completions.GetByLearnerAndLanguage(ctx, q.LearnerID, code)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(records))
	scores := make(map[string]int, len(records))
	for _, r := range records {
		completed[r.LessonID] = r.Completed
		scores[r.LessonID] = r.Score
	}

	refs := make([]progression.LessonRef, 0, len(lessons))
	for _, l := range lessons {
		refs = append(refs, progression.LessonRef{ID: l.ID, Order: l.Order})
	}
	statuses := progression.DeriveUnlocks(refs, completed, scores)

	byID := make(map[string]progression.LessonStatus, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}

	result := &ListLessonsResult{Language: q.Language}
	for _, l := range lessons {
		s := byID[l.ID]
		result.Lessons = append(result.Lessons, LessonSummaryDTO{
			ID:            l.ID,
			Title:         l.Title,
			Description:   l.Description,
			Order:         l.Order,
			XPReward:      l.XPReward,
			ExerciseCount: len(l.Content),
			Completed:     s.Completed,
			Score:         s.Score,
			Locked:        s.Locked,
		})
	}

	return result, nil
}

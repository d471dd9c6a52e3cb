package query

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST LANGUAGES QUERY
// Returns the course list with per-learner completion percentage.
// ══════════════════════════════════════════════════════════════════════════════

// ListLanguagesQuery contains parameters for the course list.
type ListLanguagesQuery struct {
	LearnerID string
}

// Validate validates the query.
func (q ListLanguagesQuery) Validate() error {
	if q.LearnerID == "" {
		return fmt.Errorf("list_languages: learner_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// LanguageDTO is one course in the list.
type LanguageDTO struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Flag         string `json:"flag"`
	LessonsCount int    `json:"lessons_count"`

	// Started reports whether the learner has added this course.
	Started bool `json:"started"`

	// Progress is the completed share in whole percent, floored.
	Progress int `json:"progress"`
}

// ListLanguagesHandler handles the ListLanguagesQuery.
type ListLanguagesHandler struct {
	catalog     *catalog.Catalog
	learners    learner.Repository
	completions progression.CompletionRepository
}

// NewListLanguagesHandler creates the handler.
func NewListLanguagesHandler(
	cat *catalog.Catalog,
	learners learner.Repository,
	completions progression.CompletionRepository,
) *ListLanguagesHandler {
	return &ListLanguagesHandler{catalog: cat, learners: learners, completions: completions}
}

// Handle returns all courses with the learner's progress in each.
func (h *ListLanguagesHandler) Handle(ctx context.Context, q ListLanguagesQuery) ([]LanguageDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	l, err := h.learners.GetByID(ctx, q.LearnerID)
	if err != nil {
		return nil, err
	}

	var out []LanguageDTO
	for _, lang := range h.catalog.Languages() {
		total := len(h.catalog.Lessons(lang.Code))

		dto := LanguageDTO{
			Code:         lang.Code.String(),
			Name:         lang.Name,
			Flag:         lang.Flag,
			LessonsCount: total,
			Started:      l.HasStarted(lang.Code),
		}

		if dto.Started && total > 0 {
			done, err := h.completions.CountCompletedByLanguage(ctx, q.LearnerID, lang.Code)
			if err != nil {
				return nil, err
			}
			dto.Progress = done * 100 / total
		}

		out = append(out, dto)
	}

	return out, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LESSON QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetLessonQuery identifies one lesson.
type GetLessonQuery struct {
	Language string
	LessonID string
}

// Validate validates the query.
func (q GetLessonQuery) Validate() error {
	if q.Language == "" {
		return fmt.Errorf("get_lesson: language is required: %w", shared.ErrValidation)
	}
	if q.LessonID == "" {
		return fmt.Errorf("get_lesson: lesson_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// ExerciseDTO is one exercise within a lesson.
type ExerciseDTO struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	VoiceURL      string   `json:"voice_url,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

// LessonDetailDTO is the full lesson with its exercises.
type LessonDetailDTO struct {
	ID          string        `json:"id"`
	Language    string        `json:"language"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Order       int           `json:"order"`
	XPReward    int           `json:"xp_reward"`
	Exercises   []ExerciseDTO `json:"exercises"`
}

// GetLessonHandler handles the GetLessonQuery.
type GetLessonHandler struct {
	catalog *catalog.Catalog
}

// NewGetLessonHandler creates the handler.
func NewGetLessonHandler(cat *catalog.Catalog) *GetLessonHandler {
	return &GetLessonHandler{catalog: cat}
}

// Handle returns the full lesson content.
func (h *GetLessonHandler) Handle(_ context.Context, q GetLessonQuery) (*LessonDetailDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	code := shared.LanguageCode(q.Language)
	lesson, ok := h.catalog.Lesson(code, q.LessonID)
	if !ok {
		return nil, shared.ErrLessonNotFound
	}

	dto := &LessonDetailDTO{
		ID:          lesson.ID,
		Language:    lesson.Language.String(),
		Title:       lesson.Title,
		Description: lesson.Description,
		Order:       lesson.Order,
		XPReward:    lesson.XPReward,
	}
	for _, item := range lesson.Content {
		dto.Exercises = append(dto.Exercises, ExerciseDTO{
			Type:          string(item.Type),
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			VoiceURL:      item.VoiceURL,
			Hint:          item.Hint,
		})
	}

	return dto, nil
}

package query

import (
	"context"
	"fmt"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST ACHIEVEMENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListAchievementsQuery contains parameters for the achievement list.
type ListAchievementsQuery struct {
	LearnerID string
}

// Validate validates the query.
func (q ListAchievementsQuery) Validate() error {
	if q.LearnerID == "" {
		return fmt.Errorf("list_achievements: learner_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// AchievementDTO is one achievement with the learner's unlock state.
type AchievementDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ListAchievementsHandler handles the ListAchievementsQuery.
type ListAchievementsHandler struct {
	catalog      *catalog.Catalog
	achievements progression.AchievementRepository
}

// NewListAchievementsHandler creates the handler.
func NewListAchievementsHandler(cat *catalog.Catalog, achievements progression.AchievementRepository) *ListAchievementsHandler {
	return &ListAchievementsHandler{catalog: cat, achievements: achievements}
}

// Handle returns the full achievement catalog with unlock flags.
func (h *ListAchievementsHandler) Handle(ctx context.Context, q ListAchievementsQuery) ([]AchievementDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	unlocked, err := h.achievements.GetUnlocked(ctx, q.LearnerID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, u := range unlocked {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	var out []AchievementDTO
	for _, def := range h.catalog.Achievements() {
		dto := AchievementDTO{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
		}
		if at, ok := unlockedAt[def.ID]; ok {
			dto.Earned = true
			t := at
			dto.UnlockedAt = &t
		}
		out = append(out, dto)
	}

	return out, nil
}

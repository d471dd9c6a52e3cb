package query

import (
	"context"
	"fmt"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
	"github.com/stratos-app/stratos-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// Cache-aside read of one learner's profile.
// ══════════════════════════════════════════════════════════════════════════════

// profileCacheTTL bounds staleness of the cached profile.
const profileCacheTTL = 5 * time.Minute

// GetProfileQuery identifies the learner.
type GetProfileQuery struct {
	LearnerID string
}

// Validate validates the query.
func (q GetProfileQuery) Validate() error {
	if q.LearnerID == "" {
		return fmt.Errorf("get_profile: learner_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// ProfileDTO is the learner's profile as exposed over the API.
type ProfileDTO struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	DisplayName       string   `json:"display_name"`
	XP                int      `json:"xp"`
	Level             int      `json:"level"`
	XPIntoLevel       int      `json:"xp_into_level"`
	Streak            int      `json:"streak"`
	Hearts            int      `json:"hearts"`
	CurrentLanguage   string   `json:"current_language,omitempty"`
	LanguagesLearning []string `json:"languages_learning"`
	LastPracticeDate  string   `json:"last_practice_date,omitempty"`
	CreatedAt         string   `json:"created_at"`
}

// GetProfileHandler handles the GetProfileQuery.
type GetProfileHandler struct {
	learners learner.Repository
	cache    learner.Cache
	log      *logger.Logger
}

// NewGetProfileHandler creates the handler.
func NewGetProfileHandler(learners learner.Repository, cache learner.Cache, log *logger.Logger) *GetProfileHandler {
	return &GetProfileHandler{learners: learners, cache: cache, log: log}
}

// Handle returns the learner's profile, preferring the cache.
func (h *GetProfileHandler) Handle(ctx context.Context, q GetProfileQuery) (*ProfileDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, q.LearnerID); err == nil && cached != nil {
			return profileDTO(cached), nil
		}
	}

	l, err := h.learners.GetByID(ctx, q.LearnerID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, l, profileCacheTTL); err != nil {
			h.log.Warn("failed to cache learner profile",
				logger.LearnerID(q.LearnerID), logger.Err(err))
		}
	}

	return profileDTO(l), nil
}

func profileDTO(l *learner.Learner) *ProfileDTO {
	dto := &ProfileDTO{
		ID:              l.ID,
		Email:           l.Email.String(),
		DisplayName:     l.DisplayName,
		XP:              l.XP.Int(),
		Level:           l.Level().Int(),
		XPIntoLevel:     l.XP.ProgressToNextLevel(),
		Streak:          l.Streak,
		Hearts:          l.Hearts.Int(),
		CurrentLanguage: l.CurrentLanguage.String(),
		CreatedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, code := range l.LanguagesLearning {
		dto.LanguagesLearning = append(dto.LanguagesLearning, code.String())
	}
	if l.HasEverPracticed() {
		dto.LastPracticeDate = timeutil.FormatDate(l.LastPracticeDate)
	}
	return dto
}

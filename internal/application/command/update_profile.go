package command

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand changes editable profile fields.
type UpdateProfileCommand struct {
	LearnerID   string
	DisplayName string
}

// Validate validates the command.
func (c UpdateProfileCommand) Validate() error {
	if c.LearnerID == "" {
		return fmt.Errorf("update_profile: learner_id is required: %w", shared.ErrValidation)
	}
	if c.DisplayName == "" {
		return fmt.Errorf("update_profile: display_name is required: %w", shared.ErrValidation)
	}
	return nil
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	learners learner.Repository
	cache    learner.Cache
	log      *logger.Logger
}

// NewUpdateProfileHandler creates the handler.
func NewUpdateProfileHandler(
	learners learner.Repository,
	cache learner.Cache,
	log *logger.Logger,
) *UpdateProfileHandler {
	return &UpdateProfileHandler{learners: learners, cache: cache, log: log}
}

// Handle updates the learner's profile.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*learner.Learner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := h.learners.GetByID(ctx, cmd.LearnerID)
	if err != nil {
		return nil, err
	}

	if err := l.UpdateDisplayName(cmd.DisplayName); err != nil {
		return nil, err
	}
	if err := h.learners.Update(ctx, l); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, cmd.LearnerID); err != nil {
			h.log.Warn("failed to invalidate learner cache",
				logger.LearnerID(cmd.LearnerID), logger.Err(err))
		}
	}

	h.log.Info("profile updated", logger.LearnerID(cmd.LearnerID))

	return l, nil
}

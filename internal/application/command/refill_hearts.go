package command

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REFILL HEARTS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RefillHeartsCommand restores the learner's hearts to the maximum.
type RefillHeartsCommand struct {
	LearnerID string
}

// Validate validates the command.
func (c RefillHeartsCommand) Validate() error {
	if c.LearnerID == "" {
		return fmt.Errorf("refill_hearts: learner_id is required: %w", shared.ErrValidation)
	}
	return nil
}

// RefillHeartsHandler handles the RefillHeartsCommand.
type RefillHeartsHandler struct {
	learners learner.Repository
	cache    learner.Cache
	log      *logger.Logger
}

// NewRefillHeartsHandler creates the handler.
func NewRefillHeartsHandler(learners learner.Repository, cache learner.Cache, log *logger.Logger) *RefillHeartsHandler {
	return &RefillHeartsHandler{learners: learners, cache: cache, log: log}
}

// Handle refills the learner's hearts.
func (h *RefillHeartsHandler) Handle(ctx context.Context, cmd RefillHeartsCommand) (*learner.Learner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := h.learners.GetByID(ctx, cmd.LearnerID)
	if err != nil {
		return nil, err
	}

	l.RefillHearts()
	if err := h.learners.Update(ctx, l); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, cmd.LearnerID); err != nil {
			h.log.Warn("failed to invalidate learner cache",
				logger.LearnerID(cmd.LearnerID), logger.Err(err))
		}
	}

	h.log.Info("hearts refilled", logger.LearnerID(cmd.LearnerID))

	return l, nil
}

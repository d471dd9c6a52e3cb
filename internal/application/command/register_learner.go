package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER LEARNER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// RegisterLearnerCommand contains the data to create a new account.
type RegisterLearnerCommand struct {
	Email       string
	Password    string
	DisplayName string
}

// Validate validates the command.
func (c RegisterLearnerCommand) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("register_learner: email is required: %w", shared.ErrValidation)
	}
	if len(c.Password) < MinPasswordLength {
		return shared.ErrWeakPassword
	}
	if c.DisplayName == "" {
		return fmt.Errorf("register_learner: display_name is required: %w", shared.ErrValidation)
	}
	return nil
}

// RegisterLearnerResult contains the created learner.
type RegisterLearnerResult struct {
	Learner *learner.Learner
}

// RegisterLearnerHandler handles the RegisterLearnerCommand.
type RegisterLearnerHandler struct {
	learners  learner.Repository
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewRegisterLearnerHandler creates the handler.
func NewRegisterLearnerHandler(
	learners learner.Repository,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *RegisterLearnerHandler {
	return &RegisterLearnerHandler{learners: learners, publisher: publisher, log: log}
}

// Handle creates a new learner account with a bcrypt password hash.
func (h *RegisterLearnerHandler) Handle(ctx context.Context, cmd RegisterLearnerCommand) (*RegisterLearnerResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	email, err := shared.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	exists, err := h.learners.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	l, err := learner.NewLearner(learner.NewLearnerParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  cmd.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	if err := h.learners.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := h.publisher.Publish(shared.NewLearnerRegisteredEvent(l.ID, l.Email.String(), l.DisplayName)); err != nil {
		h.log.Warn("failed to publish event",
			logger.String("event_type", string(shared.EventLearnerRegistered)),
			logger.Err(err),
		)
	}

	h.log.Info("learner registered",
		logger.LearnerID(l.ID),
		logger.Email(l.Email.String()),
	)

	return &RegisterLearnerResult{Learner: l}, nil
}

package command

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATE LEARNER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AuthenticateLearnerCommand contains login credentials.
type AuthenticateLearnerCommand struct {
	Email    string
	Password string
}

// Validate validates the command.
func (c AuthenticateLearnerCommand) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("authenticate_learner: email is required: %w", shared.ErrValidation)
	}
	if c.Password == "" {
		return fmt.Errorf("authenticate_learner: password is required: %w", shared.ErrValidation)
	}
	return nil
}

// AuthenticateLearnerResult contains the authenticated learner.
type AuthenticateLearnerResult struct {
	Learner *learner.Learner
}

// AuthenticateLearnerHandler verifies credentials against the stored hash.
type AuthenticateLearnerHandler struct {
	learners learner.Repository
	log      *logger.Logger
}

// NewAuthenticateLearnerHandler creates the handler.
func NewAuthenticateLearnerHandler(learners learner.Repository, log *logger.Logger) *AuthenticateLearnerHandler {
	return &AuthenticateLearnerHandler{learners: learners, log: log}
}

// Handle checks the credentials. A missing account and a wrong password
// both map to ErrInvalidCredentials so the response does not leak
// which of the two failed.
func (h *AuthenticateLearnerHandler) Handle(ctx context.Context, cmd AuthenticateLearnerCommand) (*AuthenticateLearnerResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	email, err := shared.NewEmail(cmd.Email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	l, err := h.learners.GetByEmail(ctx, email.String())
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	h.log.Info("learner authenticated", logger.LearnerID(l.ID))

	return &AuthenticateLearnerResult{Learner: l}, nil
}

package command

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// START LANGUAGE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// StartLanguageCommand switches the learner's active course language,
// adding it to the learning list when seen for the first time.
type StartLanguageCommand struct {
	LearnerID string
	Language  string
}

// Validate validates the command.
func (c StartLanguageCommand) Validate() error {
	if c.LearnerID == "" {
		return fmt.Errorf("start_language: learner_id is required: %w", shared.ErrValidation)
	}
	if c.Language == "" {
		return fmt.Errorf("start_language: language is required: %w", shared.ErrValidation)
	}
	return nil
}

// StartLanguageResult reports the outcome of starting a language.
type StartLanguageResult struct {
	// Added is true when the language was new for the learner.
	Added bool `json:"added"`

	// LanguagesLearning is the full list after the change.
	LanguagesLearning []string `json:"languages_learning"`

	// UnlockedAchievements lists achievements awarded by starting
	// this language (the polyglot milestone).
	UnlockedAchievements []UnlockedAchievementDTO `json:"unlocked_achievements,omitempty"`
}

// StartLanguageHandler handles the StartLanguageCommand.
type StartLanguageHandler struct {
	catalog   *catalog.Catalog
	uow       progression.UnitOfWork
	cache     learner.Cache
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewStartLanguageHandler creates the handler.
func NewStartLanguageHandler(
	cat *catalog.Catalog,
	uow progression.UnitOfWork,
	cache learner.Cache,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *StartLanguageHandler {
	return &StartLanguageHandler{catalog: cat, uow: uow, cache: cache, publisher: publisher, log: log}
}

// Handle starts the language for the learner. Runs under the learner
// row lock so the achievement check sees a consistent language list.
func (h *StartLanguageHandler) Handle(ctx context.Context, cmd StartLanguageCommand) (*StartLanguageResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	code, err := shared.NewLanguageCode(cmd.Language)
	if err != nil {
		return nil, err
	}
	if _, ok := h.catalog.Language(code); !ok {
		return nil, shared.ErrLanguageNotFound
	}

	var (
		result StartLanguageResult
		events []shared.Event
	)

	err = h.uow.WithLearner(ctx, cmd.LearnerID, func(ctx context.Context, tx progression.Tx) error {
		l := tx.Learner()

		added, err := l.StartLanguage(code)
		if err != nil {
			return err
		}
		if err := tx.UpdateLearner(ctx, l); err != nil {
			return err
		}

		result.Added = added
		for _, c := range l.LanguagesLearning {
			result.LanguagesLearning = append(result.LanguagesLearning, c.String())
		}

		if added {
			events = append(events, shared.NewLanguageStartedEvent(l.ID, code.String()))

			unlocked, err := tx.Unlocked(ctx)
			if err != nil {
				return err
			}
			earned := progression.EvaluateLanguageStart(len(l.LanguagesLearning), unlocked)
			newlyUnlocked, err := tx.UnlockAchievements(ctx, earned)
			if err != nil {
				return err
			}
			for _, id := range newlyUnlocked {
				def, _ := h.catalog.Achievement(id)
				result.UnlockedAchievements = append(result.UnlockedAchievements, UnlockedAchievementDTO{
					ID:          def.ID,
					Name:        def.Name,
					Description: def.Description,
					Icon:        def.Icon,
				})
				events = append(events, shared.NewAchievementUnlockedEvent(l.ID, def.ID, def.Name))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if err := h.publisher.Publish(event); err != nil {
			h.log.Warn("failed to publish event",
				logger.String("event_type", string(event.EventType())),
				logger.Err(err),
			)
		}
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, cmd.LearnerID); err != nil {
			h.log.Warn("failed to invalidate learner cache",
				logger.LearnerID(cmd.LearnerID), logger.Err(err))
		}
	}

	h.log.Info("language started",
		logger.LearnerID(cmd.LearnerID),
		logger.Language(cmd.Language),
	)

	return &result, nil
}

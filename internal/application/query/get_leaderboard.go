package query

import (
	"context"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Reads the Redis-backed ranking; falls back to Postgres when the
// cache is cold or unavailable.
// ══════════════════════════════════════════════════════════════════════════════

const (
	// DefaultLeaderboardSize is the ranking size returned by default.
	DefaultLeaderboardSize = 50

	// MaxLeaderboardSize bounds the requested ranking size.
	MaxLeaderboardSize = 100
)

// GetLeaderboardQuery contains ranking parameters.
type GetLeaderboardQuery struct {
	// Limit - сколько строк вернуть (по умолчанию 50, максимум 100).
	Limit int
}

// Validate validates the query and applies defaults.
func (q *GetLeaderboardQuery) Validate() error {
	if q.Limit <= 0 {
		q.Limit = DefaultLeaderboardSize
	}
	if q.Limit > MaxLeaderboardSize {
		q.Limit = MaxLeaderboardSize
	}
	return nil
}

// LeaderboardEntryDTO is one ranking row.
type LeaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	Medal       string `json:"medal,omitempty"`
	LearnerID   string `json:"learner_id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Streak      int    `json:"streak"`
}

// GetLeaderboardResult contains the ranking.
type GetLeaderboardResult struct {
	Entries []LeaderboardEntryDTO `json:"entries"`

	// Source reports where the ranking came from ("cache" or "store").
	Source string `json:"source"`
}

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	cache    learner.LeaderboardCache
	learners learner.Repository
	log      *logger.Logger
}

// NewGetLeaderboardHandler creates the handler.
func NewGetLeaderboardHandler(
	cache learner.LeaderboardCache,
	learners learner.Repository,
	log *logger.Logger,
) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{cache: cache, learners: learners, log: log}
}

// Handle returns the XP ranking.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		entries, err := h.cache.Top(ctx, q.Limit)
		if err == nil && len(entries) > 0 {
			return rankingResult(entries, "cache"), nil
		}
		if err != nil {
			h.log.Warn("leaderboard cache miss, falling back to store", logger.Err(err))
		}
	}

	top, err := h.learners.GetTopByXP(ctx, q.Limit)
	if err != nil {
		return nil, err
	}

	entries := make([]learner.LeaderboardEntry, 0, len(top))
	for _, l := range top {
		entries = append(entries, learner.LeaderboardEntry{
			LearnerID:   l.ID,
			DisplayName: l.DisplayName,
			XP:          l.XP.Int(),
			Level:       l.Level().Int(),
			Streak:      l.Streak,
		})
	}

	return rankingResult(entries, "store"), nil
}

func rankingResult(entries []learner.LeaderboardEntry, source string) *GetLeaderboardResult {
	result := &GetLeaderboardResult{Source: source}
	for i, e := range entries {
		rank := shared.Rank(i + 1)
		result.Entries = append(result.Entries, LeaderboardEntryDTO{
			Rank:        rank.Int(),
			Medal:       rank.Medal(),
			LearnerID:   e.LearnerID,
			DisplayName: e.DisplayName,
			XP:          e.XP,
			Level:       e.Level,
			Streak:      e.Streak,
		})
	}
	return result
}

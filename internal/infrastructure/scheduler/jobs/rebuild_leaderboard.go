// Package jobs contains implementations of scheduled jobs for Stratos.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
)

// ══════════════════════════════════════════════════════════════════════════════
// REBUILD LEADERBOARD JOB
// ══════════════════════════════════════════════════════════════════════════════

// RebuildLeaderboardJob periodically rebuilds the Redis leaderboard from the
// learner store. The leaderboard cache is updated incrementally on each lesson
// completion, but a full rebuild reconciles any drift (missed events, restarts,
// manual XP corrections) and repopulates the cache after Redis eviction.
type RebuildLeaderboardJob struct {
	learners    learner.Repository
	leaderboard learner.LeaderboardCache
	logger      *slog.Logger

	// MaxEntries caps how many learners the cached board holds.
	maxEntries int

	lastStats atomic.Value // *RebuildStats
}

// RebuildStats contains statistics from the last rebuild run.
type RebuildStats struct {
	StartedAt time.Time
	Duration  time.Duration
	Entries   int
	Err       error
}

// DefaultMaxLeaderboardEntries is how many learners the cached board keeps
// when no explicit cap is configured.
const DefaultMaxLeaderboardEntries = 500

// NewRebuildLeaderboardJob creates a new leaderboard rebuild job.
func NewRebuildLeaderboardJob(
	learners learner.Repository,
	leaderboard learner.LeaderboardCache,
	maxEntries int,
	logger *slog.Logger,
) *RebuildLeaderboardJob {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxLeaderboardEntries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RebuildLeaderboardJob{
		learners:    learners,
		leaderboard: leaderboard,
		maxEntries:  maxEntries,
		logger:      logger.With("job", "rebuild_leaderboard"),
	}
}

// Name returns the job name.
func (j *RebuildLeaderboardJob) Name() string {
	return "rebuild_leaderboard"
}

// Description returns a human-readable description of the job.
func (j *RebuildLeaderboardJob) Description() string {
	return "Rebuilds the Redis leaderboard from the learner store"
}

// Run executes the rebuild.
func (j *RebuildLeaderboardJob) Run(ctx context.Context) error {
	started := time.Now()
	j.logger.InfoContext(ctx, "leaderboard rebuild started")

	learners, err := j.learners.GetTopByXP(ctx, j.maxEntries)
	if err != nil {
		j.recordStats(started, 0, err)
		return fmt.Errorf("load learners: %w", err)
	}

	entries := make([]learner.LeaderboardEntry, 0, len(learners))
	for _, l := range learners {
		entries = append(entries, learner.LeaderboardEntry{
			LearnerID:   l.ID,
			DisplayName: l.DisplayName,
			XP:          l.XP.Int(),
			Level:       l.Level().Int(),
			Streak:      l.Streak,
		})
	}

	if err := j.leaderboard.Rebuild(ctx, entries); err != nil {
		j.recordStats(started, len(entries), err)
		return fmt.Errorf("rebuild leaderboard cache: %w", err)
	}

	j.recordStats(started, len(entries), nil)
	j.logger.InfoContext(ctx, "leaderboard rebuild finished",
		"entries", len(entries),
		"duration", time.Since(started).String(),
	)
	return nil
}

// LastStats returns statistics from the most recent run, or nil if the job
// has not run yet.
func (j *RebuildLeaderboardJob) LastStats() *RebuildStats {
	stats, _ := j.lastStats.Load().(*RebuildStats)
	return stats
}

func (j *RebuildLeaderboardJob) recordStats(started time.Time, entries int, err error) {
	j.lastStats.Store(&RebuildStats{
		StartedAt: started,
		Duration:  time.Since(started),
		Entries:   entries,
		Err:       err,
	})
}

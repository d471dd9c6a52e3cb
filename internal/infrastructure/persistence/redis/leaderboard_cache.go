// Package redis implements Redis caching for Stratos.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD CACHE
// XP ranking backed by Redis Sorted Sets.
//
// Architecture:
//   - Sorted Set "leaderboard:xp" stores learnerID -> XP
//   - Hash "leaderboard:info" stores learnerID -> entry JSON
//
// This design allows O(log N) score updates and O(log N + M) range reads.
// The worker rebuilds both keys atomically via staging keys and RENAME.
// ══════════════════════════════════════════════════════════════════════════════

// Key patterns for the leaderboard cache.
const (
	// keyLeaderboardXP is the sorted set for XP rankings.
	keyLeaderboardXP = "leaderboard:xp"

	// keyLeaderboardInfo is the hash for entry details.
	keyLeaderboardInfo = "leaderboard:info"

	// rebuild staging keys, renamed over the live keys on success.
	keyLeaderboardXPStaging   = "leaderboard:xp:staging"
	keyLeaderboardInfoStaging = "leaderboard:info:staging"
)

// ErrLeaderboardEmpty is returned when the ranking has no entries.
var ErrLeaderboardEmpty = errors.New("leaderboard_cache: leaderboard is empty")

// rankedEntry is the hash payload for one learner.
type rankedEntry struct {
	LearnerID   string `json:"learner_id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Streak      int    `json:"streak"`
}

// LeaderboardCache implements learner.LeaderboardCache on Redis.
type LeaderboardCache struct {
	cache *Cache
}

// NewLeaderboardCache creates a new LeaderboardCache.
func NewLeaderboardCache(cache *Cache) *LeaderboardCache {
	return &LeaderboardCache{cache: cache}
}

// Top returns the first limit rows of the ranking, best first.
func (lc *LeaderboardCache) Top(ctx context.Context, limit int) ([]learner.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	client := lc.cache.Client()

	ids, err := client.ZRevRange(ctx, keyLeaderboardXP, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, ErrLeaderboardEmpty
	}

	raw, err := client.HMGet(ctx, keyLeaderboardInfo, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}

	entries := make([]learner.LeaderboardEntry, 0, len(ids))
	for i, id := range ids {
		s, ok := raw[i].(string)
		if !ok {
			// Info hash out of sync with the sorted set: keep the row
			// with what the ZSET alone can tell us.
			score, err := client.ZScore(ctx, keyLeaderboardXP, id).Result()
			if err != nil {
				continue
			}
			entries = append(entries, learner.LeaderboardEntry{LearnerID: id, XP: int(score)})
			continue
		}

		var e rankedEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCacheSerialization, err)
		}
		entries = append(entries, learner.LeaderboardEntry{
			LearnerID:   e.LearnerID,
			DisplayName: e.DisplayName,
			XP:          e.XP,
			Level:       e.Level,
			Streak:      e.Streak,
		})
	}

	return entries, nil
}

// UpdateScore upserts one learner's row in the ranking.
func (lc *LeaderboardCache) UpdateScore(ctx context.Context, entry learner.LeaderboardEntry) error {
	data, err := json.Marshal(rankedEntry{
		LearnerID:   entry.LearnerID,
		DisplayName: entry.DisplayName,
		XP:          entry.XP,
		Level:       entry.Level,
		Streak:      entry.Streak,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	pipe := lc.cache.Client().Pipeline()
	pipe.ZAdd(ctx, keyLeaderboardXP, redis.Z{Score: float64(entry.XP), Member: entry.LearnerID})
	pipe.HSet(ctx, keyLeaderboardInfo, entry.LearnerID, data)
	pipe.Expire(ctx, keyLeaderboardXP, TTLLeaderboardCache)
	pipe.Expire(ctx, keyLeaderboardInfo, TTLLeaderboardCache)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}
	return nil
}

// Rebuild atomically replaces the whole ranking.
func (lc *LeaderboardCache) Rebuild(ctx context.Context, entries []learner.LeaderboardEntry) error {
	client := lc.cache.Client()

	if len(entries) == 0 {
		return client.Del(ctx, keyLeaderboardXP, keyLeaderboardInfo).Err()
	}

	pipe := client.Pipeline()
	pipe.Del(ctx, keyLeaderboardXPStaging, keyLeaderboardInfoStaging)

	for _, entry := range entries {
		data, err := json.Marshal(rankedEntry{
			LearnerID:   entry.LearnerID,
			DisplayName: entry.DisplayName,
			XP:          entry.XP,
			Level:       entry.Level,
			Streak:      entry.Streak,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
		}
		pipe.ZAdd(ctx, keyLeaderboardXPStaging, redis.Z{Score: float64(entry.XP), Member: entry.LearnerID})
		pipe.HSet(ctx, keyLeaderboardInfoStaging, entry.LearnerID, data)
	}

	pipe.Rename(ctx, keyLeaderboardXPStaging, keyLeaderboardXP)
	pipe.Rename(ctx, keyLeaderboardInfoStaging, keyLeaderboardInfo)
	pipe.Expire(ctx, keyLeaderboardXP, TTLLeaderboardCache)
	pipe.Expire(ctx, keyLeaderboardInfo, TTLLeaderboardCache)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}
	return nil
}

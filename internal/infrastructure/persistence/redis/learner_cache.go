// Package redis implements Redis caching for Stratos.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER CACHE
// Cache-aside store for learner profiles. Postgres stays the source of
// truth; writers invalidate, readers repopulate.
// ══════════════════════════════════════════════════════════════════════════════

// cachedLearner is the serialized form of a learner profile.
type cachedLearner struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"password_hash"`
	DisplayName       string    `json:"display_name"`
	XP                int       `json:"xp"`
	Streak            int       `json:"streak"`
	Hearts            int       `json:"hearts"`
	CurrentLanguage   string    `json:"current_language"`
	LanguagesLearning []string  `json:"languages_learning"`
	LastPracticeDate  time.Time `json:"last_practice_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LearnerCache implements learner.Cache on Redis.
type LearnerCache struct {
	cache *Cache
}

// NewLearnerCache creates a new LearnerCache.
func NewLearnerCache(cache *Cache) *LearnerCache {
	return &LearnerCache{cache: cache}
}

// Get returns the cached learner, or shared.ErrLearnerNotFound on a miss.
func (lc *LearnerCache) Get(ctx context.Context, learnerID string) (*learner.Learner, error) {
	var c cachedLearner
	if err := lc.cache.Get(ctx, LearnerKey(learnerID), &c); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.ErrLearnerNotFound
		}
		return nil, err
	}

	l := &learner.Learner{
		ID:               c.ID,
		Email:            shared.Email(c.Email),
		PasswordHash:     c.PasswordHash,
		DisplayName:      c.DisplayName,
		XP:               shared.XP(c.XP),
		Streak:           c.Streak,
		Hearts:           shared.Hearts(c.Hearts),
		CurrentLanguage:  shared.LanguageCode(c.CurrentLanguage),
		LastPracticeDate: c.LastPracticeDate,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	for _, code := range c.LanguagesLearning {
		l.LanguagesLearning = append(l.LanguagesLearning, shared.LanguageCode(code))
	}

	return l, nil
}

// Set stores the learner profile with the given TTL.
func (lc *LearnerCache) Set(ctx context.Context, l *learner.Learner, ttl time.Duration) error {
	c := cachedLearner{
		ID:               l.ID,
		Email:            l.Email.String(),
		PasswordHash:     l.PasswordHash,
		DisplayName:      l.DisplayName,
		XP:               l.XP.Int(),
		Streak:           l.Streak,
		Hearts:           l.Hearts.Int(),
		CurrentLanguage:  l.CurrentLanguage.String(),
		LastPracticeDate: l.LastPracticeDate,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	for _, code := range l.LanguagesLearning {
		c.LanguagesLearning = append(c.LanguagesLearning, code.String())
	}

	return lc.cache.Set(ctx, LearnerKey(l.ID), c, ttl)
}

// Invalidate drops the cached profile.
func (lc *LearnerCache) Invalidate(ctx context.Context, learnerID string) error {
	return lc.cache.Delete(ctx, LearnerKey(learnerID))
}

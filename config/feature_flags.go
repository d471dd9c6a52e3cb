package config

import (
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FeatureFlags manages feature toggles and gradual rollouts. Flags gate
// optional product surfaces (flashcards, leaderboard caching, streak
// bonuses) so they can be switched per environment without a deploy.
type FeatureFlags struct {
	mu sync.RWMutex

	// Core features
	features map[string]*Feature

	// Override rules (for testing/debugging)
	learnerOverrides map[string]map[string]bool // learnerID -> feature -> enabled
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool

	// Rollout percentage (0-100)
	// Learners are assigned based on hash of their ID
	RolloutPercent int

	// Time-based activation
	EnabledFrom  *time.Time
	EnabledUntil *time.Time
}

// FeatureContext provides context for feature flag evaluation.
type FeatureContext struct {
	LearnerID string
	IsAdmin   bool
}

// Predefined feature flag names.
const (
	// === Gamification Features ===
	FeatureGamificationStreaks      = "gamification.streaks"      // Daily streaks and bonuses
	FeatureGamificationAchievements = "gamification.achievements" // Badges/achievements
	FeatureGamificationHearts       = "gamification.hearts"       // Hearts on failed lessons

	// === Leaderboard Features ===
	FeatureLeaderboardCache   = "leaderboard.cache"   // Serve leaderboard from Redis
	FeatureLeaderboardRebuild = "leaderboard.rebuild" // Periodic full rebuild job

	// === Catalog Features ===
	FeatureCatalogFlashcards = "catalog.flashcards" // Flashcard decks endpoint

	// === Experimental Features ===
	FeatureExperimentalPlacement = "experimental.placement" // Placement test on signup
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features:         make(map[string]*Feature),
		learnerOverrides: make(map[string]map[string]bool),
	}

	// Initialize all features with defaults
	ff.initializeDefaults()

	// Load overrides from environment
	ff.loadFromEnvironment()

	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	// Gamification - enabled by default, it is the product
	ff.features[FeatureGamificationStreaks] = &Feature{
		Name:           FeatureGamificationStreaks,
		Description:    "Daily streaks and streak XP bonuses",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureGamificationAchievements] = &Feature{
		Name:           FeatureGamificationAchievements,
		Description:    "Achievement badges",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureGamificationHearts] = &Feature{
		Name:           FeatureGamificationHearts,
		Description:    "Hearts lost on failed lessons",
		Enabled:        true,
		RolloutPercent: 100,
	}

	// Leaderboard
	ff.features[FeatureLeaderboardCache] = &Feature{
		Name:           FeatureLeaderboardCache,
		Description:    "Serve the leaderboard from the Redis cache",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureLeaderboardRebuild] = &Feature{
		Name:           FeatureLeaderboardRebuild,
		Description:    "Periodic full leaderboard rebuild job",
		Enabled:        true,
		RolloutPercent: 100,
	}

	// Catalog
	ff.features[FeatureCatalogFlashcards] = &Feature{
		Name:           FeatureCatalogFlashcards,
		Description:    "Flashcard decks for vocabulary review",
		Enabled:        true,
		RolloutPercent: 100,
	}

	// Experimental - off by default
	ff.features[FeatureExperimentalPlacement] = &Feature{
		Name:           FeatureExperimentalPlacement,
		Description:    "Placement test during registration",
		Enabled:        false,
		RolloutPercent: 0,
	}
}

// loadFromEnvironment reads FEATURE_* environment variables.
// Example: FEATURE_GAMIFICATION_STREAKS=false, FEATURE_LEADERBOARD_CACHE=50
// (a number sets the rollout percentage, a bool toggles the feature).
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := featureNameToEnvKey(name)
		val := os.Getenv(envKey)
		if val == "" {
			continue
		}

		if percent, err := strconv.Atoi(val); err == nil {
			if percent >= 0 && percent <= 100 {
				feature.RolloutPercent = percent
				feature.Enabled = percent > 0
			}
			continue
		}

		if enabled, err := strconv.ParseBool(val); err == nil {
			feature.Enabled = enabled
			if enabled && feature.RolloutPercent == 0 {
				feature.RolloutPercent = 100
			}
		}
	}
}

// featureNameToEnvKey converts "gamification.streaks" to "FEATURE_GAMIFICATION_STREAKS".
func featureNameToEnvKey(name string) string {
	key := strings.ToUpper(name)
	key = strings.ReplaceAll(key, ".", "_")
	return "FEATURE_" + key
}

// IsEnabled checks whether a feature is enabled for the given context.
// A nil context evaluates global state only (no rollout bucketing).
func (ff *FeatureFlags) IsEnabled(featureName string, ctx *FeatureContext) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	// Per-learner override wins
	if ctx != nil && ctx.LearnerID != "" {
		if overrides, ok := ff.learnerOverrides[ctx.LearnerID]; ok {
			if enabled, ok := overrides[featureName]; ok {
				return enabled
			}
		}
	}

	feature, ok := ff.features[featureName]
	if !ok {
		return false
	}

	if !feature.Enabled {
		return false
	}

	// Admins see everything that is enabled
	if ctx != nil && ctx.IsAdmin {
		return true
	}

	// Time window
	now := time.Now()
	if feature.EnabledFrom != nil && now.Before(*feature.EnabledFrom) {
		return false
	}
	if feature.EnabledUntil != nil && now.After(*feature.EnabledUntil) {
		return false
	}

	// Rollout bucketing
	if feature.RolloutPercent >= 100 {
		return true
	}
	if ctx == nil || ctx.LearnerID == "" {
		return feature.RolloutPercent >= 100
	}

	return ff.isInRollout(ctx.LearnerID, featureName, feature.RolloutPercent)
}

// isInRollout deterministically buckets a learner into the rollout.
func (ff *FeatureFlags) isInRollout(learnerID, featureName string, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}

	h := fnv.New32a()
	h.Write([]byte(learnerID))
	h.Write([]byte(":"))
	h.Write([]byte(featureName))

	bucket := h.Sum32() % 100
	return int(bucket) < percent
}

// SetLearnerOverride forces a feature on/off for a specific learner.
func (ff *FeatureFlags) SetLearnerOverride(learnerID, featureName string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if ff.learnerOverrides[learnerID] == nil {
		ff.learnerOverrides[learnerID] = make(map[string]bool)
	}
	ff.learnerOverrides[learnerID][featureName] = enabled
}

// ClearLearnerOverrides removes all overrides for a learner.
func (ff *FeatureFlags) ClearLearnerOverrides(learnerID string) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	delete(ff.learnerOverrides, learnerID)
}

// SetRolloutPercent updates the rollout percentage of a feature.
func (ff *FeatureFlags) SetRolloutPercent(featureName string, percent int) error {
	if percent < 0 || percent > 100 {
		return &FeatureFlagError{Message: "rollout percent must be 0-100"}
	}

	ff.mu.Lock()
	defer ff.mu.Unlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return &FeatureFlagError{Message: "unknown feature: " + featureName}
	}

	feature.RolloutPercent = percent
	feature.Enabled = percent > 0
	return nil
}

// EnableFeature turns a feature fully on.
func (ff *FeatureFlags) EnableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 100)
}

// DisableFeature turns a feature fully off.
func (ff *FeatureFlags) DisableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 0)
}

// GetAllFeatures returns a copy of all registered features.
func (ff *FeatureFlags) GetAllFeatures() map[string]*Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	result := make(map[string]*Feature, len(ff.features))
	for name, feature := range ff.features {
		copied := *feature
		result[name] = &copied
	}
	return result
}

// FeatureFlagError is returned for invalid feature flag operations.
type FeatureFlagError struct {
	Message string
}

func (e *FeatureFlagError) Error() string {
	return e.Message
}

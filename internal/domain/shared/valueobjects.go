// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// LearnerID represents a unique learner identifier (UUID format).
type LearnerID string

// UUID validation regex (simple version).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValid checks if the learner ID is a valid UUID.
func (l LearnerID) IsValid() bool {
	return uuidRegex.MatchString(string(l))
}

// String returns the string representation.
func (l LearnerID) String() string {
	return string(l)
}

// IsEmpty checks if the ID is empty.
func (l LearnerID) IsEmpty() bool {
	return l == ""
}

// NewLearnerID creates a new LearnerID with validation.
func NewLearnerID(id string) (LearnerID, error) {
	lid := LearnerID(strings.ToLower(strings.TrimSpace(id)))
	if !lid.IsValid() {
		return "", NewDomainError("shared", "NewLearnerID", ErrInvalidID, "invalid learner ID format")
	}
	return lid, nil
}

// LanguageCode represents an ISO 639-1 style course language code ("es", "fr").
type LanguageCode string

var languageCodeRegex = regexp.MustCompile(`^[a-z]{2}$`)

// IsValid checks if the language code format is valid.
func (c LanguageCode) IsValid() bool {
	return languageCodeRegex.MatchString(string(c))
}

// String returns the string representation.
func (c LanguageCode) String() string {
	return string(c)
}

// NewLanguageCode creates a new LanguageCode with validation.
func NewLanguageCode(code string) (LanguageCode, error) {
	c := LanguageCode(strings.ToLower(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", NewDomainError("shared", "NewLanguageCode", ErrInvalidFormat, "language code must be two lowercase letters")
	}
	return c, nil
}

// LessonID represents a unique lesson identifier.
// Lesson ID format: language-topic (e.g., "es-1", "fr-numbers").
type LessonID string

var lessonIDRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// IsValid checks if the lesson ID format is valid.
func (l LessonID) IsValid() bool {
	s := string(l)
	return len(s) >= 3 && len(s) <= 50 && lessonIDRegex.MatchString(s)
}

// String returns the string representation.
func (l LessonID) String() string {
	return string(l)
}

// Language extracts the language code prefix from the lesson ID.
func (l LessonID) Language() string {
	parts := strings.Split(string(l), "-")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// NewLessonID creates a new LessonID with validation.
func NewLessonID(id string) (LessonID, error) {
	lid := LessonID(strings.ToLower(strings.TrimSpace(id)))
	if !lid.IsValid() {
		return "", NewDomainError("shared", "NewLessonID", ErrInvalidID, "invalid lesson ID format")
	}
	return lid, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Email Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Email represents a learner's email address, stored lowercase.
type Email string

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValid checks if the email format is valid.
func (e Email) IsValid() bool {
	return emailRegex.MatchString(string(e))
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// NewEmail creates a new Email with validation and normalization.
func NewEmail(value string) (Email, error) {
	e := Email(strings.ToLower(strings.TrimSpace(value)))
	if !e.IsValid() {
		return "", ErrInvalidEmail
	}
	return e, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// XP Value Object (Experience Points)
// ═══════════════════════════════════════════════════════════════════════════

// XP represents experience points earned by a learner.
type XP int

const (
	// XP boundaries
	MinXP XP = 0
	MaxXP XP = 1000000 // 1 million XP cap

	// XPPerLevel is the flat amount of XP that makes up one level.
	XPPerLevel = 100
)

// IsValid checks if the XP value is within valid range.
func (x XP) IsValid() bool {
	return x >= MinXP && x <= MaxXP
}

// Int returns the underlying int value.
func (x XP) Int() int {
	return int(x)
}

// Add adds XP and returns the result, capped at MaxXP.
func (x XP) Add(amount int) XP {
	result := XP(int(x) + amount)
	if result > MaxXP {
		return MaxXP
	}
	if result < MinXP {
		return MinXP
	}
	return result
}

// Level calculates the level from total XP.
// Leveling is linear: every 100 XP is one level, starting at level 1.
func (x XP) Level() Level {
	if x <= 0 {
		return 1
	}
	return Level(int(x)/XPPerLevel + 1)
}

// ProgressToNextLevel returns percentage progress within the current level (0-99).
func (x XP) ProgressToNextLevel() int {
	if x < 0 {
		return 0
	}
	return int(x) % XPPerLevel
}

// NewXP creates a new XP value with validation.
func NewXP(amount int) (XP, error) {
	if amount < int(MinXP) {
		return 0, NewDomainError("shared", "NewXP", ErrNegativeValue, "XP cannot be negative")
	}
	if amount > int(MaxXP) {
		return MaxXP, nil // Cap at max
	}
	return XP(amount), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Level represents a learner's level.
type Level int

const (
	MinLevel Level = 1
)

// IsValid checks if the level is valid.
func (l Level) IsValid() bool {
	return l >= MinLevel
}

// Int returns the underlying int value.
func (l Level) Int() int {
	return int(l)
}

// RequiredXP returns the total XP required to reach this level.
func (l Level) RequiredXP() int {
	if l <= 1 {
		return 0
	}
	return (int(l) - 1) * XPPerLevel
}

// Title returns a human-readable title for the level.
func (l Level) Title() string {
	switch {
	case l < 5:
		return "Новичок"
	case l < 10:
		return "Ученик"
	case l < 20:
		return "Студент"
	case l < 30:
		return "Практик"
	case l < 50:
		return "Специалист"
	case l < 75:
		return "Эксперт"
	default:
		return "Мастер"
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// ScorePercent Value Object
// ═══════════════════════════════════════════════════════════════════════════

// ScorePercent represents a lesson score as a whole-number percentage.
type ScorePercent int

const (
	MinScore ScorePercent = 0
	MaxScore ScorePercent = 100

	// PassThreshold is the minimum score that counts as passing a lesson.
	PassThreshold ScorePercent = 70
)

// IsValid checks if the score is within valid range.
func (s ScorePercent) IsValid() bool {
	return s >= MinScore && s <= MaxScore
}

// Int returns the underlying int value.
func (s ScorePercent) Int() int {
	return int(s)
}

// Passed reports whether the score meets the pass threshold.
func (s ScorePercent) Passed() bool {
	return s >= PassThreshold
}

// IsPerfect reports whether the score is 100%.
func (s ScorePercent) IsPerfect() bool {
	return s == MaxScore
}

// NewScorePercent creates a new ScorePercent with validation.
func NewScorePercent(value int) (ScorePercent, error) {
	s := ScorePercent(value)
	if !s.IsValid() {
		return 0, NewDomainError("shared", "NewScorePercent", ErrValueOutOfRange, "score must be between 0 and 100")
	}
	return s, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Hearts Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Hearts represents a learner's remaining hearts.
// Hearts are a pure counter: losing the last one never blocks practice.
type Hearts int

const (
	MinHearts  Hearts = 0
	FullHearts Hearts = 5
)

// IsValid checks if the hearts value is within valid range.
func (h Hearts) IsValid() bool {
	return h >= MinHearts && h <= FullHearts
}

// Int returns the underlying int value.
func (h Hearts) Int() int {
	return int(h)
}

// Lose removes one heart, flooring at zero.
func (h Hearts) Lose() Hearts {
	if h <= MinHearts {
		return MinHearts
	}
	return h - 1
}

// Refill restores hearts to the full amount.
func (h Hearts) Refill() Hearts {
	return FullHearts
}

// NewHearts creates a new Hearts value with validation.
func NewHearts(value int) (Hearts, error) {
	h := Hearts(value)
	if !h.IsValid() {
		return 0, NewDomainError("shared", "NewHearts", ErrValueOutOfRange, fmt.Sprintf("hearts must be between 0 and %d", FullHearts))
	}
	return h, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Rank Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Rank represents a learner's position in the leaderboard.
type Rank int

const (
	MinRank  Rank = 1
	Unranked Rank = 0 // Not yet ranked
)

// IsValid checks if the rank is valid.
func (r Rank) IsValid() bool {
	return r >= MinRank
}

// Int returns the underlying int value.
func (r Rank) Int() int {
	return int(r)
}

// IsUnranked checks if the learner is not yet ranked.
func (r Rank) IsUnranked() bool {
	return r == Unranked
}

// IsTop returns true if the rank is in the top N.
func (r Rank) IsTop(n int) bool {
	return r.IsValid() && int(r) <= n
}

// Medal returns a medal emoji for top ranks.
func (r Rank) Medal() string {
	switch r {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// NewRank creates a new Rank with validation.
func NewRank(position int) (Rank, error) {
	if position < 0 {
		return Unranked, NewDomainError("shared", "NewRank", ErrNegativeValue, "rank cannot be negative")
	}
	return Rank(position), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Pagination represents pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Offset returns the offset for database queries.
func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the limit for database queries.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// NewPagination creates a new Pagination with defaults.
func NewPagination(page, pageSize int) Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// DefaultPagination returns default pagination.
func DefaultPagination() Pagination {
	return NewPagination(1, DefaultPageSize)
}

// Package shared contains the domain types, errors, events, and value
// objects used by every domain package. It has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Error kinds. The HTTP layer maps these to status codes with
// errors.Is, so every domain error carries exactly one of them.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")

	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")

	ErrServiceUnavailable = errors.New("service unavailable")
)

// DomainError ties an error kind to the domain and operation where it
// happened. Error text reads "learner.Register: email already registered".
type DomainError struct {
	Domain  string // "learner", "progression", "catalog"
	Op      string // operation that failed
	Kind    error  // one of the kind sentinels above
	Message string
	Err     error // underlying cause, optional
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches both the kind and the cause, so
// errors.Is(ErrLearnerNotFound, ErrNotFound) holds.
func (e *DomainError) Is(target error) bool {
	return (e.Kind != nil && errors.Is(e.Kind, target)) ||
		(e.Err != nil && errors.Is(e.Err, target))
}

// NewDomainError creates a domain error without an underlying cause.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message}
}

// WrapError attaches domain context to an underlying error.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message, Err: err}
}

// Learner errors.
var (
	ErrLearnerNotFound    = NewDomainError("learner", "Find", ErrNotFound, "learner not found")
	ErrEmailTaken         = NewDomainError("learner", "Register", ErrAlreadyExists, "email already registered")
	ErrInvalidEmail       = NewDomainError("learner", "Validate", ErrInvalidFormat, "invalid email address")
	ErrInvalidCredentials = NewDomainError("learner", "Authenticate", ErrUnauthorized, "invalid email or password")
	ErrWeakPassword       = NewDomainError("learner", "Validate", ErrInvalidInput, "password does not meet requirements")
)

// Progression errors.
var (
	ErrEmptyLesson = NewDomainError("progression", "Score", ErrInvalidInput, "lesson has no items to score")
)

// Catalog errors.
var (
	ErrLanguageNotFound = NewDomainError("catalog", "FindLanguage", ErrNotFound, "language not found")
	ErrLessonNotFound   = NewDomainError("catalog", "FindLesson", ErrNotFound, "lesson not found")
	ErrMalformedCatalog = NewDomainError("catalog", "Load", ErrInvalidFormat, "catalog data is malformed")
)

// ErrCacheUnavailable is returned by cache reads when Redis is down or
// the ranking has not been built. Callers with a Postgres fallback
// degrade; the rest surface it as 503.
var ErrCacheUnavailable = NewDomainError("cache", "Connect", ErrServiceUnavailable, "cache is unavailable")

// IsNotFound reports whether err should surface as a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is any rejection of learner input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

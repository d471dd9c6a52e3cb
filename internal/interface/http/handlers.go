// Package http implements the REST API for the Stratos backend.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stratos-app/stratos-backend/internal/application/command"
	"github.com/stratos-app/stratos-backend/internal/application/query"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
	"github.com/stratos-app/stratos-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Stratos API",
		"version":     "v1",
		"description": "Language learning backend - progression, mastery and leaderboards",
		"endpoints": map[string]string{
			"health":      "/health",
			"register":    "/api/v1/auth/register",
			"login":       "/api/v1/auth/login",
			"languages":   "/api/v1/languages",
			"leaderboard": "/api/v1/leaderboard",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Learner   learnerDTO `json:"learner"`
}

// learnerDTO is the HTTP representation of a learner account.
type learnerDTO struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	DisplayName       string   `json:"display_name"`
	XP                int      `json:"xp"`
	Level             int      `json:"level"`
	Streak            int      `json:"streak"`
	Hearts            int      `json:"hearts"`
	CurrentLanguage   string   `json:"current_language,omitempty"`
	LanguagesLearning []string `json:"languages_learning"`
}

func toLearnerDTO(l *learner.Learner) learnerDTO {
	langs := make([]string, 0, len(l.LanguagesLearning))
	for _, code := range l.LanguagesLearning {
		langs = append(langs, code.String())
	}
	return learnerDTO{
		ID:                l.ID,
		Email:             l.Email.String(),
		DisplayName:       l.DisplayName,
		XP:                l.XP.Int(),
		Level:             l.Level().Int(),
		Streak:            l.Streak,
		Hearts:            l.Hearts.Int(),
		CurrentLanguage:   l.CurrentLanguage.String(),
		LanguagesLearning: langs,
	}
}

// handleRegister handles POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.RegisterLearnerHandler.Handle(r.Context(), command.RegisterLearnerCommand{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	s.writeAuthResponse(w, r, http.StatusCreated, result.Learner)
}

// handleLogin handles POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.AuthenticateLearnerHandler.Handle(r.Context(), command.AuthenticateLearnerCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	s.writeAuthResponse(w, r, http.StatusOK, result.Learner)
}

// writeAuthResponse issues a token for the learner and writes the auth payload.
func (s *Server) writeAuthResponse(w http.ResponseWriter, r *http.Request, status int, l *learner.Learner) {
	token, err := s.deps.Tokens.Issue(l.ID)
	if err != nil {
		s.logger.Error("issue token failed", logger.Err(err), logger.String("request_id", requestIDFrom(r.Context())))
		writeJSONError(w, http.StatusInternalServerError, "token_error", "Failed to issue access token")
		return
	}

	writeJSON(w, status, authResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.deps.Tokens.TTL()).UTC(),
		Learner:   toLearnerDTO(l),
	})
}

// handleMe handles GET /api/v1/auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.handleGetProfile(w, r)
}

// ══════════════════════════════════════════════════════════════════════════════
// LANGUAGE & LESSON HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListLanguages handles GET /api/v1/languages
func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := s.deps.ListLanguagesHandler.Handle(r.Context(), query.ListLanguagesQuery{
		LearnerID: learnerIDFromContext(r.Context()),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, languages)
}

// handleStartLanguage handles POST /api/v1/languages/{code}/start
func (s *Server) handleStartLanguage(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.StartLanguageHandler.Handle(r.Context(), command.StartLanguageCommand{
		LearnerID: learnerIDFromContext(r.Context()),
		Language:  r.PathValue("code"),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListLessons handles GET /api/v1/languages/{code}/lessons
func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListLessonsHandler.Handle(r.Context(), query.ListLessonsQuery{
		LearnerID: learnerIDFromContext(r.Context()),
		Language:  r.PathValue("code"),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetLesson handles GET /api/v1/languages/{code}/lessons/{id}
func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.deps.GetLessonHandler.Handle(r.Context(), query.GetLessonQuery{
		Language: r.PathValue("code"),
		LessonID: r.PathValue("id"),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}

type completeLessonRequest struct {
	Answers []string `json:"answers"`
}

// handleCompleteLesson handles POST /api/v1/languages/{code}/lessons/{id}/complete
func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req completeLessonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CompleteLessonHandler.Handle(r.Context(), command.CompleteLessonCommand{
		LearnerID: learnerIDFromContext(r.Context()),
		Language:  r.PathValue("code"),
		LessonID:  r.PathValue("id"),
		Answers:   req.Answers,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetFlashcards handles GET /api/v1/languages/{code}/flashcards
func (s *Server) handleGetFlashcards(w http.ResponseWriter, r *http.Request) {
	decks, err := s.deps.GetFlashcardsHandler.Handle(r.Context(), query.GetFlashcardsQuery{
		Language: r.PathValue("code"),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, decks)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS & SOCIAL HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListAchievements handles GET /api/v1/achievements
func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.deps.ListAchievementsHandler.Handle(r.Context(), query.ListAchievementsQuery{
		LearnerID: learnerIDFromContext(r.Context()),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, achievements)
}

// handleGetLeaderboard handles GET /api/v1/leaderboard
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetLeaderboardHandler.Handle(r.Context(), query.GetLeaderboardQuery{
		Limit: getQueryParamInt(r, "limit", 0),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetProfile handles GET /api/v1/profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.GetProfileHandler.Handle(r.Context(), query.GetProfileQuery{
		LearnerID: learnerIDFromContext(r.Context()),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// handleUpdateProfile handles PUT /api/v1/profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := s.deps.UpdateProfileHandler.Handle(r.Context(), command.UpdateProfileCommand{
		LearnerID:   learnerIDFromContext(r.Context()),
		DisplayName: req.DisplayName,
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLearnerDTO(l))
}

// handleRefillHearts handles POST /api/v1/profile/hearts/refill
func (s *Server) handleRefillHearts(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.RefillHeartsHandler.Handle(r.Context(), command.RefillHeartsCommand{
		LearnerID: learnerIDFromContext(r.Context()),
	})
	if err != nil {
		s.writeCommandError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"hearts": l.Hearts.Int()})
}

// ══════════════════════════════════════════════════════════════════════════════
// ADMIN HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRebuildLeaderboard handles POST /admin/leaderboard/rebuild
func (s *Server) handleRebuildLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.deps.RebuildLeaderboard == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Leaderboard rebuild is not configured")
		return
	}

	if err := s.deps.RebuildLeaderboard(r.Context()); err != nil {
		s.logger.Error("leaderboard rebuild failed", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "rebuild_failed", "Leaderboard rebuild failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rebuilt"})
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DECODING & ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeJSONErrorWithDetails(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON", err.Error())
		return false
	}
	return true
}

// writeCommandError maps application and domain errors to HTTP responses.
func (s *Server) writeCommandError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, shared.ErrEmailTaken):
		writeJSONError(w, http.StatusConflict, "email_taken", "This email is already registered")
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, shared.ErrCacheUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "cache_unavailable", "Service temporarily unavailable")
	default:
		s.logger.Error("request failed",
			logger.Err(err),
			logger.String("path", r.URL.Path),
			logger.String("request_id", requestIDFrom(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

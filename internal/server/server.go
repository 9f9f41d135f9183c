package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"youthwell/internal/app"
	"youthwell/internal/ratelimit"
	"youthwell/internal/util"
	"youthwell/pkg/auth"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

const serviceVersion = "1.0.0"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	Limiter        *ratelimit.FixedWindowLimiter
	AuthLimiter    *ratelimit.FixedWindowLimiter
	TrustedProxies *util.TrustedProxies
	Development    bool
}

// Server exposes the REST API.
type Server struct {
	app         *app.App
	limiter     *ratelimit.FixedWindowLimiter
	authLimiter *ratelimit.FixedWindowLimiter
	trusted     *util.TrustedProxies
	development bool
	mux         *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:         cfg.App,
		limiter:     cfg.Limiter,
		authLimiter: cfg.AuthLimiter,
		trusted:     cfg.TrustedProxies,
		development: cfg.Development,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the handler with the middleware chain applied.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.mux
	h = util.WithRecover(s.development, h)
	h = util.WithCORS(h)
	h = util.WithSecurityHeaders(h)
	h = util.WithRequestLog(h)
	h = util.WithRequestID(h)
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("/", s.handleNotFound)

	// auth
	s.mux.Handle("POST /api/auth/register", s.rateLimited(s.authLimiter, http.HandlerFunc(s.handleRegister)))
	s.mux.Handle("POST /api/auth/login", s.rateLimited(s.authLimiter, http.HandlerFunc(s.handleLogin)))
	s.mux.Handle("POST /api/auth/anonymous", s.rateLimited(s.authLimiter, http.HandlerFunc(s.handleAnonymous)))
	s.mux.Handle("GET /api/auth/profile", s.authenticated(s.handleProfile))
	s.mux.Handle("PUT /api/auth/profile", s.authenticated(s.handleUpdateProfile))
	s.mux.Handle("POST /api/auth/convert", s.rateLimited(s.authLimiter, s.authenticated(s.handleConvert)))
	s.mux.Handle("GET /api/auth/verify", s.authenticated(s.handleVerify))

	// journal
	s.mux.Handle("GET /api/journal", s.limited(s.authenticated(s.handleListJournals)))
	s.mux.Handle("POST /api/journal", s.limited(s.authenticated(s.handleCreateJournal)))
	s.mux.Handle("GET /api/journal/analytics/mood", s.limited(s.authenticated(s.handleMoodAnalytics)))
	s.mux.Handle("GET /api/journal/{id}", s.limited(s.authenticated(s.handleGetJournal)))
	s.mux.Handle("PUT /api/journal/{id}", s.limited(s.authenticated(s.handleUpdateJournal)))
	s.mux.Handle("DELETE /api/journal/{id}", s.limited(s.authenticated(s.handleDeleteJournal)))

	// progress
	s.mux.Handle("GET /api/progress", s.limited(s.authenticated(s.handleListGoals)))
	s.mux.Handle("POST /api/progress", s.limited(s.authenticated(s.handleCreateGoal)))
	s.mux.Handle("GET /api/progress/analytics/summary", s.limited(s.authenticated(s.handleGoalSummary)))
	s.mux.Handle("GET /api/progress/{id}", s.limited(s.authenticated(s.handleGetGoal)))
	s.mux.Handle("PUT /api/progress/{id}", s.limited(s.authenticated(s.handleUpdateGoal)))
	s.mux.Handle("PATCH /api/progress/{id}/value", s.limited(s.authenticated(s.handleAdjustGoalValue)))
	s.mux.Handle("DELETE /api/progress/{id}", s.limited(s.authenticated(s.handleDeleteGoal)))

	// chat
	s.mux.Handle("GET /api/chat/sessions", s.limited(s.authenticated(s.handleListSessions)))
	s.mux.Handle("POST /api/chat/sessions", s.limited(s.authenticated(s.handleCreateSession)))
	s.mux.Handle("PUT /api/chat/sessions/{id}", s.limited(s.authenticated(s.handleUpdateSession)))
	s.mux.Handle("GET /api/chat/sessions/{id}/messages", s.limited(s.authenticated(s.handleListMessages)))
	s.mux.Handle("POST /api/chat/sessions/{id}/messages", s.limited(s.authenticated(s.handlePostMessage)))
	s.mux.Handle("POST /api/chat/ai-chat", s.limited(http.HandlerFunc(s.handleAIChat)))
	s.mux.Handle("POST /api/chat/journal-insights", s.limited(http.HandlerFunc(s.handleJournalInsights)))

	// media
	s.mux.Handle("POST /api/media/upload", s.limited(s.authenticated(s.handleUpload)))
	s.mux.Handle("GET /api/media/user/files", s.limited(s.authenticated(s.handleListMedia)))
	s.mux.Handle("GET /api/media/{filename}", s.optionallyAuthenticated(s.handleStreamMedia))
	s.mux.Handle("GET /api/media/{filename}/info", s.limited(s.authenticated(s.handleMediaInfo)))
	s.mux.Handle("DELETE /api/media/{id}", s.limited(s.authenticated(s.handleDeleteMedia)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   serviceVersion,
		"service":   "YouthWell Backend",
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "YouthWell Backend Server",
		"version": serviceVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"health":   "/health",
			"auth":     "/api/auth",
			"journal":  "/api/journal",
			"progress": "/api/progress",
			"chat":     "/api/chat",
			"media":    "/api/media",
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Endpoint not found",
		"message": fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
}

// rate limiting

func (s *Server) rateLimited(limiter *ratelimit.FixedWindowLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(util.ClientIP(r, s.trusted)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limited(next http.Handler) http.Handler {
	return s.rateLimited(s.limiter, next)
}

// auth wrappers

type authHandler func(http.ResponseWriter, *http.Request, domain.User)

// authenticated resolves the bearer token before invoking next. Missing
// tokens get 401, bad or expired tokens 403, and tokens for missing or
// deactivated accounts 401.
func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		user, err := s.app.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				writeError(w, http.StatusForbidden, "Invalid or expired token")
			case errors.Is(err, app.ErrUserDisabled):
				writeError(w, http.StatusUnauthorized, "Invalid or inactive user")
			default:
				util.LoggerFromContext(r.Context()).Error("authentication failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		next(w, r, user)
	})
}

// optionallyAuthenticated resolves the bearer token when one is present but
// never rejects the request. Invalid tokens leave the user zero-valued.
func (s *Server) optionallyAuthenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user domain.User
		if token, ok := bearerToken(r); ok {
			if u, err := s.app.Authenticate(token); err == nil {
				user = u
			}
		}
		next(w, r, user)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}

// helpers

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps lookup failures, hiding ownership violations behind
// the same 404 an absent row produces.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	util.LoggerFromContext(r.Context()).Error("storage error", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// Package httpapi exposes the portfolio services over HTTP. It only
// translates: bearer extraction into the request context, JSON in and
// out, and the error taxonomy onto status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/identity"
	"github.com/skillsnap/portfolio/model"
	"github.com/skillsnap/portfolio/observe"
	"github.com/skillsnap/portfolio/service"
	"github.com/skillsnap/portfolio/store"
)

// DenialRecorder receives gate denial outcomes for metrics.
// observe.Metrics satisfies it.
type DenialRecorder interface {
	Denied(ctx context.Context, reason string)
}

type nopDenials struct{}

func (nopDenials) Denied(context.Context, string) {}

// Config wires the HTTP surface.
type Config struct {
	Profiles *service.Profiles
	Projects *service.Entity[model.Project]
	Skills   *service.Entity[model.Skill]
	Auth     *service.Auth
	Logger   observe.Logger
	Denials  DenialRecorder
}

// Server is the HTTP front of the portfolio API.
type Server struct {
	mux     *http.ServeMux
	log     observe.Logger
	denials DenialRecorder
}

// New creates a server with all routes registered.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger{}
	}
	if cfg.Denials == nil {
		cfg.Denials = nopDenials{}
	}

	s := &Server{
		mux:     http.NewServeMux(),
		log:     cfg.Logger,
		denials: cfg.Denials,
	}

	registerEntity(s, "/api/profiles", cfg.Profiles.Entity)
	registerEntity(s, "/api/projects", cfg.Projects)
	registerEntity(s, "/api/skills", cfg.Skills)

	s.mux.HandleFunc("GET /api/profiles/my-profile", func(w http.ResponseWriter, r *http.Request) {
		profile, err := cfg.Profiles.MyProfile(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, profile)
	})

	s.mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, service.ErrInvalidRegistration)
			return
		}
		session, err := cfg.Auth.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, session)
	})

	s.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, service.ErrInvalidCredentials)
			return
		}
		session, err := cfg.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, session)
	})

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler returns the full handler chain.
func (s *Server) Handler() http.Handler {
	return bearerMiddleware(s.mux)
}

// bearerMiddleware moves the Authorization bearer token, when present,
// into the request context for the gate.
func bearerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := auth.ParseBearer(r.Header.Get("Authorization")); ok {
			r = r.WithContext(auth.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. Every gate
// denial surfaces the same body regardless of the underlying reason;
// the reason is only logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case auth.Denied(err):
		s.denials.Denied(r.Context(), auth.Reason(err))
		s.log.Info(r.Context(), "request denied",
			observe.F("path", r.URL.Path),
			observe.F("reason", err.Error()),
		)
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authorized"})
	case errors.Is(err, service.ErrInvalidCredentials):
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, identity.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, service.ErrInvalidRegistration),
		errors.Is(err, identity.ErrEmailTaken):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		s.writeJSON(w, http.StatusConflict, map[string]string{"error": "conflict"})
	default:
		s.log.Error(r.Context(), "request failed",
			observe.F("path", r.URL.Path),
			observe.F("error", err.Error()),
		)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// internal/web/server.go
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/directory"
	"pizza-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CookieOptions control the session cookie handed to browsers.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Dependencies are the collaborators a Server is built from.
type Dependencies struct {
	Directory *directory.Client
	Sessions  *session.Store
	Redis     Pinger
	Settings  dashboard.Settings
	Cookie    CookieOptions
	Logger    logger.Logger
	// Metrics exposes /metrics when set.
	Metrics bool
}

// Server is the admin dashboard web front end.
type Server struct {
	directory *directory.Client
	sessions  *session.Store
	redis     Pinger
	cookie    CookieOptions
	logger    logger.Logger
	errors    *errors.ErrorHandler
	validator *validator.Validate
	views     *viewModels
	pages     *pages
	metrics   bool
}

func NewServer(deps Dependencies) (*Server, error) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if deps.Cookie.Name == "" {
		deps.Cookie.Name = "pizza_session"
	}

	idle := deps.Cookie.MaxAge
	if deps.Sessions != nil {
		idle = deps.Sessions.TTL()
	}

	tmpl, err := loadPages()
	if err != nil {
		return nil, err
	}

	return &Server{
		directory: deps.Directory,
		sessions:  deps.Sessions,
		redis:     deps.Redis,
		cookie:    deps.Cookie,
		logger:    log,
		errors:    errors.NewErrorHandler(log),
		validator: newValidator(),
		views:     newViewModels(deps.Directory, deps.Settings, idle, log),
		pages:     tmpl,
		metrics:   deps.Metrics,
	}, nil
}

// Router wires every route onto a chi mux.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.instrument)
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
	})
	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	if s.metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/login", s.loginPage)
	r.Post("/login", s.login)
	r.Get("/register", s.registerPage)
	r.Post("/register", s.register)

	r.Group(func(pr chi.Router) {
		pr.Use(s.withSession)
		pr.Post("/logout", s.logout)

		pr.Route(dashboardPath, func(ar chi.Router) {
			ar.Use(s.requireAdmin)

			ar.Get("/", s.dashboard)
			ar.Post("/error/dismiss", s.dismissError)

			ar.Post("/franchises/page", s.franchisePage)
			ar.Post("/franchises/filter", s.franchiseFilter)
			ar.Post("/franchises/create", s.requestCreateFranchise)
			ar.Post("/franchises/{franchiseID}/close", s.requestCloseFranchise)
			ar.Post("/franchises/{franchiseID}/stores/{storeID}/close", s.requestCloseStore)

			ar.Post("/users/open", s.openUsers)
			ar.Post("/users/close", s.closeUsers)
			ar.Post("/users/search", s.searchUsers)
			ar.Post("/users/page", s.userPage)
			ar.Post("/users/{id}/delete", s.deleteUser)

			ar.Get("/create-franchise", s.createFranchisePage)
			ar.Post("/create-franchise", s.createFranchise)
			ar.Get("/close-franchise", s.closeFranchisePage)
			ar.Post("/close-franchise", s.closeFranchise)
			ar.Get("/close-store", s.closeStorePage)
			ar.Post("/close-store", s.closeStore)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found"})
	})

	return r
}

// ActiveSessions reports how many dashboard view-models are held in memory.
func (s *Server) ActiveSessions() int {
	return s.views.len()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "redis": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/common/metrics"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const sessionKey ctxKey = "session"

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		fields := map[string]interface{}{
			"requestId": chimw.GetReqID(r.Context()),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"duration":  time.Since(start).String(),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Error("request failed", fields)
			return
		}
		s.logger.Debug("request served", fields)
	})
}

// instrument counts requests by matched route pattern so ids in paths do
// not explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// withSession resolves the session cookie. Requests without a live session
// are sent to the login page.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cookie.Name)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		sess, err := s.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if errors.IsUnauthorized(err) {
				s.views.drop(cookie.Value)
				s.clearCookie(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			s.errors.Handle("load_session", err)
			s.render(w, http.StatusInternalServerError, "error", pageData{
				Title: "Error",
				Flash: errors.UserMessage(err),
			})
			return
		}

		if err := s.sessions.Touch(r.Context(), sess.ID); err != nil {
			s.logger.Warn("failed to extend session", map[string]interface{}{"sessionId": sess.ID, "error": err.Error()})
		}
		s.views.touch(sess.ID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// requireAdmin answers 404 for principals without the admin role before any
// Directory Service call is made.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if sess == nil || !dashboard.CanAdminister(sess.Principal()) {
			s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

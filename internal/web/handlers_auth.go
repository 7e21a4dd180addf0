package web

import (
	"net/http"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/session"
)

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", pageData{Title: "Login", Form: loginForm{}})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	form, err := parseLoginForm(r)
	if err != nil {
		s.render(w, http.StatusBadRequest, "login", pageData{Title: "Login", Form: loginForm{}, Flash: errors.UserMessage(err)})
		return
	}
	if fieldErrs := s.validate(form); fieldErrs != nil {
		s.render(w, http.StatusBadRequest, "login", pageData{
			Title:  "Login",
			Form:   loginForm{Email: form.Email},
			Errors: fieldErrs,
		})
		return
	}

	auth, err := s.directory.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		stdErr := s.errors.Handle("login", err)
		status := errors.HTTPStatus(stdErr)
		flash := errors.UserMessage(stdErr)
		if errors.IsUnauthorized(stdErr) || errors.IsNotFound(stdErr) {
			status = http.StatusUnauthorized
			flash = "Invalid email or password."
		}
		s.render(w, status, "login", pageData{
			Title: "Login",
			Form:  loginForm{Email: form.Email},
			Flash: flash,
		})
		return
	}

	sess, err := s.sessions.Create(r.Context(), auth)
	if err != nil {
		s.errors.Handle("create_session", err)
		s.render(w, http.StatusInternalServerError, "login", pageData{
			Title: "Login",
			Form:  loginForm{Email: form.Email},
			Flash: errors.UserMessage(err),
		})
		return
	}

	s.setCookie(w, sess.ID)
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", pageData{Title: "Register", Form: registerForm{}})
}

// register creates a diner account and signs the new user in.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	form, err := parseRegisterForm(r)
	if err != nil {
		s.render(w, http.StatusBadRequest, "register", pageData{Title: "Register", Form: registerForm{}, Flash: errors.UserMessage(err)})
		return
	}
	data := pageData{Title: "Register", Form: registerForm{Name: form.Name, Email: form.Email}}
	if fieldErrs := s.validate(form); fieldErrs != nil {
		data.Errors = fieldErrs
		s.render(w, http.StatusBadRequest, "register", data)
		return
	}

	auth, err := s.directory.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		stdErr := s.errors.Handle("register", err)
		data.Flash = errors.UserMessage(stdErr)
		s.render(w, errors.HTTPStatus(stdErr), "register", data)
		return
	}

	sess, err := s.sessions.Create(r.Context(), auth)
	if err != nil {
		s.errors.Handle("create_session", err)
		data.Flash = errors.UserMessage(err)
		s.render(w, http.StatusInternalServerError, "register", data)
		return
	}

	s.logger.Info("user registered", map[string]interface{}{"userId": auth.User.ID.String()})
	s.setCookie(w, sess.ID)
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.directory.WithToken(sess.Token).Logout(r.Context()); err != nil {
		s.logger.Warn("directory logout failed", map[string]interface{}{"sessionId": sess.ID, "error": err.Error()})
	}
	s.endSession(w, r, sess)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// endSession forgets everything held for sess: the stored session, its
// view-model and the browser cookie.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.views.drop(sess.ID)
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		s.logger.Warn("failed to delete session", map[string]interface{}{"sessionId": sess.ID, "error": err.Error()})
	}
	s.clearCookie(w)
}

func (s *Server) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

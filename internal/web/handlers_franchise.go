package web

import (
	"net/http"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/models"
	"pizza-dashboard/internal/session"
)

func (s *Server) createFranchisePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.render(w, http.StatusOK, "create-franchise", pageData{
		Title: "Create franchise",
		User:  userOf(sess),
		Form:  createFranchiseForm{},
	})
}

func (s *Server) createFranchise(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	form, err := parseCreateFranchiseForm(r)
	if err != nil {
		s.badRequest(w, r, "malformed form body")
		return
	}
	data := pageData{Title: "Create franchise", User: userOf(sess), Form: form}

	if fieldErrs := s.validate(form); fieldErrs != nil {
		data.Errors = fieldErrs
		s.render(w, http.StatusBadRequest, "create-franchise", data)
		return
	}

	_, err = s.directory.WithToken(sess.Token).CreateFranchise(r.Context(), form.Name, []string{form.AdminEmail})
	if err != nil {
		if s.rejected(w, r, sess, "create_franchise", err) {
			return
		}
		stdErr := s.errors.Handle("create_franchise", err)
		data.Flash = errors.UserMessage(stdErr)
		if errors.IsNotFound(stdErr) {
			data.Flash = "No user is registered with that admin email."
		}
		s.render(w, errors.HTTPStatus(stdErr), "create-franchise", data)
		return
	}

	s.logger.Info("franchise created", map[string]interface{}{"name": form.Name, "userId": sess.User.ID.String()})
	s.refreshAndReturn(w, r)
}

func (s *Server) closeFranchisePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	franchise, ok := s.selectedFranchise(r, sess)
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}
	s.render(w, http.StatusOK, "close-franchise", pageData{
		Title:     "Close franchise",
		User:      userOf(sess),
		Franchise: &franchise,
	})
}

func (s *Server) closeFranchise(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if r.URL.Query().Get("franchise") == "" {
		s.badRequest(w, r, "franchise is required")
		return
	}
	franchise, ok := s.selectedFranchise(r, sess)
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}

	err := s.directory.WithToken(sess.Token).CloseFranchise(r.Context(), franchise.ID)
	if err != nil && !errors.IsNotFound(err) {
		if s.rejected(w, r, sess, "close_franchise", err) {
			return
		}
		stdErr := s.errors.Handle("close_franchise", err)
		s.render(w, errors.HTTPStatus(stdErr), "close-franchise", pageData{
			Title:     "Close franchise",
			User:      userOf(sess),
			Flash:     errors.UserMessage(stdErr),
			Franchise: &franchise,
		})
		return
	}

	s.logger.Info("franchise closed", map[string]interface{}{"franchiseId": franchise.ID.String(), "userId": sess.User.ID.String()})
	s.refreshAndReturn(w, r)
}

func (s *Server) closeStorePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	franchise, store, ok := s.selectedStore(r, sess)
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}
	s.render(w, http.StatusOK, "close-store", pageData{
		Title:     "Close store",
		User:      userOf(sess),
		Franchise: &franchise,
		Store:     &store,
	})
}

func (s *Server) closeStore(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if r.URL.Query().Get("franchise") == "" || r.URL.Query().Get("store") == "" {
		s.badRequest(w, r, "franchise and store are required")
		return
	}
	franchise, store, ok := s.selectedStore(r, sess)
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}

	err := s.directory.WithToken(sess.Token).CloseStore(r.Context(), franchise.ID, store.ID)
	if err != nil && !errors.IsNotFound(err) {
		if s.rejected(w, r, sess, "close_store", err) {
			return
		}
		stdErr := s.errors.Handle("close_store", err)
		s.render(w, errors.HTTPStatus(stdErr), "close-store", pageData{
			Title:     "Close store",
			User:      userOf(sess),
			Flash:     errors.UserMessage(stdErr),
			Franchise: &franchise,
			Store:     &store,
		})
		return
	}

	s.logger.Info("store closed", map[string]interface{}{
		"franchiseId": franchise.ID.String(),
		"storeId":     store.ID.String(),
		"userId":      sess.User.ID.String(),
	})
	s.refreshAndReturn(w, r)
}

// selectedFranchise looks the ?franchise= id up on the page the dashboard
// currently shows. Only franchises the admin could click are closable here.
func (s *Server) selectedFranchise(r *http.Request, sess *session.Session) (models.Franchise, bool) {
	id := models.ID(r.URL.Query().Get("franchise"))
	if id == "" {
		return models.Franchise{}, false
	}
	return s.views.get(sess).View().FranchisePage.FindFranchise(id)
}

func (s *Server) selectedStore(r *http.Request, sess *session.Session) (models.Franchise, models.Store, bool) {
	franchise, ok := s.selectedFranchise(r, sess)
	if !ok {
		return models.Franchise{}, models.Store{}, false
	}
	store, ok := franchise.FindStore(models.ID(r.URL.Query().Get("store")))
	return franchise, store, ok
}

// rejected answers for credential failures: unauthorized ends the session,
// forbidden renders the access-denied page. It reports whether it responded.
func (s *Server) rejected(w http.ResponseWriter, r *http.Request, sess *session.Session, operation string, err error) bool {
	switch {
	case errors.IsUnauthorized(err):
		s.errors.Handle(operation, err)
		s.endSession(w, r, sess)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return true
	case errors.IsForbidden(err):
		s.errors.Handle(operation, err)
		s.render(w, http.StatusForbidden, "forbidden", pageData{Title: "Forbidden", User: userOf(sess)})
		return true
	}
	return false
}

// refreshAndReturn reloads the franchise page the dashboard shows and sends
// the browser back to it.
func (s *Server) refreshAndReturn(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, dashboard.Refresh{})
}

package web

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/models"
	"pizza-dashboard/internal/session"

	"github.com/go-chi/chi/v5"
)

// mounted returns the session's view-model, mounting it for the session's
// principal the first time it is used.
func (s *Server) mounted(ctx context.Context, sess *session.Session) (*dashboard.ViewModel, dashboard.View, error) {
	vm := s.views.get(sess)
	if vm.State().Mounted {
		return vm, vm.View(), nil
	}
	view, err := vm.Dispatch(ctx, dashboard.Mount{Principal: sess.Principal()})
	return vm, view, err
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	vm, view, err := s.mounted(r.Context(), sess)
	if err == nil && r.URL.Query().Get("refresh") != "" {
		view, err = vm.Dispatch(r.Context(), dashboard.Refresh{})
	}
	if err != nil && !stderrors.Is(err, dashboard.ErrNotFound) {
		s.errors.Handle("render_dashboard", err)
	}

	switch {
	case view.NotFound:
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
	case view.Reauthenticate:
		s.endSession(w, r, sess)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	case view.AccessDenied:
		s.views.drop(sess.ID)
		s.render(w, http.StatusForbidden, "forbidden", pageData{Title: "Forbidden", User: userOf(sess)})
	default:
		s.render(w, http.StatusOK, "dashboard", pageData{Title: "Mama Ricci's kitchen", User: userOf(sess), View: view})
	}
}

// dispatch runs action against the session's view-model and answers with a
// redirect: back to the dashboard, to the login page when the token was
// rejected, or to the flow a navigation intent selected.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, action dashboard.Action) {
	sess := sessionFrom(r.Context())
	vm, view, err := s.mounted(r.Context(), sess)
	if err == nil {
		view, err = vm.Dispatch(r.Context(), action)
	}
	if err != nil && !stderrors.Is(err, dashboard.ErrNotFound) {
		s.errors.Handle(action.Name(), err)
	}

	switch {
	case view.NotFound:
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
	case view.Reauthenticate:
		s.endSession(w, r, sess)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
	case view.AccessDenied:
		s.views.drop(sess.ID)
		s.render(w, http.StatusForbidden, "forbidden", pageData{Title: "Forbidden", User: userOf(sess)})
	case view.Navigation != nil:
		http.Redirect(w, r, navigationURL(view.Navigation), http.StatusSeeOther)
	default:
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
	}
}

func (s *Server) dismissError(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, dashboard.DismissError{})
}

func (s *Server) franchisePage(w http.ResponseWriter, r *http.Request) {
	delta, ok := s.delta(w, r)
	if !ok {
		return
	}
	s.dispatch(w, r, dashboard.RequestFranchisePage{Delta: delta})
}

func (s *Server) franchiseFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "malformed form body")
		return
	}
	s.dispatch(w, r, dashboard.SubmitFranchiseFilter{Text: r.PostForm.Get("filterFranchise")})
}

func (s *Server) openUsers(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, dashboard.OpenUserList{})
}

func (s *Server) closeUsers(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, dashboard.CloseUserList{})
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "malformed form body")
		return
	}
	s.dispatch(w, r, dashboard.SetUserSearch{Text: r.PostForm.Get("name")})
}

func (s *Server) userPage(w http.ResponseWriter, r *http.Request) {
	delta, ok := s.delta(w, r)
	if !ok {
		return
	}
	s.dispatch(w, r, dashboard.RequestUserPage{Delta: delta})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		s.badRequest(w, r, "user id is required")
		return
	}
	s.dispatch(w, r, dashboard.RequestDeleteUser{ID: models.ID(id)})
}

func (s *Server) requestCreateFranchise(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, dashboard.RequestCreateFranchise{})
}

// requestCloseFranchise hands a franchise on the displayed page to the close
// confirmation flow.
func (s *Server) requestCloseFranchise(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	franchise, ok := s.views.get(sess).View().FranchisePage.FindFranchise(models.ID(chi.URLParam(r, "franchiseID")))
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}
	s.dispatch(w, r, dashboard.RequestCloseFranchise{Franchise: franchise})
}

func (s *Server) requestCloseStore(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	franchise, ok := s.views.get(sess).View().FranchisePage.FindFranchise(models.ID(chi.URLParam(r, "franchiseID")))
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}
	store, ok := franchise.FindStore(models.ID(chi.URLParam(r, "storeID")))
	if !ok {
		s.render(w, http.StatusNotFound, "not-found", pageData{Title: "Not found", User: userOf(sess)})
		return
	}
	s.dispatch(w, r, dashboard.RequestCloseStore{Franchise: franchise, Store: store})
}

// delta reads the ?delta= page offset.
func (s *Server) delta(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("delta")
	delta, err := strconv.Atoi(raw)
	if err != nil || delta == 0 {
		s.badRequest(w, r, "delta must be a non-zero integer")
		return 0, false
	}
	return delta, true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, details string) {
	err := errors.NewValidationError(details)
	s.render(w, errors.HTTPStatus(err), "error", pageData{
		Title: "Bad request",
		User:  userOf(sessionFrom(r.Context())),
		Flash: errors.UserMessage(err),
	})
}

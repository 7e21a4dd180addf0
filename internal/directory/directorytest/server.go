// Package directorytest provides an in-process fake of the JWT Pizza service
// for tests of code that talks to it over HTTP.
package directorytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"pizza-dashboard/internal/models"

	"github.com/go-chi/chi/v5"
)

// Call records one request received by the fake.
type Call struct {
	Method string
	Path   string
	Query  map[string]string
	Token  string
}

// Server is an httptest server backed by in-memory users and franchises.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      []models.User
	franchises []models.Franchise
	tokens     map[string]models.ID
	failures   map[string]int
	calls      []Call
	nextID     int
}

// AdminUser and DinerUser are seeded by NewServer.
var (
	AdminUser = models.User{ID: "1", Name: "Admin Name", Email: "a@jwt.com", Password: "admin", Roles: []models.RoleAssignment{{Role: models.RoleAdmin}}}
	DinerUser = models.User{ID: "3", Name: "Kai Chen", Email: "d@jwt.com", Password: "a", Roles: []models.RoleAssignment{{Role: models.RoleDiner}}}
)

func NewServer() *Server {
	s := &Server{
		users:    []models.User{AdminUser, DinerUser},
		tokens:   make(map[string]models.ID),
		failures: make(map[string]int),
		nextID:   100,
		franchises: []models.Franchise{
			{ID: "2", Name: "LotaPizza", Admins: []models.User{{ID: "4", Name: "Lota", Email: "l@jwt.com"}}, Stores: []models.Store{{ID: "4", Name: "Lehi", TotalRevenue: 0.25}}},
			{ID: "3", Name: "PizzaCorp", Stores: []models.Store{{ID: "7", Name: "Spanish Fork"}}},
			{ID: "4", Name: "topSpot", Stores: []models.Store{}},
		},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Put("/api/auth", s.login)
	r.Post("/api/auth", s.register)
	r.With(s.authenticated).Delete("/api/auth", s.logout)
	r.With(s.authenticated).Get("/api/user/me", s.me)
	r.With(s.authenticated, s.adminOnly).Get("/api/user", s.listUsers)
	r.With(s.authenticated, s.adminOnly).Delete("/api/user/{id}", s.deleteUser)
	r.Get("/api/franchise", s.listFranchises)
	r.With(s.authenticated, s.adminOnly).Post("/api/franchise", s.createFranchise)
	r.With(s.authenticated, s.adminOnly).Delete("/api/franchise/{id}", s.closeFranchise)
	r.With(s.authenticated, s.adminOnly).Delete("/api/franchise/{fid}/store/{sid}", s.closeStore)
	r.With(s.authenticated, s.adminOnly).Post("/api/franchise/{fid}/store", s.createStore)

	s.Server = httptest.NewServer(r)
	return s
}

// SetUsers replaces the user directory.
func (s *Server) SetUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User(nil), users...)
}

func (s *Server) SetFranchises(franchises []models.Franchise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.franchises = append([]models.Franchise(nil), franchises...)
}

// Users returns the current user directory.
func (s *Server) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

func (s *Server) Franchises() []models.Franchise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Franchise(nil), s.franchises...)
}

// Fail makes every method+path request answer with status until ClearFailures.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// IssueToken registers token as a valid credential for the user with id.
func (s *Server) IssueToken(token string, id models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = id
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := make(map[string]string)
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Token:  strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
		})
		status, fail := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		id, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		r.Header.Set("X-Fake-User", id.String())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.findUser(models.ID(r.Header.Get("X-Fake-User")))
		if !ok || !user.HasRole(models.RoleAdmin) {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "unable to perform action"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) findUser(id models.ID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email && u.Password == req.Password {
			token := "token-" + u.ID.String()
			s.tokens[token] = u.ID
			writeJSON(w, http.StatusOK, models.AuthResponse{User: withoutPassword(u), Token: token})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown user"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "name, email, and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{
		ID:       s.allocID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    []models.RoleAssignment{{Role: models.RoleDiner}},
	}
	s.users = append(s.users, u)
	token := "token-" + u.ID.String()
	s.tokens[token] = u.ID
	writeJSON(w, http.StatusOK, models.AuthResponse{User: withoutPassword(u), Token: token})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, ok := s.findUser(models.ID(r.Header.Get("X-Fake-User")))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, withoutPassword(user))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, withoutPassword(u))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.UserList{Users: users})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
}

func (s *Server) listFranchises(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	pattern := r.URL.Query().Get("name")
	if pattern == "" {
		pattern = "*"
	}

	s.mu.Lock()
	matched := make([]models.Franchise, 0, len(s.franchises))
	for _, f := range s.franchises {
		if MatchPattern(pattern, f.Name) {
			matched = append(matched, f)
		}
	}
	s.mu.Unlock()

	start := page * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, http.StatusOK, models.FranchiseList{Franchises: matched[start:end], More: end < len(matched)})
}

func (s *Server) createFranchise(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFranchiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f := models.Franchise{ID: s.allocID(), Name: req.Name, Stores: []models.Store{}}
	for _, a := range req.Admins {
		found := false
		for _, u := range s.users {
			if u.Email == a.Email {
				f.Admins = append(f.Admins, models.User{ID: u.ID, Name: u.Name, Email: u.Email})
				found = true
			}
		}
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("unknown user for franchise admin %s provided", a.Email)})
			return
		}
	}
	s.franchises = append(s.franchises, f)
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) closeFranchise(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.franchises {
		if f.ID == id {
			s.franchises = append(s.franchises[:i], s.franchises[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "franchise deleted"})
}

func (s *Server) closeStore(w http.ResponseWriter, r *http.Request) {
	fid := models.ID(chi.URLParam(r, "fid"))
	sid := models.ID(chi.URLParam(r, "sid"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.franchises {
		if f.ID != fid {
			continue
		}
		stores := make([]models.Store, 0, len(f.Stores))
		for _, st := range f.Stores {
			if st.ID != sid {
				stores = append(stores, st)
			}
		}
		s.franchises[i].Stores = stores
		writeJSON(w, http.StatusOK, map[string]string{"message": "store deleted"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "franchise not found"})
}

func (s *Server) createStore(w http.ResponseWriter, r *http.Request) {
	fid := models.ID(chi.URLParam(r, "fid"))
	var req models.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.franchises {
		if f.ID == fid {
			st := models.Store{ID: s.allocID(), Name: req.Name}
			s.franchises[i].Stores = append(s.franchises[i].Stores, st)
			writeJSON(w, http.StatusOK, st)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "franchise not found"})
}

// allocID must be called with s.mu held.
func (s *Server) allocID() models.ID {
	s.nextID++
	return models.ID(strconv.Itoa(s.nextID))
}

// MatchPattern reports whether name matches a "*" wildcard pattern, ignoring case.
func MatchPattern(pattern, name string) bool {
	pattern = strings.ToLower(pattern)
	name = strings.ToLower(name)

	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == name
	}
	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	rest := name[len(parts[0]):]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return strings.HasSuffix(rest, parts[len(parts)-1])
}

func withoutPassword(u models.User) models.User {
	u.Password = ""
	return u
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

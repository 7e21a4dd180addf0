package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/models"
	"pizza-dashboard/internal/session"
)

const (
	loginPath     = "/login"
	dashboardPath = "/admin-dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is handed to every template.
type pageData struct {
	Title     string
	User      *models.User
	View      dashboard.View
	Flash     string
	Errors    formErrors
	Form      interface{}
	Franchise *models.Franchise
	Store     *models.Store
}

type pages struct {
	tmpl *template.Template
}

var templateFuncs = template.FuncMap{
	"join":    strings.Join,
	"revenue": formatRevenue,
	"rowError": func(v dashboard.View, id models.ID) string {
		return v.RowErrors[id]
	},
	"deleting": func(v dashboard.View, id models.ID) bool {
		return v.Deleting[id]
	},
}

func loadPages() (*pages, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &pages{tmpl: tmpl}, nil
}

// render executes the named page into a buffer first so a template failure
// never produces a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.pages.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed to render page", map[string]interface{}{"page": name, "error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formatRevenue groups the integer part in thousands, e.g. 12345.5 -> "12,345.5".
func formatRevenue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// navigationURL turns a navigation intent into the URL of its flow.
func navigationURL(nav *dashboard.Navigation) string {
	q := url.Values{}
	if nav.Franchise != nil {
		q.Set("franchise", nav.Franchise.ID.String())
	}
	if nav.Store != nil {
		q.Set("store", nav.Store.ID.String())
	}
	if len(q) == 0 {
		return nav.Target
	}
	return nav.Target + "?" + q.Encode()
}

func userOf(sess *session.Session) *models.User {
	if sess == nil {
		return nil
	}
	u := sess.User
	return &u
}

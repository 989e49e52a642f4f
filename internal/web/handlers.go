package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/naka-gawa/github-profile-analyzer/internal/config"
	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/naka-gawa/github-profile-analyzer/internal/usecase"
)

// themeCookie stores the theme preference in the browser.
const themeCookie = "ui-theme"

// maxActivityLimit bounds the commit activity fetches a single API request may start.
const maxActivityLimit = 10

type dashboardView struct {
	Theme           string
	Notice          string
	Account         *domain.Account
	Repositories    []domain.RepositorySummary
	RepositoryCount int
	Query           string
	Sort            string
	Summaries       []domain.ActivitySummary
	HasActivity     bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	state := s.session.Snapshot()
	view := dashboardView{
		Theme:  s.theme(r),
		Notice: s.session.TakeNotice(),
		Query:  r.URL.Query().Get("q"),
		Sort:   sortKey(r.URL.Query().Get("sort")),
	}
	if report := state.Report; report != nil {
		view.Account = &report.Account
		view.RepositoryCount = len(report.Repositories)
		view.Repositories = usecase.FilterRepositories(report.Repositories, view.Query, view.Sort)
		view.Summaries = report.Activity.Summaries
		view.HasActivity = !report.Activity.Empty()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		s.logger.Printf("failed to render dashboard: %v\n", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	if username == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token := s.session.Begin()
	report, err := s.analyzer.Lookup(r.Context(), username)
	if err != nil {
		s.logger.Printf("Lookup of %s failed: %v\n", username, err)
		s.session.Fail(token, err)
	} else if !s.session.Apply(token, username, report) {
		s.logger.Printf("Discarding stale lookup of %s\n", username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	theme := r.PostFormValue("theme")
	if !config.ValidTheme(theme) {
		http.Error(w, "unknown theme", http.StatusBadRequest)
		return
	}
	s.session.SetTheme(theme)
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSessionChart(w http.ResponseWriter, r *http.Request) {
	state := s.session.Snapshot()
	if state.Report == nil || state.Report.Activity.Empty() {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>No commit data available</p>"))
		return
	}
	s.writeChart(w, state.Report.Account.Login, state.Report.Activity)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.analyzer.Account(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, account)
}

func (s *Server) handleRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := s.analyzer.Repositories(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	query := r.URL.Query()
	if query.Get("q") != "" || query.Get("sort") != "" {
		repos = usecase.FilterRepositories(repos, query.Get("q"), query.Get("sort"))
	}
	writeJSON(w, s.logger, http.StatusOK, repos)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}
	report, err := s.analyzer.Activity(r.Context(), chi.URLParam(r, "username"), limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}

func (s *Server) handleActivityChart(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.parseLimit(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")
	report, err := s.analyzer.Activity(r.Context(), username, limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.writeChart(w, username, *report)
}

func (s *Server) writeChart(w http.ResponseWriter, login string, report domain.ActivityReport) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderActivityChart(w, "Daily Commit Activity of "+login, report); err != nil {
		s.logger.Printf("failed to render chart: %v\n", err)
	}
}

// theme prefers the browser's stored preference over the session's.
func (s *Server) theme(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && config.ValidTheme(c.Value) {
		return c.Value
	}
	return s.session.Theme()
}

// parseLimit reads the optional limit query parameter, 1 to maxActivityLimit.
// 0 means the configured default.
func (s *Server) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxActivityLimit {
		writeBadRequest(w, s.logger, fmt.Sprintf("limit must be an integer between 1 and %d", maxActivityLimit))
		return 0, false
	}
	return limit, true
}

func sortKey(raw string) string {
	if usecase.ValidSortKey(raw) {
		return raw
	}
	return usecase.SortByUpdated
}

// Package session holds the in-memory state of the dashboard.
//
// Lookups are not cancelled when a newer one starts, so every lookup is tagged with a
// token and only the most recently issued token may change the displayed state.
package session

import (
	"sync"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// Token identifies one lookup. Tokens increase monotonically.
type Token uint64

// State is what the dashboard currently displays.
type State struct {
	Username string
	Report   *domain.ProfileReport
}

// Session is a single dashboard's state. It is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	latest Token
	state  State
	notice string
	theme  string
}

// New creates an empty Session using the given theme.
func New(theme string) *Session {
	return &Session{theme: theme}
}

// Begin issues the token of a new lookup.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Apply displays the report of a finished lookup. It returns false, leaving the state
// untouched, when a newer lookup has begun since token was issued.
func (s *Session) Apply(token Token, username string, report *domain.ProfileReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		return false
	}
	s.state = State{Username: username, Report: report}
	s.notice = ""
	return true
}

// Fail resets the dashboard to its empty state and records a one-shot notice describing
// err. Like Apply it ignores stale tokens.
func (s *Session) Fail(token Token, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		return false
	}
	s.state = State{}
	s.notice = domain.UserMessage(err)
	return true
}

// Snapshot returns the displayed state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TakeNotice returns the pending notice and clears it.
func (s *Session) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice := s.notice
	s.notice = ""
	return notice
}

// Theme returns the selected UI theme.
func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme selects the UI theme.
func (s *Session) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Account holds the public profile metadata of a GitHub user.
// It is replaced wholesale on every lookup and never mutated afterwards.
type Account struct {
	Login       string    `json:"login"`
	ID          int64     `json:"id"`
	Name        string    `json:"name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Company     string    `json:"company,omitempty"`
	Blog        string    `json:"blog,omitempty"`
	Location    string    `json:"location,omitempty"`
	Email       string    `json:"email,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`

	// ContributionsLastYear is nil when the GraphQL lookup was unavailable.
	ContributionsLastYear *int `json:"contributions_last_year,omitempty"`
}

// DisplayName returns the name when set, falling back to the login.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Login
}

// RepositorySummary holds the metadata of a single repository owned by an account.
type RepositorySummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Watchers    int       `json:"watchers_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PushedAt    time.Time `json:"pushed_at"`
}

// ProfileReport is the outcome of one complete account lookup.
type ProfileReport struct {
	Account      Account             `json:"account"`
	Repositories []RepositorySummary `json:"repositories"`
	Activity     ActivityReport      `json:"activity"`
}

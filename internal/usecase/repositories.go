package usecase

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// Repository list sort keys.
const (
	SortByUpdated = "updated"
	SortByStars   = "stars"
	SortByName    = "name"
)

// FilterRepositories returns the repositories whose name or description contains term
// (case-insensitively), ordered by sortBy. Unknown sort keys order by update time.
// The input slice is never modified.
func FilterRepositories(repos []domain.RepositorySummary, term, sortBy string) []domain.RepositorySummary {
	needle := strings.ToLower(strings.TrimSpace(term))
	filtered := make([]domain.RepositorySummary, 0, len(repos))
	for _, repo := range repos {
		if needle == "" ||
			strings.Contains(strings.ToLower(repo.Name), needle) ||
			strings.Contains(strings.ToLower(repo.Description), needle) {
			filtered = append(filtered, repo)
		}
	}

	switch sortBy {
	case SortByStars:
		slices.SortStableFunc(filtered, func(a, b domain.RepositorySummary) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	case SortByName:
		// Collators keep internal buffers and are not safe to share.
		collator := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(filtered, func(a, b domain.RepositorySummary) int {
			return collator.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(filtered, func(a, b domain.RepositorySummary) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return filtered
}

// ValidSortKey reports whether key is a supported sort key.
func ValidSortKey(key string) bool {
	switch key {
	case SortByUpdated, SortByStars, SortByName:
		return true
	}
	return false
}

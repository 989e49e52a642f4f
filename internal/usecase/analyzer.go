package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/naka-gawa/github-profile-analyzer/internal/gateway"
)

// DefaultTopRepositories is how many recently updated repositories feed the activity chart.
const DefaultTopRepositories = 5

// Analyzer is the use case behind one account lookup.
// Every stage waits for the previous one to complete.
type Analyzer struct {
	fetcher    gateway.Fetcher
	aggregator *Aggregator
	logger     *log.Logger
	topN       int
}

// NewAnalyzer creates a new Analyzer. A topN below 1 falls back to DefaultTopRepositories.
func NewAnalyzer(fetcher gateway.Fetcher, aggregator *Aggregator, logger *log.Logger, topN int) *Analyzer {
	if topN < 1 {
		topN = DefaultTopRepositories
	}
	return &Analyzer{
		fetcher:    fetcher,
		aggregator: aggregator,
		logger:     logger,
		topN:       topN,
	}
}

// Lookup fetches the profile, the repositories and the commit activity of the most recently
// updated repositories. A failure of the profile or repository stage fails the whole lookup.
func (a *Analyzer) Lookup(ctx context.Context, username string) (*domain.ProfileReport, error) {
	a.logger.Println("Usecase: Starting profile lookup...")

	account, err := a.Account(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := a.Repositories(ctx, account.Login)
	if err != nil {
		return nil, err
	}
	report, err := a.aggregator.Report(ctx, account.Login, TopRepositories(repos, a.topN))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commit activity: %w", err)
	}

	a.logger.Println("Usecase: Profile lookup complete.")
	return &domain.ProfileReport{
		Account:      *account,
		Repositories: repos,
		Activity:     *report,
	}, nil
}

// Account fetches the profile of username. The contribution total is best effort.
func (a *Analyzer) Account(ctx context.Context, username string) (*domain.Account, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	account, err := a.fetcher.FetchAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := a.fetcher.FetchContributions(ctx, account.Login)
	if err != nil {
		a.logger.Printf("Skipping contributions of %s: %v\n", account.Login, err)
	} else {
		account.ContributionsLastYear = &total
	}
	return account, nil
}

// Repositories fetches the repositories of username, most recently updated first.
func (a *Analyzer) Repositories(ctx context.Context, username string) ([]domain.RepositorySummary, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	return a.fetcher.FetchRepositories(ctx, username)
}

// Activity builds the activity report of the limit most recently updated repositories of
// username. A limit below 1 uses the analyzer's default.
func (a *Analyzer) Activity(ctx context.Context, username string, limit int) (*domain.ActivityReport, error) {
	repos, err := a.Repositories(ctx, username)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = a.topN
	}
	report, err := a.aggregator.Report(ctx, strings.TrimSpace(username), TopRepositories(repos, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commit activity: %w", err)
	}
	return report, nil
}

// TopRepositories returns a copy of the first n repositories.
func TopRepositories(repos []domain.RepositorySummary, n int) []domain.RepositorySummary {
	n = max(0, min(n, len(repos)))
	return slices.Clone(repos[:n])
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", domain.ErrEmptyUsername
	}
	return username, nil
}

package usecase

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchAccount(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.RepositorySummary, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositorySummary), args.Error(1)
}

func (m *mockFetcher) FetchCommitActivity(ctx context.Context, owner, repo string) (domain.WeeklyActivity, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.WeeklyActivity), args.Error(1)
}

func (m *mockFetcher) FetchContributions(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// fixedClock anchors reconstruction at 2024-06-15 13:45 JST.
func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 13, 45, 0, 0, time.FixedZone("JST", 9*60*60))
}

func repoNamed(names ...string) []domain.RepositorySummary {
	repos := make([]domain.RepositorySummary, 0, len(names))
	for i, name := range names {
		repos = append(repos, domain.RepositorySummary{ID: int64(i + 1), Name: name})
	}
	return repos
}

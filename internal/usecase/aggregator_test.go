package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seriesNames(series []domain.RepositoryActivitySeries) []string {
	names := make([]string, 0, len(series))
	for _, s := range series {
		names = append(names, s.Repository)
	}
	return names
}

// TestAggregator_Aggregate uses a table-driven approach to test the aggregator.
func TestAggregator_Aggregate(t *testing.T) {
	oneWeek := domain.WeeklyActivity{{0, 0, 1, 0, 2, 0, 0}}
	notFound := fmt.Errorf("failed to fetch commit activity: %w", &domain.UpstreamError{Resource: "commit_activity", StatusCode: 404})

	testCases := []struct {
		name          string
		repos         []string
		concurrency   int
		responses     map[string]error
		expectedRepos []string
	}{
		{
			name:          "happy path - every repository yields a series",
			repos:         []string{"repo-a", "repo-b", "repo-c"},
			concurrency:   1,
			responses:     map[string]error{},
			expectedRepos: []string{"repo-a", "repo-b", "repo-c"},
		},
		{
			name:          "partial data case - a 404 in the middle is skipped",
			repos:         []string{"repo-a", "repo-b", "repo-c"},
			concurrency:   1,
			responses:     map[string]error{"repo-b": notFound},
			expectedRepos: []string{"repo-a", "repo-c"},
		},
		{
			name:        "partial data case - every kind of failure is skipped",
			repos:       []string{"repo-a", "repo-b", "repo-c", "repo-d"},
			concurrency: 1,
			responses: map[string]error{
				"repo-a": domain.ErrActivityUnavailable,
				"repo-c": fmt.Errorf("boom: %w", domain.ErrUnexpected),
			},
			expectedRepos: []string{"repo-b", "repo-d"},
		},
		{
			name:          "empty case - every repository fails",
			repos:         []string{"repo-a"},
			concurrency:   1,
			responses:     map[string]error{"repo-a": notFound},
			expectedRepos: []string{},
		},
		{
			name:          "bounded parallelism keeps the input order",
			repos:         []string{"r1", "r2", "r3", "r4", "r5", "r6"},
			concurrency:   3,
			responses:     map[string]error{"r2": notFound, "r5": notFound},
			expectedRepos: []string{"r1", "r3", "r4", "r6"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange: Set up the test for this specific case ---
			fetcher := new(mockFetcher)
			for _, repo := range tc.repos {
				if err, failing := tc.responses[repo]; failing {
					fetcher.On("FetchCommitActivity", mock.Anything, "octocat", repo).Return(nil, err).Once()
				} else {
					fetcher.On("FetchCommitActivity", mock.Anything, "octocat", repo).Return(oneWeek, nil).Once()
				}
			}
			aggregator := NewAggregator(fetcher, discardLogger(), WithConcurrency(tc.concurrency), WithClock(fixedClock))

			// --- Act: Execute the method we want to test ---
			results, err := aggregator.Aggregate(context.Background(), "octocat", repoNamed(tc.repos...))

			// --- Assert: Check the results ---
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRepos, seriesNames(results))
			for _, s := range results {
				assert.Len(t, s.Points, 7)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAggregator_Aggregate_SequentialOrder(t *testing.T) {
	fetcher := new(mockFetcher)
	var calls []string
	for _, repo := range []string{"first", "second", "third"} {
		fetcher.On("FetchCommitActivity", mock.Anything, "octocat", repo).
			Run(func(args mock.Arguments) { calls = append(calls, args.String(2)) }).
			Return(domain.WeeklyActivity{}, nil).Once()
	}

	_, err := NewAggregator(fetcher, discardLogger()).Aggregate(context.Background(), "octocat", repoNamed("first", "second", "third"))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestAggregator_Aggregate_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := new(mockFetcher)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", mock.Anything).Return(nil, context.Canceled)

	results, err := NewAggregator(fetcher, discardLogger()).Aggregate(ctx, "octocat", repoNamed("repo-a", "repo-b"))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, results)
}

func TestAggregator_Report(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", "repo-a").Return(domain.WeeklyActivity{{1, 0, 0, 0, 0, 0, 0}}, nil)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", "repo-b").Return(domain.WeeklyActivity{{0, 2, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0, 3}}, nil)

	report, err := NewAggregator(fetcher, discardLogger(), WithClock(fixedClock)).
		Report(context.Background(), "octocat", repoNamed("repo-a", "repo-b"))

	require.NoError(t, err)
	assert.Equal(t, []string{"repo-a", "repo-b"}, report.Repositories)
	assert.Equal(t, fixedClock(), report.GeneratedAt)
	// Both series end yesterday; repo-b reaches one week further back.
	require.Len(t, report.Rows, 14)
	_, hasA := report.Rows[0].Count("repo-a")
	assert.False(t, hasA)
	count, hasA := report.Rows[7].Count("repo-a")
	assert.True(t, hasA)
	assert.Equal(t, 1, count)
	require.Len(t, report.Summaries, 2)
	assert.Equal(t, 5, report.Summaries[1].Total)
}

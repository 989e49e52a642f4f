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

func newTestAnalyzer(fetcher *mockFetcher, topN int) *Analyzer {
	aggregator := NewAggregator(fetcher, discardLogger(), WithClock(fixedClock))
	return NewAnalyzer(fetcher, aggregator, discardLogger(), topN)
}

func TestAnalyzer_Lookup_EndToEnd(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchAccount", mock.Anything, "octocat").Return(&domain.Account{Login: "octocat", Name: "The Octocat"}, nil)
	fetcher.On("FetchContributions", mock.Anything, "octocat").Return(42, nil)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repoNamed("Hello-World"), nil)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", "Hello-World").Return(domain.WeeklyActivity{{0, 0, 1, 0, 2, 0, 0}}, nil)

	report, err := newTestAnalyzer(fetcher, 5).Lookup(context.Background(), "  octocat ")

	require.NoError(t, err)
	assert.Equal(t, "octocat", report.Account.Login)
	require.NotNil(t, report.Account.ContributionsLastYear)
	assert.Equal(t, 42, *report.Account.ContributionsLastYear)
	assert.Len(t, report.Repositories, 1)

	assert.Equal(t, []string{"Hello-World"}, report.Activity.Repositories)
	require.Len(t, report.Activity.Rows, 7)
	expectedCounts := []int{0, 0, 1, 0, 2, 0, 0}
	for i, row := range report.Activity.Rows {
		assert.Equal(t, dayOfJune(8+i), row.Date)
		assert.Equal(t, map[string]int{"Hello-World": expectedCounts[i]}, row.Counts)
	}
	fetcher.AssertExpectations(t)
}

func dayOfJune(day int) string {
	return fmt.Sprintf("2024-06-%02d", day)
}

func TestAnalyzer_Lookup_Failures(t *testing.T) {
	testCases := []struct {
		name        string
		arrange     func(f *mockFetcher)
		expectedErr error
		notCalled   []string
	}{
		{
			name: "error case - account does not exist",
			arrange: func(f *mockFetcher) {
				f.On("FetchAccount", mock.Anything, "this-user-should-not-exist-xyz").
					Return(nil, &domain.NotFoundError{Username: "this-user-should-not-exist-xyz"})
			},
			expectedErr: domain.ErrNotFound,
			notCalled:   []string{"FetchContributions", "FetchRepositories", "FetchCommitActivity"},
		},
		{
			name: "error case - repository listing fails",
			arrange: func(f *mockFetcher) {
				f.On("FetchAccount", mock.Anything, "this-user-should-not-exist-xyz").
					Return(&domain.Account{Login: "this-user-should-not-exist-xyz"}, nil)
				f.On("FetchContributions", mock.Anything, mock.Anything).Return(0, errors.New("graphql down"))
				f.On("FetchRepositories", mock.Anything, "this-user-should-not-exist-xyz").
					Return(nil, &domain.UpstreamError{Resource: "repositories", StatusCode: 500})
			},
			expectedErr: domain.ErrUpstream,
			notCalled:   []string{"FetchCommitActivity"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.arrange(fetcher)

			report, err := newTestAnalyzer(fetcher, 5).Lookup(context.Background(), "this-user-should-not-exist-xyz")

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, report)
			for _, method := range tc.notCalled {
				fetcher.AssertNumberOfCalls(t, method, 0)
			}
		})
	}
}

func TestAnalyzer_Lookup_EmptyUsername(t *testing.T) {
	fetcher := new(mockFetcher)

	report, err := newTestAnalyzer(fetcher, 5).Lookup(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	assert.Nil(t, report)
	fetcher.AssertNumberOfCalls(t, "FetchAccount", 0)
}

func TestAnalyzer_Account_ContributionsAreBestEffort(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchAccount", mock.Anything, "octocat").Return(&domain.Account{Login: "octocat"}, nil)
	fetcher.On("FetchContributions", mock.Anything, "octocat").Return(0, errors.New("graphql down"))

	account, err := newTestAnalyzer(fetcher, 5).Account(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Nil(t, account.ContributionsLastYear)
}

func TestAnalyzer_Lookup_OnlyTopRepositoriesFeedTheChart(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchAccount", mock.Anything, "octocat").Return(&domain.Account{Login: "octocat"}, nil)
	fetcher.On("FetchContributions", mock.Anything, "octocat").Return(1, nil)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repoNamed("r1", "r2", "r3", "r4"), nil)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", mock.Anything).Return(domain.WeeklyActivity{}, nil)

	report, err := newTestAnalyzer(fetcher, 2).Lookup(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Len(t, report.Repositories, 4)
	assert.Equal(t, []string{"r1", "r2"}, report.Activity.Repositories)
	fetcher.AssertNumberOfCalls(t, "FetchCommitActivity", 2)
}

func TestAnalyzer_Activity_Limit(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repoNamed("r1", "r2", "r3"), nil)
	fetcher.On("FetchCommitActivity", mock.Anything, "octocat", mock.Anything).Return(domain.WeeklyActivity{{1, 1, 1, 1, 1, 1, 1}}, nil)

	analyzer := newTestAnalyzer(fetcher, 1)

	report, err := analyzer.Activity(context.Background(), "octocat", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, report.Repositories)

	report, err = analyzer.Activity(context.Background(), "octocat", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, report.Repositories)
}

func TestTopRepositories(t *testing.T) {
	repos := repoNamed("a", "b", "c")

	assert.Len(t, TopRepositories(repos, 5), 3)
	assert.Len(t, TopRepositories(repos, -1), 0)

	top := TopRepositories(repos, 2)
	top[0].Name = "changed"
	assert.Equal(t, "a", repos[0].Name)
}

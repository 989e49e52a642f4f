// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"time"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/naka-gawa/github-profile-analyzer/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Aggregator is the use case for aggregating commit activity.
// It fetches and normalizes the weekly activity of a set of repositories.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
	now         func() time.Time
}

// AggregatorOption customizes an Aggregator.
type AggregatorOption func(*Aggregator)

// WithConcurrency sets how many repositories are fetched at once. Values below 1 mean sequential.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n < 1 {
			n = 1
		}
		a.concurrency = n
	}
}

// WithClock sets the source of the date anchor.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates a new Aggregator instance.
// By default repositories are fetched one at a time, anchored at time.Now.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches the commit activity of every repository and returns one series per
// repository, in the order given. A repository whose fetch fails is logged and left out.
// The only error returned is the context's.
func (a *Aggregator) Aggregate(ctx context.Context, owner string, repos []domain.RepositorySummary) ([]domain.RepositoryActivitySeries, error) {
	return a.aggregate(ctx, owner, repos, a.now())
}

func (a *Aggregator) aggregate(ctx context.Context, owner string, repos []domain.RepositorySummary, now time.Time) ([]domain.RepositoryActivitySeries, error) {
	a.logger.Printf("Usecase: Starting commit activity aggregation for %d repositories...\n", len(repos))

	// Each goroutine owns one slot, which keeps the input order without locking.
	slots := make([]*domain.RepositoryActivitySeries, len(repos))

	var eg errgroup.Group
	eg.SetLimit(a.concurrency)
	for i, repo := range repos {
		eg.Go(func() error {
			raw, err := a.fetcher.FetchCommitActivity(ctx, owner, repo.Name)
			if err != nil {
				a.logger.Printf("Skipping repo %s: %v\n", repo.Name, err)
				return nil
			}
			series := NormalizeActivity(repo.Name, raw, now)
			slots[i] = &series
			return nil
		})
	}
	// Workers never return an error, a failed repository is skipped instead.
	eg.Wait() //nolint:errcheck

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.RepositoryActivitySeries, 0, len(repos))
	for _, s := range slots {
		if s != nil {
			results = append(results, *s)
		}
	}
	a.logger.Printf("Usecase: Aggregated %d of %d repositories.\n", len(results), len(repos))
	return results, nil
}

// Report aggregates the repositories and merges the series into a chart-ready report.
func (a *Aggregator) Report(ctx context.Context, owner string, repos []domain.RepositorySummary) (*domain.ActivityReport, error) {
	now := a.now()
	series, err := a.aggregate(ctx, owner, repos, now)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(series))
	for _, s := range series {
		columns = append(columns, s.Repository)
	}
	return &domain.ActivityReport{
		Repositories: columns,
		Rows:         MergeSeries(series),
		Summaries:    SummarizeSeries(series),
		GeneratedAt:  now,
	}, nil
}

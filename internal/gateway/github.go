// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// repositoriesPerPage is the fixed page size of the repository listing. Only the first page is read.
const repositoriesPerPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchAccount(ctx context.Context, username string) (*domain.Account, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.RepositorySummary, error)
	FetchCommitActivity(ctx context.Context, owner, repo string) (domain.WeeklyActivity, error)
	// FetchContributions returns the contribution total of the last year via GraphQL.
	FetchContributions(ctx context.Context, username string) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// contributionsQuery fetches the contribution calendar total of a single user.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
			}
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty baseURL targets github.com, anything else is treated as a GitHub Enterprise host.
func NewGitHubGateway(token, baseURL string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if baseURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URL %q: %w", baseURL, err)
		}
		graphqlClient = githubv4.NewEnterpriseClient(strings.TrimSuffix(baseURL, "/")+"/api/graphql", httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchAccount(ctx context.Context, username string) (*domain.Account, error) {
	g.logger.Printf("Fetching profile of %s...\n", username)
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		switch status := statusCode(err); {
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("failed to fetch user profile: %w", &domain.NotFoundError{Username: username})
		case status != 0:
			return nil, fmt.Errorf("failed to fetch user profile: %w", &domain.UpstreamError{Resource: "user", StatusCode: status})
		default:
			return nil, fmt.Errorf("failed to fetch user profile: %w: %w", domain.ErrUnexpected, err)
		}
	}

	return &domain.Account{
		Login:       user.GetLogin(),
		ID:          user.GetID(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		Company:     user.GetCompany(),
		Blog:        user.GetBlog(),
		Location:    user.GetLocation(),
		Email:       user.GetEmail(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		CreatedAt:   user.GetCreatedAt().Time,
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.RepositorySummary, error) {
	g.logger.Printf("Fetching repositories of %s...\n", username)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: repositoriesPerPage},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		if status := statusCode(err); status != 0 {
			return nil, fmt.Errorf("failed to list repositories: %w", &domain.UpstreamError{Resource: "repositories", StatusCode: status})
		}
		return nil, fmt.Errorf("failed to list repositories: %w: %w", domain.ErrUnexpected, err)
	}

	summaries := make([]domain.RepositorySummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, domain.RepositorySummary{
			ID:          repo.GetID(),
			Name:        repo.GetName(),
			FullName:    repo.GetFullName(),
			HTMLURL:     repo.GetHTMLURL(),
			Description: repo.GetDescription(),
			Language:    repo.GetLanguage(),
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
			Watchers:    repo.GetWatchersCount(),
			CreatedAt:   repo.GetCreatedAt().Time,
			UpdatedAt:   repo.GetUpdatedAt().Time,
			PushedAt:    repo.GetPushedAt().Time,
		})
	}
	g.logger.Printf("Completed fetching %d repositories.\n", len(summaries))
	return summaries, nil
}

func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, repo string) (domain.WeeklyActivity, error) {
	weeks, _, err := g.restClient.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		// GitHub answers 202 while it computes the statistics in the background.
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return nil, fmt.Errorf("commit activity of %s/%s is still being computed: %w", owner, repo, domain.ErrActivityUnavailable)
		}
		if status := statusCode(err); status != 0 {
			return nil, fmt.Errorf("failed to fetch commit activity of %s/%s: %w", owner, repo, &domain.UpstreamError{Resource: "commit_activity", StatusCode: status})
		}
		return nil, fmt.Errorf("failed to fetch commit activity of %s/%s: %w: %w", owner, repo, domain.ErrUnexpected, err)
	}
	// Empty repositories answer 204 with no body.
	if len(weeks) == 0 {
		return nil, fmt.Errorf("no commit activity for %s/%s: %w", owner, repo, domain.ErrActivityUnavailable)
	}

	raw := make(domain.WeeklyActivity, 0, len(weeks))
	for i, week := range weeks {
		if len(week.Days) != domain.DaysPerWeek {
			return nil, fmt.Errorf("week %d of %s/%s has %d days: %w", i, owner, repo, len(week.Days), domain.ErrActivityUnavailable)
		}
		var days [domain.DaysPerWeek]int
		copy(days[:], week.Days)
		raw = append(raw, days)
	}
	return raw, nil
}

// FetchContributions runs the contribution calendar query for the given user.
func (g *GitHubGateway) FetchContributions(ctx context.Context, username string) (int, error) {
	var q contributionsQuery
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	return int(q.User.ContributionsCollection.ContributionCalendar.TotalContributions), nil
}

// statusCode extracts the HTTP status carried by a go-github error, or 0 if there is none.
func statusCode(err error) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return rateErr.Response.StatusCode
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return abuseErr.Response.StatusCode
	}
	return 0
}

package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// SummarizeSeries computes descriptive statistics for each series, in series order.
func SummarizeSeries(series []domain.RepositoryActivitySeries) []domain.ActivitySummary {
	summaries := make([]domain.ActivitySummary, 0, len(series))
	for _, s := range series {
		summaries = append(summaries, summarize(s))
	}
	return summaries
}

func summarize(s domain.RepositoryActivitySeries) domain.ActivitySummary {
	summary := domain.ActivitySummary{Repository: s.Repository}
	if len(s.Points) == 0 {
		return summary
	}

	counts := make(stats.Float64Data, 0, len(s.Points))
	for _, p := range s.Points {
		counts = append(counts, float64(p.Count))
		if p.Count > 0 {
			summary.ActiveDays++
		}
	}

	// The data is non-empty, so these cannot fail.
	total, _ := stats.Sum(counts)
	mean, _ := stats.Mean(counts)
	median, _ := stats.Median(counts)
	busiest, _ := stats.Max(counts)

	summary.Total = int(total)
	if busiest > 0 {
		summary.BusiestCount = int(busiest)
		for _, p := range s.Points {
			if p.Count == summary.BusiestCount {
				summary.BusiestDay = p.Date
				break
			}
		}
	}
	summary.MeanPerDay = mean
	summary.MedianPerDay = median
	return summary
}

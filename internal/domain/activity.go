package domain

import "time"

// DaysPerWeek is the fixed length of every week in a WeeklyActivity.
const DaysPerWeek = 7

// DateLayout is the layout of DailyPoint and MergedActivityRow dates.
const DateLayout = "2006-01-02"

// WeeklyActivity is the raw per-day commit counts of a repository, one entry per week,
// ordered oldest to newest. The last entry is assumed to be the current week.
type WeeklyActivity [][DaysPerWeek]int

// DailyPoint is one (date, commit count) observation.
type DailyPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RepositoryActivitySeries is one repository's daily points in ascending date order.
type RepositoryActivitySeries struct {
	Repository string       `json:"repository"`
	Points     []DailyPoint `json:"data"`
}

// MergedActivityRow holds the commit counts of every tracked repository for one date.
// A repository missing from Counts had no data point for the date, which is not the
// same as an explicit zero.
type MergedActivityRow struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// Count returns the repository's count for the row and whether it was present.
func (r MergedActivityRow) Count(repository string) (int, bool) {
	c, ok := r.Counts[repository]
	return c, ok
}

// ActivitySummary holds descriptive statistics of one repository's series.
type ActivitySummary struct {
	Repository   string  `json:"repository"`
	Total        int     `json:"total"`
	ActiveDays   int     `json:"active_days"`
	MeanPerDay   float64 `json:"mean_per_day"`
	MedianPerDay float64 `json:"median_per_day"`
	BusiestDay   string  `json:"busiest_day,omitempty"`
	BusiestCount int     `json:"busiest_count"`
}

// ActivityReport is the merged, chart-ready commit activity of an account.
// Repositories lists the chart columns in series order.
type ActivityReport struct {
	Repositories []string            `json:"repositories"`
	Rows         []MergedActivityRow `json:"rows"`
	Summaries    []ActivitySummary   `json:"summaries"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// Empty reports whether the report has nothing to chart.
func (r ActivityReport) Empty() bool {
	return len(r.Repositories) == 0 || len(r.Rows) == 0
}

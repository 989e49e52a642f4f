package usecase

import (
	"sort"
	"time"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// ReconstructDate converts a (week, day) offset of a weekly activity array of the given length
// into a calendar date, assuming the last week of the array is the week containing now.
// The result is midnight UTC of that day.
func ReconstructDate(now time.Time, weeks, week, day int) time.Time {
	y, m, d := now.Date()
	anchor := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	weekStart := anchor.AddDate(0, 0, -(weeks-week)*domain.DaysPerWeek)
	return weekStart.AddDate(0, 0, day)
}

// FormatDate renders a date as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// NormalizeActivity flattens one repository's weekly activity into daily points.
// Every day of every week is emitted, zero counts included.
func NormalizeActivity(repository string, raw domain.WeeklyActivity, now time.Time) domain.RepositoryActivitySeries {
	points := make([]domain.DailyPoint, 0, len(raw)*domain.DaysPerWeek)
	for w, days := range raw {
		for d, count := range days {
			points = append(points, domain.DailyPoint{
				Date:  FormatDate(ReconstructDate(now, len(raw), w, d)),
				Count: count,
			})
		}
	}
	return domain.RepositoryActivitySeries{Repository: repository, Points: points}
}

// MergeSeries folds per-repository series into one row per distinct date, sorted by date.
// A repository without a point on a date has no entry in that row.
func MergeSeries(series []domain.RepositoryActivitySeries) []domain.MergedActivityRow {
	rowsByDate := make(map[string]*domain.MergedActivityRow)
	for _, s := range series {
		for _, p := range s.Points {
			row, ok := rowsByDate[p.Date]
			if !ok {
				row = &domain.MergedActivityRow{Date: p.Date, Counts: make(map[string]int)}
				rowsByDate[p.Date] = row
			}
			row.Counts[s.Repository] = p.Count
		}
	}

	rows := make([]domain.MergedActivityRow, 0, len(rowsByDate))
	for _, row := range rowsByDate {
		rows = append(rows, *row)
	}
	// ISO dates sort lexicographically in chronological order.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}

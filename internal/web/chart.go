package web

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
)

// SeriesColor returns the chart colour of a repository. It only depends on the name,
// so a repository keeps its colour across renders.
func SeriesColor(repository string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(repository))
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", h.Sum32()%360)
}

// chartData returns one data slice per report column, aligned with the report rows.
// Dates with no point for a repository carry no value, which the chart draws as a gap.
func chartData(report domain.ActivityReport) [][]opts.LineData {
	data := make([][]opts.LineData, len(report.Repositories))
	for i, repo := range report.Repositories {
		points := make([]opts.LineData, len(report.Rows))
		for j, row := range report.Rows {
			if count, ok := row.Count(repo); ok {
				points[j] = opts.LineData{Value: count}
			}
		}
		data[i] = points
	}
	return data
}

func renderActivityChart(w io.Writer, title string, report domain.ActivityReport) error {
	dates := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		dates[i] = row.Date
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Commit activity for the top most recently updated repositories",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	line.SetXAxis(dates)
	for i, points := range chartData(report) {
		repo := report.Repositories[i]
		color := SeriesColor(repo)
		line.AddSeries(repo, points,
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	}
	return line.Render(w)
}

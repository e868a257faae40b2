package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/models"
)

// Chart file names inside the export directory.
const (
	SubjectChartFile      = "subject_averages.png"
	DistributionChartFile = "percentage_distribution.png"
)

// SubjectChart plots the average marks of every subject on a 0-100 axis.
// Subjects with no data are drawn at zero.
func SubjectChart(d *analysis.Dashboard) chart.BarChart {
	bars := make([]chart.Value, 0, len(d.Difficulty))
	for _, s := range d.Difficulty {
		avg := s.AvgMarks
		if models.IsUndefined(avg) {
			avg = 0
		}
		bars = append(bars, chart.Value{Label: s.Subject, Value: avg})
	}

	return chart.BarChart{
		Title:      "Average Marks per Subject",
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		BarSpacing: 20,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "Average Marks",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
}

// DistributionChart plots the percentage histogram. It reports false when
// there is nothing to plot.
func DistributionChart(d *analysis.Dashboard) (chart.BarChart, bool) {
	if len(d.Histogram) == 0 {
		return chart.BarChart{}, false
	}

	peak := 0
	bars := make([]chart.Value, 0, len(d.Histogram))
	for _, b := range d.Histogram {
		peak = max(peak, b.Count)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.0f-%.0f", b.Low, b.High),
			Value: float64(b.Count),
		})
	}

	return chart.BarChart{
		Title:      "Percentage Distribution",
		Width:      1024,
		Height:     512,
		BarWidth:   50,
		BarSpacing: 20,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "Number of Students",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}, true
}

// WriteCharts renders the dashboard charts as PNG files into dir and returns
// the paths written. The distribution chart is skipped for an empty subset.
func WriteCharts(d *analysis.Dashboard, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var written []string
	path := filepath.Join(dir, SubjectChartFile)
	if err := renderPNG(SubjectChart(d), path); err != nil {
		return written, err
	}
	written = append(written, path)

	if c, ok := DistributionChart(d); ok {
		path = filepath.Join(dir, DistributionChartFile)
		if err := renderPNG(c, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func renderPNG(c chart.BarChart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := c.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return nil
}

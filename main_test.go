package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/config"
	"github.com/nonsonwune/student_results/models"
	"github.com/nonsonwune/student_results/report"
)

func testApp(t *testing.T, input string) *app {
	t.Helper()
	color.NoColor = true

	cfg := config.Default()
	cfg.Analysis.TopN = 3
	cfg.Export.Dir = filepath.Join(t.TempDir(), "reports")

	return &app{
		cfg:    &cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		table: &models.Table{
			Subjects: cfg.Schema.Subjects,
			Records: []models.StudentRecord{
				{StudentID: 1, Scores: []float64{90, 80, 70}, Result: 1, TotalMarks: 240, Percentage: 80, Status: models.StatusPass},
				{StudentID: 2, Scores: []float64{30, 20, 10}, Result: 0, TotalMarks: 60, Percentage: 20, Status: models.StatusFail},
			},
		},
		params:  defaultParams(&cfg),
		printer: report.NewPrinter(io.Discard),
		input:   bufio.NewScanner(strings.NewReader(input)),
	}
}

func TestDefaultParams(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.TopN = 7
	cfg.Analysis.Bins = 4
	cfg.Analysis.PassThreshold = 50

	p := defaultParams(&cfg)

	assert.Equal(t, 7, p.TopN)
	assert.Equal(t, 4, p.Bins)
	assert.Equal(t, 50.0, p.PassThreshold)
	assert.Equal(t, models.AllStatuses(), p.Statuses)
	assert.Equal(t, models.OverallMode, p.Mode)
}

func TestSetPercentageRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		low   float64
		high  float64
	}{
		{name: "valid", input: "40\n90\n", low: 40, high: 90},
		{name: "fractional", input: "42.5\n90\n", low: 42.5, high: 90},
		{name: "blank keeps current", input: "\n\n", low: 0, high: 100},
		{name: "inverted rejected", input: "80\n20\n", low: 0, high: 100},
		{name: "out of bounds rejected", input: "-1\n50\n", low: 0, high: 100},
		{name: "not a number", input: "abc\n", low: 0, high: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp(t, tt.input)
			a.setPercentageRange()
			assert.Equal(t, tt.low, a.params.Low)
			assert.Equal(t, tt.high, a.params.High)
		})
	}
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "0-100", formatRange(0, 100))
	assert.Equal(t, "42.5-90", formatRange(42.5, 90))
	assert.Equal(t, "33.25-66.75", formatRange(33.25, 66.75))
}

func TestSetStatusFilter(t *testing.T) {
	a := testApp(t, "2\n4\n9\n")

	a.setStatusFilter()
	assert.Equal(t, []models.Status{models.StatusPass}, a.params.Statuses)

	a.setStatusFilter()
	assert.Empty(t, a.params.Statuses)

	a.setStatusFilter()
	assert.Empty(t, a.params.Statuses, "invalid choice leaves filter unchanged")
}

func TestSetRankingMode(t *testing.T) {
	a := testApp(t, "3\n0\n")

	a.setRankingMode()
	assert.Equal(t, "Physics", a.params.Mode)

	a.setRankingMode()
	assert.Equal(t, "Physics", a.params.Mode)

	d, ok := a.dashboard()
	require.True(t, ok)
	assert.Equal(t, "Physics", d.RankKey.Label)
}

func TestLoop_ExportsAndExits(t *testing.T) {
	a := testApp(t, "10\n11\n12\n13\n")
	a.params.Low = 50

	a.loop()

	assert.Equal(t, analysis.DefaultParams().Low, a.params.Low, "reset before exit")
	assert.FileExists(t, filepath.Join(a.cfg.Export.Dir, report.WorkbookFile))
	assert.FileExists(t, filepath.Join(a.cfg.Export.Dir, report.SubjectChartFile))
	assert.FileExists(t, filepath.Join(a.cfg.Export.Dir, report.DistributionChartFile))
}

func TestLoop_StopsOnClosedInput(t *testing.T) {
	a := testApp(t, "5\n")

	a.loop()

	assert.True(t, a.closed)
}

func TestOpenDatabase_SkippedForFiles(t *testing.T) {
	cfg := config.Default()

	db, err := openDatabase(context.Background(), &cfg)
	require.NoError(t, err)
	assert.Nil(t, db)
}

package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/models"
)

func init() {
	color.NoColor = true
}

func record(id int, result float64, scores ...float64) models.StudentRecord {
	var total float64
	for _, s := range scores {
		total += s
	}
	return models.StudentRecord{
		StudentID:  id,
		Scores:     scores,
		Result:     result,
		TotalMarks: total,
		Percentage: total / (float64(len(scores)) * 100) * 100,
		Status:     models.StatusFromResult(result),
	}
}

func sampleTable() *models.Table {
	return &models.Table{
		Subjects: []string{"Maths", "Physics"},
		Records: []models.StudentRecord{
			record(1, 1, 90, 70),
			record(2, 0, 20, 30),
			record(3, 1, 60, 60),
			record(4, 0, 35, 45),
		},
	}
}

func dashboard(t *testing.T, mutate func(*analysis.Params)) *analysis.Dashboard {
	t.Helper()
	p := analysis.DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	d, err := analysis.Build(sampleTable(), p)
	require.NoError(t, err)
	return d
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "66.67", FormatFloat(200.0/3))
	assert.Equal(t, NotAvailable, FormatFloat(math.NaN()))
	assert.Equal(t, "50.00%", FormatPercent(50))
	assert.Equal(t, NotAvailable, FormatPercent(models.Undefined()))
	assert.Equal(t, "42.5", formatScore(42.5))
	assert.Equal(t, "40", formatScore(40))
}

func TestBinLabel(t *testing.T) {
	b := models.Bin{Low: 20, High: 30, Count: 2}
	assert.Equal(t, "[20.0, 30.0)", BinLabel(b, false))
	assert.Equal(t, "[20.0, 30.0]", BinLabel(b, true))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 10, 40))
	assert.Equal(t, "####", bar(10, 10, 4))
	assert.Equal(t, "##", bar(5, 10, 4))
	assert.Equal(t, "#", bar(1, 100, 4), "non-zero counts stay visible")
}

func TestPrinter_Dashboard(t *testing.T) {
	d := dashboard(t, func(p *analysis.Params) { p.Low = 30 })

	var buf bytes.Buffer
	NewPrinter(&buf).DisplayDashboard(d)
	out := buf.String()

	assert.Contains(t, out, "Showing 3 students after filters.")
	assert.Contains(t, out, "Average Percentage")
	assert.Contains(t, out, "Subject Difficulty (pass mark 40)")
	assert.Contains(t, out, "Top 5 Performers (Overall)")
	assert.Contains(t, out, "Bottom 5 Performers (Overall)")
	assert.Contains(t, out, "Percentage Distribution")
	assert.Contains(t, out, "Fail Rate")
	assert.Contains(t, out, "Maths")
	assert.Contains(t, out, "#")
	assert.NotContains(t, out, NotAvailable)
}

func TestPrinter_SummaryRange(t *testing.T) {
	d := dashboard(t, func(p *analysis.Params) { p.Low, p.High = 42.5, 99.5 })

	var buf bytes.Buffer
	NewPrinter(&buf).DisplaySummary(d)

	assert.Contains(t, buf.String(), "42.5 - 99.5")
}

func TestPrinter_DifficultyHardestFirst(t *testing.T) {
	d := dashboard(t, nil)

	var buf bytes.Buffer
	NewPrinter(&buf).DisplayDifficulty(d)
	out := buf.String()

	// Maths averages 51.25 and Physics 51.25; Maths fails two of four
	maths := bytes.Index(buf.Bytes(), []byte("Maths"))
	physics := bytes.Index(buf.Bytes(), []byte("Physics"))
	require.True(t, maths > 0 && physics > 0, out)
	assert.Less(t, maths, physics)
	assert.Contains(t, out, "50.00%")
}

func TestPrinter_EmptySubset(t *testing.T) {
	d := dashboard(t, func(p *analysis.Params) { p.Statuses = nil })

	var buf bytes.Buffer
	printer := NewPrinter(&buf)
	printer.DisplayDashboard(d)
	printer.DisplayStudents(d)
	out := buf.String()

	assert.Contains(t, out, "Showing 0 students after filters.")
	assert.Contains(t, out, NotAvailable)
	assert.Contains(t, out, "No students to plot.")
	assert.Contains(t, out, "Filtered Students")
}

func TestPrinter_Students(t *testing.T) {
	d := dashboard(t, nil)

	var buf bytes.Buffer
	NewPrinter(&buf).DisplayStudents(d)
	out := buf.String()

	assert.Contains(t, out, "Total Marks")
	assert.Contains(t, out, "80.00")
	assert.Contains(t, out, "Pass")
	assert.Contains(t, out, "Fail")
}

func TestWorkbook(t *testing.T) {
	d := dashboard(t, func(p *analysis.Params) { p.TopN = 2 })

	f, err := Workbook(d)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetSummary, SheetSubjects, SheetTop, SheetBottom, SheetDistribution, SheetStudents,
	}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Students", "4"}, summary[1])
	assert.Equal(t, []string{"Pass Count", "2"}, summary[3])
	assert.Equal(t, []string{"Ranking Mode", "Overall"}, summary[8])

	top, err := f.GetRows(SheetTop)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Student ID", "Maths", "Physics", "Result", "Total Marks", "Percentage", "Status"}, top[0])
	assert.Equal(t, "1", top[1][0])
	assert.Equal(t, "3", top[2][0])

	students, err := f.GetRows(SheetStudents)
	require.NoError(t, err)
	assert.Len(t, students, 5)
}

func TestWorkbook_Undefined(t *testing.T) {
	d := dashboard(t, func(p *analysis.Params) { p.Statuses = nil })

	f, err := Workbook(d)
	require.NoError(t, err)
	defer f.Close()

	avg, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, avg)

	bins, err := f.GetRows(SheetDistribution)
	require.NoError(t, err)
	assert.Len(t, bins, 1, "header only")
}

func TestWriteWorkbook(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteWorkbook(dashboard(t, nil), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, WorkbookFile), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 6)
}

func TestWriteCharts(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteCharts(dashboard(t, nil), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, SubjectChartFile),
		filepath.Join(dir, DistributionChartFile),
	}, paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), path)
	}
}

func TestWriteCharts_EmptySubset(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteCharts(dashboard(t, func(p *analysis.Params) { p.Statuses = nil }), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, SubjectChartFile)}, paths)
}

func TestSubjectChart(t *testing.T) {
	c := SubjectChart(dashboard(t, nil))

	require.Len(t, c.Bars, 2)
	assert.Equal(t, "Maths", c.Bars[0].Label)
	assert.InDelta(t, 51.25, c.Bars[0].Value, 1e-9)
	assert.Equal(t, 100.0, c.YAxis.Range.GetMax())
}

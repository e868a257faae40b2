package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/models"
)

const barWidth = 40

// Printer renders dashboard views as terminal tables
type Printer struct {
	w       io.Writer
	heading *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		heading: color.New(color.FgYellow),
	}
}

func (p *Printer) title(s string) {
	p.heading.Fprintln(p.w, "\n"+s)
}

func (p *Printer) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

// DisplayFilterCount prints how many students survived the filters.
func (p *Printer) DisplayFilterCount(d *analysis.Dashboard) {
	fmt.Fprintf(p.w, "\nShowing %d students after filters.\n", len(d.Subset))
}

// DisplaySummary prints the headline figures and the active filters.
func (p *Printer) DisplaySummary(d *analysis.Dashboard) {
	p.title("Summary")
	table := p.newTable([]string{"Metric", "Value"})
	table.Append([]string{"Average Percentage", FormatPercent(d.Summary.MeanPercentage)})
	table.Append([]string{"Pass Count", strconv.Itoa(d.Summary.PassCount)})
	table.Append([]string{"Fail Count", strconv.Itoa(d.Summary.FailCount)})
	table.Append([]string{"Percentage Range", fmt.Sprintf("%g - %g", d.Params.Low, d.Params.High)})
	table.Append([]string{"Statuses", StatusList(d.Params.Statuses)})
	table.Render()
}

// DisplayDifficulty prints subjects hardest first.
func (p *Printer) DisplayDifficulty(d *analysis.Dashboard) {
	p.title(fmt.Sprintf("Subject Difficulty (pass mark %s)", formatScore(d.Params.PassThreshold)))
	table := p.newTable([]string{"Subject", "Average Marks", "Fail Count", "Pass Count", "Fail Rate"})
	for _, s := range d.Hardest {
		table.Append([]string{
			s.Subject,
			FormatFloat(s.AvgMarks),
			strconv.Itoa(s.FailCount),
			strconv.Itoa(s.PassCount),
			FormatPercent(s.FailRate),
		})
	}
	table.Render()
}

// DisplayRankings prints the top and bottom performers for the ranking mode.
func (p *Printer) DisplayRankings(d *analysis.Dashboard) {
	p.title(fmt.Sprintf("Top %d Performers (%s)", d.Params.TopN, d.RankKey.Label))
	p.studentTable(d.Subjects, d.Top, false)

	p.title(fmt.Sprintf("Bottom %d Performers (%s)", d.Params.TopN, d.RankKey.Label))
	p.studentTable(d.Subjects, d.Bottom, false)
}

// DisplayDistribution prints the percentage histogram.
func (p *Printer) DisplayDistribution(d *analysis.Dashboard) {
	p.title("Percentage Distribution")
	if len(d.Histogram) == 0 {
		fmt.Fprintln(p.w, "No students to plot.")
		return
	}

	peak := 0
	for _, b := range d.Histogram {
		peak = max(peak, b.Count)
	}

	table := p.newTable([]string{"Percentage Range", "Number of Students", ""})
	for i, b := range d.Histogram {
		table.Append([]string{
			BinLabel(b, i == len(d.Histogram)-1),
			strconv.Itoa(b.Count),
			bar(b.Count, peak, barWidth),
		})
	}
	table.Render()
}

// DisplayStudents lists every filtered student with derived fields.
func (p *Printer) DisplayStudents(d *analysis.Dashboard) {
	p.title("Filtered Students")
	p.studentTable(d.Subjects, d.Subset, true)
}

// DisplayDashboard prints every view in dashboard order.
func (p *Printer) DisplayDashboard(d *analysis.Dashboard) {
	p.DisplayFilterCount(d)
	p.DisplaySummary(d)
	p.DisplayDifficulty(d)
	p.DisplayRankings(d)
	p.DisplayDistribution(d)
}

func (p *Printer) studentTable(subjects []string, records []models.StudentRecord, withTotal bool) {
	header := append([]string{"Student ID"}, subjects...)
	if withTotal {
		header = append(header, "Total Marks")
	}
	header = append(header, "Percentage", "Status")

	table := p.newTable(header)
	for _, rec := range records {
		table.Append(studentRow(rec, withTotal))
	}
	table.Render()
}

func studentRow(rec models.StudentRecord, withTotal bool) []string {
	row := []string{strconv.Itoa(rec.StudentID)}
	for _, s := range rec.Scores {
		row = append(row, formatScore(s))
	}
	if withTotal {
		row = append(row, formatScore(rec.TotalMarks))
	}
	return append(row, FormatFloat(rec.Percentage), string(rec.Status))
}

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/models"
)

// WorkbookFile is the name of the exported workbook inside the export directory.
const WorkbookFile = "results.xlsx"

// Sheet names, in workbook order.
const (
	SheetSummary      = "Summary"
	SheetSubjects     = "Subjects"
	SheetTop          = "Top"
	SheetBottom       = "Bottom"
	SheetDistribution = "Distribution"
	SheetStudents     = "Students"
)

// Workbook builds an in-memory workbook holding every dashboard view. The
// caller closes it.
func Workbook(d *analysis.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile always starts with one default sheet; it becomes Summary.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summaryRows(d)},
		{SheetSubjects, difficultyRows(d.Hardest)},
		{SheetTop, recordRows(d.Subjects, d.Top)},
		{SheetBottom, recordRows(d.Subjects, d.Bottom)},
		{SheetDistribution, binRows(d.Histogram)},
		{SheetStudents, recordRows(d.Subjects, d.Subset)},
	}
	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook saves the dashboard workbook into dir and returns its path.
func WriteWorkbook(d *analysis.Dashboard, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := Workbook(d)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write Excel file: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if name != SheetSummary {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create Excel sheet %s: %w", name, err)
		}
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %s: %w", i+1, name, err)
		}
	}
	return nil
}

// cellValue keeps numbers numeric and writes undefined values as text.
func cellValue(f float64) interface{} {
	if models.IsUndefined(f) {
		return NotAvailable
	}
	return f
}

func summaryRows(d *analysis.Dashboard) [][]interface{} {
	return [][]interface{}{
		{"Metric", "Value"},
		{"Students", d.Summary.Count},
		{"Average Percentage", cellValue(d.Summary.MeanPercentage)},
		{"Pass Count", d.Summary.PassCount},
		{"Fail Count", d.Summary.FailCount},
		{"Percentage Low", d.Params.Low},
		{"Percentage High", d.Params.High},
		{"Statuses", StatusList(d.Params.Statuses)},
		{"Ranking Mode", d.RankKey.Label},
	}
}

func difficultyRows(stats []models.SubjectDifficultyStat) [][]interface{} {
	rows := [][]interface{}{{"Subject", "Average Marks", "Fail Count", "Pass Count", "Fail Rate"}}
	for _, s := range stats {
		rows = append(rows, []interface{}{
			s.Subject, cellValue(s.AvgMarks), s.FailCount, s.PassCount, cellValue(s.FailRate),
		})
	}
	return rows
}

func recordRows(subjects []string, records []models.StudentRecord) [][]interface{} {
	header := []interface{}{"Student ID"}
	for _, s := range subjects {
		header = append(header, s)
	}
	header = append(header, "Result", "Total Marks", "Percentage", "Status")

	rows := [][]interface{}{header}
	for _, rec := range records {
		row := []interface{}{rec.StudentID}
		for _, s := range rec.Scores {
			row = append(row, cellValue(s))
		}
		row = append(row, rec.Result, rec.TotalMarks, cellValue(rec.Percentage), string(rec.Status))
		rows = append(rows, row)
	}
	return rows
}

func binRows(bins []models.Bin) [][]interface{} {
	rows := [][]interface{}{{"Low", "High", "Range", "Number of Students"}}
	for i, b := range bins {
		rows = append(rows, []interface{}{b.Low, b.High, BinLabel(b, i == len(bins)-1), b.Count})
	}
	return rows
}

package loader

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/nonsonwune/student_results/config"
	"github.com/nonsonwune/student_results/models"
)

// columnIndex records where each configured column sits in the source header
type columnIndex struct {
	subjects []int
	result   int
}

// Load reads src and derives every record. Subject scores and the result flag
// are parsed as numbers; they are not range-checked, so scores outside 0..100
// flow through to percentages outside 0..100. A row whose configured cells
// are not all numbers still loads, as an incomplete record.
func Load(ctx context.Context, src Source, schema config.Schema) (*models.Table, error) {
	header, rows, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}

	idx, missing := resolveColumns(header, schema)
	if len(missing) > 0 {
		return nil, schemaMismatch(src.Key(), missing)
	}

	records := make([]models.StudentRecord, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := deriveRecord(row, idx)
		rec.StudentID = i + 1
		records = append(records, rec)
	}

	return &models.Table{
		Subjects: append([]string(nil), schema.Subjects...),
		Records:  records,
	}, nil
}

// resolveColumns finds every configured column in header, collecting all
// absent names rather than stopping at the first. The first of any duplicate
// header names wins.
func resolveColumns(header []string, schema config.Schema) (columnIndex, []string) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	var missing []string
	idx := columnIndex{subjects: make([]int, len(schema.Subjects))}
	for i, subject := range schema.Subjects {
		pos, ok := positions[subject]
		if !ok {
			missing = append(missing, subject)
		}
		idx.subjects[i] = pos
	}

	pos, ok := positions[schema.ResultColumn]
	if !ok {
		missing = append(missing, schema.ResultColumn)
	}
	idx.result = pos

	return idx, missing
}

// deriveRecord computes the derived fields of one row. An undefined score or
// result flag makes TotalMarks and Percentage undefined too.
func deriveRecord(row []string, idx columnIndex) models.StudentRecord {
	scores := make([]float64, len(idx.subjects))
	var total float64
	for i, pos := range idx.subjects {
		scores[i] = parseCell(row, pos)
		total += scores[i]
	}

	flag := parseCell(row, idx.result)
	if models.IsUndefined(flag) {
		total = models.Undefined()
	}

	subjectCount := float64(len(scores))
	return models.StudentRecord{
		Scores:     scores,
		Result:     flag,
		TotalMarks: total,
		Percentage: total / (subjectCount * 100) * 100,
		Status:     models.StatusFromResult(flag),
	}
}

// parseCell reads the number at pos. Absent, blank, unparseable and
// non-finite cells are all undefined.
func parseCell(row []string, pos int) float64 {
	if pos >= len(row) {
		return models.Undefined()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[pos]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Undefined()
	}
	return v
}

package loader

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nonsonwune/student_results/config"
)

// Source yields the raw roster: a header row and the data rows beneath it.
type Source interface {
	// Key identifies the source for memoization.
	Key() string
	Read(ctx context.Context) (header []string, rows [][]string, err error)
}

// NewSource builds the source described by cfg. db is only used for postgres
// sources and may be nil otherwise.
func NewSource(cfg config.SourceConfig, schema config.Schema, db *sql.DB) (Source, error) {
	switch cfg.Type {
	case config.SourceCSV:
		return &CSVSource{Path: cfg.Path, Comma: cfg.Comma()}, nil
	case config.SourceXLSX:
		return &XLSXSource{Path: cfg.Path, Sheet: cfg.Sheet}, nil
	case config.SourcePostgres:
		if db == nil {
			return nil, errors.New("postgres source requires a database connection")
		}
		return &PostgresSource{DB: db, Table: cfg.Table, OrderBy: cfg.OrderBy, Columns: schema.Columns()}, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}

// CSVSource reads a delimited text file with a header row
type CSVSource struct {
	Path  string
	Comma rune
}

func (s *CSVSource) Key() string {
	return "csv:" + s.Path
}

func (s *CSVSource) Read(ctx context.Context) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if s.Comma != 0 {
		reader.Comma = s.Comma
	}
	// Ragged rows are tolerated here; a short row only fails if it lacks a
	// configured column.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), fmt.Errorf("error reading records: %w", err))
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return cleanHeader(records[0]), records[1:], nil
}

// XLSXSource reads one worksheet of an Excel workbook; the first row is the header
type XLSXSource struct {
	Path  string
	Sheet string // first sheet when empty
}

func (s *XLSXSource) Key() string {
	return "xlsx:" + s.Path + "#" + s.Sheet
}

func (s *XLSXSource) Read(ctx context.Context) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return cleanHeader(rows[0]), rows[1:], nil
}

// cleanHeader trims header names and drops a UTF-8 byte order mark
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

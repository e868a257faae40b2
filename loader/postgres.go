package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/nonsonwune/student_results/migrations"
)

// PostgresSource reads the configured columns of a table. Rows come back in
// OrderBy order, or physical order when OrderBy is empty.
type PostgresSource struct {
	DB      *sql.DB
	Table   string
	OrderBy string
	Columns []string
}

func (s *PostgresSource) Key() string {
	return "postgres:" + s.Table + "?order_by=" + s.OrderBy
}

func (s *PostgresSource) Read(ctx context.Context) ([]string, [][]string, error) {
	if err := migrations.VerifyTable(ctx, s.DB, s.Table); err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}

	missing, err := migrations.MissingColumns(ctx, s.DB, s.Table, s.Columns)
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}
	if len(missing) > 0 {
		return nil, nil, schemaMismatch(s.Key(), missing)
	}

	rows, err := s.DB.QueryContext(ctx, s.query())
	if err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(s.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, inputNotFound(s.Key(), fmt.Errorf("error scanning row: %w", err))
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = v.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, inputNotFound(s.Key(), err)
	}

	header := append([]string(nil), s.Columns...)
	return header, out, nil
}

func (s *PostgresSource) query() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = pq.QuoteIdentifier(c)
	}

	order := "ctid"
	if s.OrderBy != "" {
		order = pq.QuoteIdentifier(s.OrderBy)
	}

	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), pq.QuoteIdentifier(s.Table), order)
}

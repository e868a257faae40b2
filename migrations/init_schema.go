package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTableNotFound is returned when the roster table does not exist.
var ErrTableNotFound = errors.New("table does not exist")

// VerifyTable checks that the roster table exists
func VerifyTable(ctx context.Context, db *sql.DB, table string) error {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables 
			WHERE table_schema = current_schema()
			AND table_name = $1
		)`

	if err := db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return nil
}

// MissingColumns returns the entries of columns that table lacks, in the
// order they were asked for
func MissingColumns(ctx context.Context, db *sql.DB, table string, columns []string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		AND table_name = $1`

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, col := range columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}

package store

import (
	"context"
	"fmt"
	"strings"
)

// Result holds a fully materialized result set in engine-returned order.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Execute runs the SQL verbatim on a dedicated connection and materializes
// all rows. The SQL is not inspected: mutating statements and extension
// syntax pass straight through to the engine. The connection is released on
// every exit path.
func (s *Store) Execute(ctx context.Context, query string) (Result, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("store: execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("store: read columns: %w", err)
	}

	var result Result
	result.Columns = columns
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return Result{}, fmt.Errorf("store: scan row: %w", err)
		}
		for i, val := range values {
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("store: iterate rows: %w", err)
	}
	return result, nil
}

// String renders each row as a parenthesized value tuple, rows joined with
// newlines. No header row, no type-aware formatting.
func (r Result) String() string {
	if len(r.Rows) == 0 {
		return ""
	}
	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		lines[i] = formatRow(row)
	}
	return strings.Join(lines, "\n")
}

func formatRow(row []any) string {
	parts := make([]string, len(row))
	for i, val := range row {
		parts[i] = formatValue(val)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(val any) string {
	if val == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", val)
}

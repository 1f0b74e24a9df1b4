package store

import (
	"context"
	"strings"
	"testing"
)

func openTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	s, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestExecuteSingleValue(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	result, err := s.Execute(ctx, "SELECT 1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := result.String(); got != "(1)" {
		t.Fatalf("expected (1), got %q", got)
	}
	if len(result.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(result.Columns))
	}
}

func TestExecuteRowOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	if _, err := s.Execute(ctx, "CREATE TABLE Drug(id VARCHAR, name VARCHAR)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := s.Execute(ctx, "INSERT INTO Drug VALUES ('C1', 'aspirin'), ('C2', 'ibuprofen')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	result, err := s.Execute(ctx, "SELECT id, name FROM Drug ORDER BY id")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := "(C1, aspirin)\n(C2, ibuprofen)"
	if got := result.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExecuteMissingTable(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	_, err := s.Execute(ctx, "SELECT * FROM NoSuchTable")
	if err == nil {
		t.Fatalf("expected error for missing table")
	}
	if !strings.Contains(err.Error(), "NoSuchTable") {
		t.Fatalf("expected error to reference the missing table, got %v", err)
	}
}

func TestExecuteEmptyResult(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	result, err := s.Execute(ctx, "SELECT 1 WHERE 1 = 0")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := result.String(); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestResultString(t *testing.T) {
	result := Result{
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "aspirin"},
			{nil, "unknown"},
		},
	}
	want := "(1, aspirin)\n(NULL, unknown)"
	if got := result.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

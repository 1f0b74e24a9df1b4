package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestConnectionReleasedAfterSuccess(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	if _, err := s.Execute(ctx, "SELECT 1"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if open := s.DB().Stats().OpenConnections; open != 0 {
		t.Fatalf("expected 0 open connections after call, got %d", open)
	}
}

func TestConnectionReleasedAfterFailure(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, Config{})

	if _, err := s.Execute(ctx, "SELECT * FROM NoSuchTable"); err == nil {
		t.Fatalf("expected error")
	}
	if open := s.DB().Stats().OpenConnections; open != 0 {
		t.Fatalf("expected 0 open connections after failed call, got %d", open)
	}
}

func TestExecuteRepeatedWithEmbedder(t *testing.T) {
	ctx := context.Background()
	emb := &countingEmbedder{dim: 4}
	s := openTestStore(t, Config{Embedder: emb})

	for i := 0; i < 3; i++ {
		result, err := s.Execute(ctx, "SELECT 1")
		if err != nil {
			t.Fatalf("execute %d: %v", i, err)
		}
		if got := result.String(); got != "(1)" {
			t.Fatalf("execute %d: expected (1), got %q", i, got)
		}
	}
}

func TestConnectionReleasedWithEmbedder(t *testing.T) {
	ctx := context.Background()
	emb := &countingEmbedder{dim: 4}
	s := openTestStore(t, Config{Embedder: emb})

	for i := 0; i < 2; i++ {
		if _, err := s.Execute(ctx, "SELECT 1"); err != nil {
			t.Fatalf("execute %d: %v", i, err)
		}
		// Only the pinned initialization connection stays open.
		if open := s.DB().Stats().OpenConnections; open != 1 {
			t.Fatalf("execute %d: expected 1 open connection, got %d", i, open)
		}
	}
}

func TestInitializationRetriesAfterFailure(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	s := openTestStore(t, Config{Embedder: emb})

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Execute(canceled, "SELECT 1"); err == nil {
		t.Fatalf("expected error with canceled context")
	}
	if _, err := s.Execute(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("execute after failed initialization: %v", err)
	}
}

func TestOpenCreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drug.db")
	s := openTestStore(t, Config{Path: path})

	if _, err := s.Execute(ctx, "CREATE TABLE MOA(id VARCHAR)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	result, err := s.Execute(ctx, "SELECT count(*) FROM MOA")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got := result.String(); got != "(0)" {
		t.Fatalf("expected (0), got %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Extensions: []Extension{{Name: ""}}}
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected validation error for unnamed extension")
	}
	cfg = Config{Extensions: DefaultExtensions()}
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(cfg.Extensions) != 3 {
		t.Fatalf("expected 3 default extensions, got %d", len(cfg.Extensions))
	}
	if cfg.Extensions[0].Name != "duckpgq" || cfg.Extensions[0].Repository != "community" {
		t.Fatalf("expected duckpgq from community first, got %+v", cfg.Extensions[0])
	}
}

package embeddings

import (
	"context"
	"testing"
)

func TestSimpleEmbedderDeterministic(t *testing.T) {
	ctx := context.Background()
	e := NewSimpleEmbedder(16)

	a, err := e.EmbedQuery(ctx, "aspirin")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	b, err := e.EmbedQuery(ctx, "aspirin")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 dims, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vector not deterministic at %d", i)
		}
	}

	c, err := e.EmbedQuery(ctx, "ibuprofen")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("distinct inputs produced identical vectors")
	}
}

func TestSimpleEmbedderDefaultDim(t *testing.T) {
	e := NewSimpleEmbedder(0)
	vecs, err := e.EmbedDocuments(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vecs) != 2 || len(vecs[0]) != 64 {
		t.Fatalf("expected 2 vectors of 64 dims, got %d x %d", len(vecs), len(vecs[0]))
	}
}

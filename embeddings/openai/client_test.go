package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, dim int, requests *[]Request) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		*requests = append(*requests, req)
		resp := Response{Object: "list", Model: req.Model}
		for i := range req.Input {
			resp.Data = append(resp.Data, EmbeddingData{
				Object:    "embedding",
				Embedding: make([]float32, dim),
				Index:     i,
			})
		}
		resp.Usage = EmbeddingUsage{PromptTokens: 3, TotalTokens: 3}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedQuery(t *testing.T) {
	var requests []Request
	srv := newTestServer(t, 1536, &requests)
	defer srv.Close()

	client := NewClient("sk-test", "")
	client.BaseURL = srv.URL
	client.Dimensions = DefaultDimensions

	vec, err := (&Embedder{C: client}).EmbedQuery(context.Background(), "joint pain")
	if err != nil {
		t.Fatalf("embed query: %v", err)
	}
	if len(vec) != 1536 {
		t.Fatalf("expected 1536 dims, got %d", len(vec))
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	if requests[0].Model != "text-embedding-3-small" {
		t.Fatalf("expected default model, got %q", requests[0].Model)
	}
	if requests[0].Dimensions != DefaultDimensions {
		t.Fatalf("expected %d dimensions, got %d", DefaultDimensions, requests[0].Dimensions)
	}
	if len(requests[0].Input) != 1 || requests[0].Input[0] != "joint pain" {
		t.Fatalf("unexpected input %v", requests[0].Input)
	}
}

func TestEmbedNoCaching(t *testing.T) {
	var requests []Request
	srv := newTestServer(t, 8, &requests)
	defer srv.Close()

	client := NewClient("sk-test", "")
	client.BaseURL = srv.URL
	embedder := &Embedder{C: client}

	for i := 0; i < 2; i++ {
		if _, err := embedder.EmbedQuery(context.Background(), "same text"); err != nil {
			t.Fatalf("embed query %d: %v", i, err)
		}
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 independent requests, got %d", len(requests))
	}
}

func TestEmbedAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk-bad", "")
	client.BaseURL = srv.URL

	_, _, err := client.Embed(context.Background(), []string{"x"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

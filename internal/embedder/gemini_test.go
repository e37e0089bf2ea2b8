package embedder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGemini_NestedValuesShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embedding":{"values":[1,2,3,4]}}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 4)
	vecs, err := g.EmbedBatch(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if len(vecs) != 1 || len(vecs[0]) != 4 {
		t.Fatalf("expected 1 vector of dim 4, got %v", vecs)
	}
	if vecs[0][0] != 1 || vecs[0][3] != 4 {
		t.Errorf("unexpected vector: %v", vecs[0])
	}
}

func TestGemini_DirectListShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embedding":[5,6,7,8]}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 4)
	vecs, err := g.EmbedBatch(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if vecs[0][0] != 5 {
		t.Errorf("unexpected vector: %v", vecs[0])
	}
}

func TestGemini_UnrecognizedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embedding":"not a vector"}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 4)
	_, err := g.EmbedBatch(context.Background(), []string{"hello"})

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if respErr.Provider != "gemini" {
		t.Errorf("expected provider gemini, got %q", respErr.Provider)
	}
}

func TestGemini_MissingEmbeddingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 4)
	_, err := g.EmbedBatch(context.Background(), []string{"hello"})

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
}

func TestGemini_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "bad-key", "models/text-embedding-004", 4)
	_, err := g.EmbedBatch(context.Background(), []string{"hello"})

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if respErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", respErr.Status)
	}
}

func TestGemini_NormalizesToTargetDim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Provider returns 3 dims, target is 5
		fmt.Fprint(w, `{"embedding":{"values":[1,2,3]}}`)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 5)
	vecs, err := g.EmbedBatch(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if len(vecs[0]) != 5 {
		t.Fatalf("expected dim 5, got %d", len(vecs[0]))
	}
	if vecs[0][3] != 0 || vecs[0][4] != 0 {
		t.Errorf("expected zero padding, got %v", vecs[0])
	}
}

func TestGemini_BatchOrderAndLength(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"embedding":{"values":[%d,0]}}`, calls)
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 2)
	vecs, err := g.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	for i, v := range vecs {
		if v[0] != float32(i+1) {
			t.Errorf("vector %d out of order: %v", i, v)
		}
	}
}

func TestGemini_EmptyInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call for empty input")
	}))
	defer server.Close()

	g := NewGemini(server.URL, "key", "models/text-embedding-004", 4)
	vecs, err := g.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vecs) != 0 {
		t.Errorf("expected empty result, got %v", vecs)
	}
}

//go:build cgo

package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/jodahe1/AcademicHelper/internal/storage"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

func newTestSQLite(t *testing.T) storage.Storage {
	t.Helper()

	f, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	store, err := storage.NewSQLite(f.Name(), 4)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func addSource(t *testing.T, store storage.Storage, title, authors string) *types.Source {
	t.Helper()

	src, err := store.Add(context.Background(), types.Source{
		Title:      title,
		Authors:    authors,
		SourceType: types.TypePaper,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return src
}

func TestSQLite_AddAndList(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	year := 2017
	src, err := store.Add(ctx, types.Source{
		Title:           "Attention Is All You Need",
		Authors:         "Vaswani et al.",
		PublicationYear: &year,
		Abstract:        "We propose the Transformer.",
		SourceType:      types.TypePaper,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if src.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if src.Embedded() {
		t.Error("new source should not have an embedding")
	}

	listed, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 source, got %d", len(listed))
	}
	if listed[0].PublicationYear == nil || *listed[0].PublicationYear != 2017 {
		t.Errorf("publication year not round-tripped: %v", listed[0].PublicationYear)
	}
}

func TestSQLite_Add_InvalidType(t *testing.T) {
	store := newTestSQLite(t)

	_, err := store.Add(context.Background(), types.Source{
		Title:      "Bad",
		Authors:    "Nobody",
		SourceType: "thesis",
	})
	if err == nil {
		t.Error("expected error for invalid source type")
	}
}

func TestSQLite_MissingEmbeddings(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	a := addSource(t, store, "First", "Alice")
	b := addSource(t, store, "Second", "Bob")

	missing, err := store.MissingEmbeddings(ctx)
	if err != nil {
		t.Fatalf("MissingEmbeddings failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing, got %d", len(missing))
	}

	err = store.StoreEmbeddings(ctx, []storage.EmbeddingUpdate{
		{SourceID: a.ID, Vector: []float32{1, 0, 0, 0}},
	})
	if err != nil {
		t.Fatalf("StoreEmbeddings failed: %v", err)
	}

	missing, err = store.MissingEmbeddings(ctx)
	if err != nil {
		t.Fatalf("MissingEmbeddings failed: %v", err)
	}
	if len(missing) != 1 || missing[0].ID != b.ID {
		t.Errorf("expected only source %d missing, got %+v", b.ID, missing)
	}
}

func TestSQLite_NearestByVector(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	stats := addSource(t, store, "Statistics", "Fisher")
	neural := addSource(t, store, "Neural Networks", "McCulloch, Pitts")

	err := store.StoreEmbeddings(ctx, []storage.EmbeddingUpdate{
		{SourceID: stats.ID, Vector: []float32{1, 0, 0, 0}},
		{SourceID: neural.ID, Vector: []float32{0, 1, 0, 0}},
	})
	if err != nil {
		t.Fatalf("StoreEmbeddings failed: %v", err)
	}

	got, err := store.NearestByVector(ctx, []float32{1, 0, 0, 0}, 1)
	if err != nil {
		t.Fatalf("NearestByVector failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].ID != stats.ID {
		t.Errorf("expected %q nearest, got %q", "Statistics", got[0].Title)
	}
}

func TestSQLite_NearestByVector_SkipsUnembedded(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	embedded := addSource(t, store, "Embedded", "Alice")
	addSource(t, store, "Unembedded", "Bob")

	err := store.StoreEmbeddings(ctx, []storage.EmbeddingUpdate{
		{SourceID: embedded.ID, Vector: []float32{1, 0, 0, 0}},
	})
	if err != nil {
		t.Fatalf("StoreEmbeddings failed: %v", err)
	}

	got, err := store.NearestByVector(ctx, []float32{1, 0, 0, 0}, 10)
	if err != nil {
		t.Fatalf("NearestByVector failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only embedded sources, got %d results", len(got))
	}
}

func TestSQLite_SearchLexical(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	addSource(t, store, "Machine Learning Basics", "Goodfellow")
	addSource(t, store, "Organic Chemistry", "Clayden")
	addSource(t, store, "Statistics", "A. Machin")

	got, err := store.SearchLexical(ctx, "MACHI", 10)
	if err != nil {
		t.Fatalf("SearchLexical failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches on title or authors, got %d", len(got))
	}

	got, err = store.SearchLexical(ctx, "quantum", 10)
	if err != nil {
		t.Fatalf("SearchLexical failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestSQLite_SearchLexical_Limit(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	addSource(t, store, "Linear Algebra I", "Strang")
	addSource(t, store, "Linear Algebra II", "Strang")
	addSource(t, store, "Linear Algebra III", "Strang")

	got, err := store.SearchLexical(ctx, "linear", 2)
	if err != nil {
		t.Fatalf("SearchLexical failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit of 2 respected, got %d", len(got))
	}
}

package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/jodahe1/AcademicHelper/internal/storage"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

func mongoStore(t *testing.T) storage.Storage {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set, skipping MongoDB tests")
	}

	ctx := context.Background()
	store, err := storage.NewMongoDB(ctx, uri, "academichelper_test", 4)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMongoDB_AddAndIngestRoundTrip(t *testing.T) {
	store := mongoStore(t)
	ctx := context.Background()

	src, err := store.Add(ctx, types.Source{
		Title:      "Pattern Recognition",
		Authors:    "Bishop",
		SourceType: types.TypeTextbook,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if src.ID == 0 {
		t.Error("expected non-zero ID")
	}

	missing, err := store.MissingEmbeddings(ctx)
	if err != nil {
		t.Fatalf("MissingEmbeddings failed: %v", err)
	}
	found := false
	for _, m := range missing {
		if m.ID == src.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("new source should be missing an embedding")
	}

	err = store.StoreEmbeddings(ctx, []storage.EmbeddingUpdate{
		{SourceID: src.ID, Vector: []float32{1, 0, 0, 0}},
	})
	if err != nil {
		t.Fatalf("StoreEmbeddings failed: %v", err)
	}

	got, err := store.NearestByVector(ctx, []float32{1, 0, 0, 0}, 1)
	if err != nil {
		t.Fatalf("NearestByVector failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one nearest result")
	}
}

func TestMongoDB_SearchLexical(t *testing.T) {
	store := mongoStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, types.Source{
		Title:      "Convex Optimization",
		Authors:    "Boyd, Vandenberghe",
		SourceType: types.TypeTextbook,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := store.SearchLexical(ctx, "convex", 5)
	if err != nil {
		t.Fatalf("SearchLexical failed: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected case-insensitive title match")
	}
}

package storage

import (
	"context"

	"github.com/jodahe1/AcademicHelper/internal/types"
)

// EmbeddingUpdate assigns a vector to a source record.
type EmbeddingUpdate struct {
	SourceID int64
	Vector   []float32
}

// Storage defines the record-store capabilities the retrieval subsystem
// depends on. Implementations must be safe for concurrent use across
// independent requests.
type Storage interface {
	// Add inserts a new source record. The embedding field is never set
	// here; records become searchable by vector only after ingestion.
	Add(ctx context.Context, src types.Source) (*types.Source, error)

	// List returns recent sources in store order, newest first.
	List(ctx context.Context, limit int) ([]types.Source, error)

	// MissingEmbeddings returns all sources that have no embedding yet.
	MissingEmbeddings(ctx context.Context) ([]types.Source, error)

	// StoreEmbeddings assigns vectors to sources as a single atomic batch:
	// either every update is committed or none is.
	StoreEmbeddings(ctx context.Context, updates []EmbeddingUpdate) error

	// NearestByVector returns up to limit embedded sources ordered by
	// cosine distance to vec, nearest first. Sources without an embedding
	// are invisible to this query.
	NearestByVector(ctx context.Context, vec []float32, limit int) ([]types.Source, error)

	// SearchLexical returns up to limit sources whose title or authors
	// contain query, case-insensitively, in store order.
	SearchLexical(ctx context.Context, query string, limit int) ([]types.Source, error)

	Close() error
}

// internal/service/service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jodahe1/AcademicHelper/internal/embedder"
	"github.com/jodahe1/AcademicHelper/internal/storage"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

// Service contains the business logic for source ingestion and search
type Service struct {
	storage      storage.Storage
	embedder     embedder.Embedder
	defaultLimit int
}

// New creates a new Service. emb may be nil when no provider is configured;
// ingestion then fails and search always uses the lexical path.
func New(store storage.Storage, emb embedder.Embedder, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	return &Service{
		storage:      store,
		embedder:     emb,
		defaultLimit: defaultLimit,
	}
}

// BuildSourceText concatenates the embeddable fields of a source in fixed
// order, skipping empty ones. All four empty yields an empty string.
func BuildSourceText(src types.Source) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{src.Title, src.Authors, src.Abstract, src.FullText} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// IngestMissing embeds every source that lacks a vector and persists the
// whole batch in one atomic write. Running it again with no new sources is a
// no-op: zero provider calls, zero returned. Any provider or store failure
// aborts the entire batch; no record is partially committed.
func (s *Service) IngestMissing(ctx context.Context) (int, error) {
	sources, err := s.storage.MissingEmbeddings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to query missing embeddings: %w", err)
	}
	if len(sources) == 0 {
		return 0, nil
	}

	if s.embedder == nil {
		return 0, embedder.ErrNoProvider
	}

	texts := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = BuildSourceText(src)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(sources) {
		return 0, &embedder.ResponseError{
			Provider: s.embedder.Name(),
			Shape:    fmt.Sprintf("expected %d vectors, got %d", len(sources), len(vectors)),
		}
	}

	updates := make([]storage.EmbeddingUpdate, len(sources))
	for i, src := range sources {
		updates[i] = storage.EmbeddingUpdate{SourceID: src.ID, Vector: vectors[i]}
	}

	if err := s.storage.StoreEmbeddings(ctx, updates); err != nil {
		return 0, fmt.Errorf("failed to store embeddings: %w", err)
	}

	return len(sources), nil
}

// Search ranks sources by vector similarity to the query, falling back to a
// case-insensitive substring match over title and authors when the provider
// fails or the vector path yields nothing. Provider errors never reach the
// caller; store errors always do.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	if s.embedder == nil {
		return s.storage.SearchLexical(ctx, query, limit)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		return s.storage.SearchLexical(ctx, query, limit)
	}

	sources, err := s.storage.NearestByVector(ctx, vectors[0], limit)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	if len(sources) == 0 {
		return s.storage.SearchLexical(ctx, query, limit)
	}

	return sources, nil
}

// AddSource creates a new source record. It is never embedded here; the next
// ingestion run picks it up.
func (s *Service) AddSource(ctx context.Context, src types.Source) (*types.Source, error) {
	if err := src.SourceType.Validate(); err != nil {
		return nil, err
	}
	return s.storage.Add(ctx, src)
}

// List returns recent sources
func (s *Service) List(ctx context.Context, limit int) ([]types.Source, error) {
	return s.storage.List(ctx, limit)
}

// Close cleans up resources
func (s *Service) Close() error {
	return s.storage.Close()
}

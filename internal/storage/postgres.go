package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/jodahe1/AcademicHelper/internal/types"
)

// Postgres implements Storage using PostgreSQL with pgvector
type Postgres struct {
	pool *pgxpool.Pool
	dim  int
}

// NewPostgres creates a new Postgres storage
func NewPostgres(ctx context.Context, dsn string, dim int) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	p := &Postgres{pool: pool, dim: dim}
	if err := p.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return p, nil
}

func (p *Postgres) initSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
		CREATE EXTENSION IF NOT EXISTS vector;

		CREATE TABLE IF NOT EXISTS academic_sources (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			publication_year INTEGER,
			abstract TEXT,
			full_text TEXT,
			source_type TEXT NOT NULL CHECK(source_type IN ('paper', 'textbook', 'course_material')),
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_sources_type ON academic_sources(source_type);
		CREATE INDEX IF NOT EXISTS idx_sources_created_at ON academic_sources(created_at);

		CREATE INDEX IF NOT EXISTS idx_sources_embedding
		ON academic_sources USING hnsw (embedding vector_cosine_ops);
	`, p.dim)
	_, err := p.pool.Exec(ctx, schema)
	return err
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) Add(ctx context.Context, src types.Source) (*types.Source, error) {
	var id int64
	var createdAt time.Time
	err := p.pool.QueryRow(ctx,
		`INSERT INTO academic_sources (title, authors, publication_year, abstract, full_text, source_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		src.Title, src.Authors, src.PublicationYear, src.Abstract, src.FullText, src.SourceType,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert source: %w", err)
	}

	out := src
	out.ID = id
	out.CreatedAt = createdAt
	out.Embedding = nil
	return &out, nil
}

func (p *Postgres) List(ctx context.Context, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 10
	}

	return p.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (p *Postgres) MissingEmbeddings(ctx context.Context) ([]types.Source, error) {
	return p.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		WHERE embedding IS NULL
		ORDER BY id
	`)
}

func (p *Postgres) StoreEmbeddings(ctx context.Context, updates []EmbeddingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		tag, err := tx.Exec(ctx,
			`UPDATE academic_sources SET embedding = $1 WHERE id = $2`,
			pgvector.NewVector(u.Vector), u.SourceID,
		)
		if err != nil {
			return fmt.Errorf("failed to store embedding for source %d: %w", u.SourceID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("source with id %d not found", u.SourceID)
		}
	}

	return tx.Commit(ctx)
}

func (p *Postgres) NearestByVector(ctx context.Context, vec []float32, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	return p.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(vec), limit)
}

func (p *Postgres) SearchLexical(ctx context.Context, query string, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	pattern := "%" + query + "%"
	return p.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		WHERE title ILIKE $1 OR authors ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`, pattern, limit)
}

// querySources scans source rows. Embedding vectors stay in the database;
// distance ordering happens in SQL, so result structs carry a nil embedding.
func (p *Postgres) querySources(ctx context.Context, query string, args ...interface{}) ([]types.Source, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []types.Source
	for rows.Next() {
		var s types.Source
		var srcType string
		var year *int
		var abstract, fullText *string

		err := rows.Scan(&s.ID, &s.Title, &s.Authors, &year, &abstract, &fullText, &srcType, &s.CreatedAt)
		if err != nil {
			return nil, err
		}

		s.SourceType = types.SourceType(srcType)
		s.PublicationYear = year
		if abstract != nil {
			s.Abstract = *abstract
		}
		if fullText != nil {
			s.FullText = *fullText
		}

		sources = append(sources, s)
	}

	return sources, rows.Err()
}

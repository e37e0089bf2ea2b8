//go:build cgo

// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jodahe1/AcademicHelper/internal/types"
)

// SQLite implements Storage using SQLite with sqlite-vec
type SQLite struct {
	conn *sql.DB
	dim  int
}

// NewSQLite creates a new SQLite storage
func NewSQLite(path string, dim int) (*SQLite, error) {
	sqlite_vec.Auto()

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLite{conn: conn, dim: dim}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLite) initSchema() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS academic_sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			publication_year INTEGER,
			abstract TEXT,
			full_text TEXT,
			source_type TEXT NOT NULL CHECK(source_type IN ('paper', 'textbook', 'course_material')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_sources_type ON academic_sources(source_type);

		CREATE VIRTUAL TABLE IF NOT EXISTS source_embeddings USING vec0(
			source_id INTEGER PRIMARY KEY,
			embedding FLOAT[%d]
		);
	`, s.dim)
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) Add(ctx context.Context, src types.Source) (*types.Source, error) {
	if err := src.SourceType.Validate(); err != nil {
		return nil, err
	}

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO academic_sources (title, authors, publication_year, abstract, full_text, source_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		src.Title, src.Authors, src.PublicationYear, src.Abstract, src.FullText, src.SourceType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert source: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	out := src
	out.ID = id
	out.CreatedAt = time.Now()
	out.Embedding = nil
	return &out, nil
}

func (s *SQLite) List(ctx context.Context, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
}

func (s *SQLite) MissingEmbeddings(ctx context.Context) ([]types.Source, error) {
	return s.querySources(ctx, `
		SELECT s.id, s.title, s.authors, s.publication_year, s.abstract, s.full_text, s.source_type, s.created_at
		FROM academic_sources s
		LEFT JOIN source_embeddings e ON s.id = e.source_id
		WHERE e.source_id IS NULL
		ORDER BY s.id
	`)
}

func (s *SQLite) StoreEmbeddings(ctx context.Context, updates []EmbeddingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		embeddingJSON, err := json.Marshal(u.Vector)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO source_embeddings (source_id, embedding) VALUES (?, ?)`,
			u.SourceID, string(embeddingJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to store embedding for source %d: %w", u.SourceID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) NearestByVector(ctx context.Context, vec []float32, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	embeddingJSON, err := json.Marshal(vec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding: %w", err)
	}

	return s.querySources(ctx, `
		SELECT s.id, s.title, s.authors, s.publication_year, s.abstract, s.full_text, s.source_type, s.created_at
		FROM academic_sources s
		JOIN source_embeddings e ON s.id = e.source_id
		ORDER BY vec_distance_cosine(e.embedding, ?)
		LIMIT ?
	`, string(embeddingJSON), limit)
}

func (s *SQLite) SearchLexical(ctx context.Context, query string, limit int) ([]types.Source, error) {
	if limit <= 0 {
		limit = 5
	}

	pattern := "%" + query + "%"
	return s.querySources(ctx, `
		SELECT id, title, authors, publication_year, abstract, full_text, source_type, created_at
		FROM academic_sources
		WHERE lower(title) LIKE lower(?) OR lower(authors) LIKE lower(?)
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, pattern, pattern, limit)
}

func (s *SQLite) querySources(ctx context.Context, query string, args ...interface{}) ([]types.Source, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []types.Source
	for rows.Next() {
		var src types.Source
		var srcType string
		var year sql.NullInt64
		var abstract, fullText sql.NullString

		if err := rows.Scan(&src.ID, &src.Title, &src.Authors, &year, &abstract, &fullText, &srcType, &src.CreatedAt); err != nil {
			return nil, err
		}

		src.SourceType = types.SourceType(srcType)
		if year.Valid {
			y := int(year.Int64)
			src.PublicationYear = &y
		}
		if abstract.Valid {
			src.Abstract = abstract.String
		}
		if fullText.Valid {
			src.FullText = fullText.String
		}

		sources = append(sources, src)
	}

	return sources, rows.Err()
}

//go:build !cgo

package storage

import (
	"context"
	"fmt"

	"github.com/jodahe1/AcademicHelper/internal/types"
)

// SQLite is a stub for non-CGO builds
type SQLite struct{}

var errNoCGO = fmt.Errorf("SQLite storage requires CGO (build with CGO_ENABLED=1)")

// NewSQLite returns an error in non-CGO builds
func NewSQLite(path string, dim int) (*SQLite, error) {
	return nil, errNoCGO
}

func (s *SQLite) Add(ctx context.Context, src types.Source) (*types.Source, error) {
	return nil, errNoCGO
}

func (s *SQLite) List(ctx context.Context, limit int) ([]types.Source, error) {
	return nil, errNoCGO
}

func (s *SQLite) MissingEmbeddings(ctx context.Context) ([]types.Source, error) {
	return nil, errNoCGO
}

func (s *SQLite) StoreEmbeddings(ctx context.Context, updates []EmbeddingUpdate) error {
	return errNoCGO
}

func (s *SQLite) NearestByVector(ctx context.Context, vec []float32, limit int) ([]types.Source, error) {
	return nil, errNoCGO
}

func (s *SQLite) SearchLexical(ctx context.Context, query string, limit int) ([]types.Source, error) {
	return nil, errNoCGO
}

func (s *SQLite) Close() error {
	return nil
}

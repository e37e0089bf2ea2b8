// internal/types/types.go
// Package types contains shared data types that have no CGO dependencies.
// This allows packages like the shim to use the Source type without pulling in sqlite-vec.
package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a source is not found
var ErrNotFound = errors.New("source not found")

// SourceType categorizes an academic source
type SourceType string

const (
	TypePaper          SourceType = "paper"
	TypeTextbook       SourceType = "textbook"
	TypeCourseMaterial SourceType = "course_material"
)

// Valid returns true if the SourceType is a known valid type
func (t SourceType) Valid() bool {
	switch t {
	case TypePaper, TypeTextbook, TypeCourseMaterial:
		return true
	}
	return false
}

// Validate returns an error if the SourceType is invalid
func (t SourceType) Validate() error {
	if !t.Valid() {
		return fmt.Errorf("invalid source type %q: must be paper, textbook, or course_material", t)
	}
	return nil
}

// Source represents an academic source record.
// Embedding is nil until an ingestion pass has processed the record;
// once set it has exactly the configured target dimension.
type Source struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Authors         string     `json:"authors"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	Abstract        string     `json:"abstract,omitempty"`
	FullText        string     `json:"full_text,omitempty"`
	SourceType      SourceType `json:"source_type"`
	Embedding       []float32  `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Embedded reports whether the source has an embedding vector.
func (s *Source) Embedded() bool {
	return len(s.Embedding) > 0
}

// SourceSummary is the search-result projection of a Source.
type SourceSummary struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Authors         string     `json:"authors"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	SourceType      SourceType `json:"source_type"`
}

// Summary returns the search-result projection of the source.
func (s *Source) Summary() SourceSummary {
	return SourceSummary{
		ID:              s.ID,
		Title:           s.Title,
		Authors:         s.Authors,
		PublicationYear: s.PublicationYear,
		SourceType:      s.SourceType,
	}
}

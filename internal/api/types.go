// internal/api/types.go
package api

import "github.com/jodahe1/AcademicHelper/internal/types"

// AddSourceRequest is the body of POST /v1/sources
type AddSourceRequest struct {
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	Abstract        string `json:"abstract,omitempty"`
	FullText        string `json:"full_text,omitempty"`
	SourceType      string `json:"source_type"`
}

// AddSourceResponse is the response of POST /v1/sources
type AddSourceResponse struct {
	Source *types.Source `json:"source"`
}

// ListResponse is the response of GET /v1/sources
type ListResponse struct {
	Sources []types.Source `json:"sources"`
}

// IngestResponse is the response of POST /v1/ingest
type IngestResponse struct {
	Embedded int `json:"embedded"`
}

// SearchResponse is the response of GET /v1/search
type SearchResponse struct {
	Results []types.SourceSummary `json:"results"`
}

// ErrorResponse is the common error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

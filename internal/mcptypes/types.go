// internal/mcptypes/types.go
// Package mcptypes contains shared MCP tool input/output types.
// These are used by both the direct MCP server (tools) and the shim proxy.
package mcptypes

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jodahe1/AcademicHelper/internal/types"
)

// AddInput defines the input schema for ah_add
type AddInput struct {
	Title           string `json:"title" jsonschema:"required" jsonschema_description:"Title of the academic source"`
	Authors         string `json:"authors" jsonschema:"required" jsonschema_description:"Authors, comma separated"`
	PublicationYear int    `json:"publication_year,omitempty" jsonschema_description:"Year of publication"`
	Abstract        string `json:"abstract,omitempty" jsonschema_description:"Abstract text"`
	FullText        string `json:"full_text,omitempty" jsonschema_description:"Full text of the source"`
	SourceType      string `json:"source_type" jsonschema:"required" jsonschema_description:"Type of source: paper, textbook, or course_material"`
}

// AddOutput defines the output schema for ah_add
type AddOutput struct {
	Source *types.Source `json:"source"`
}

// SearchInput defines the input schema for ah_search
type SearchInput struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Search query to find relevant sources"`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results (default: 5)"`
}

// SearchOutput defines the output schema for ah_search
type SearchOutput struct {
	Results []types.SourceSummary `json:"results"`
}

// IngestInput defines the input schema for ah_ingest
type IngestInput struct{}

// IngestOutput defines the output schema for ah_ingest
type IngestOutput struct {
	Embedded int `json:"embedded"`
}

// ListInput defines the input schema for ah_list
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of results (default: 20)"`
}

// ListOutput defines the output schema for ah_list
type ListOutput struct {
	Sources []types.Source `json:"sources"`
}

// TextResult creates a successful MCP result with text content
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ErrorResult creates an error MCP result
func ErrorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// Tool definitions (shared between server and shim)
var (
	AddTool = &mcp.Tool{
		Name:        "ah_add",
		Description: "Add a new academic source (paper, textbook, or course material)",
	}

	SearchTool = &mcp.Tool{
		Name:        "ah_search",
		Description: "Search academic sources by semantic similarity",
	}

	IngestTool = &mcp.Tool{
		Name:        "ah_ingest",
		Description: "Embed all sources that do not have an embedding yet",
	}

	ListTool = &mcp.Tool{
		Name:        "ah_list",
		Description: "List recent academic sources",
	}
)

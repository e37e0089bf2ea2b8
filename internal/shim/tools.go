// internal/shim/tools.go
package shim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jodahe1/AcademicHelper/internal/api"
	"github.com/jodahe1/AcademicHelper/internal/mcptypes"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

// APIClient is the subset of the HTTP client the shim needs
type APIClient interface {
	AddSource(ctx context.Context, req api.AddSourceRequest) (*types.Source, error)
	Search(ctx context.Context, query string, limit int) ([]types.SourceSummary, error)
	Ingest(ctx context.Context) (int, error)
	List(ctx context.Context, limit int) ([]types.Source, error)
}

// Handler holds shim dependencies
type Handler struct {
	client APIClient
}

// NewHandler creates a new shim handler
func NewHandler(c APIClient) *Handler {
	return &Handler{client: c}
}

// Register adds all AH tools to the MCP server
func Register(server *mcp.Server, h *Handler) {
	mcp.AddTool(server, mcptypes.AddTool, h.Add)
	mcp.AddTool(server, mcptypes.SearchTool, h.Search)
	mcp.AddTool(server, mcptypes.IngestTool, h.Ingest)
	mcp.AddTool(server, mcptypes.ListTool, h.List)
}

func (h *Handler) Add(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.AddInput) (*mcp.CallToolResult, mcptypes.AddOutput, error) {
	if input.Title == "" || input.Authors == "" {
		return mcptypes.ErrorResult("title and authors are required"), mcptypes.AddOutput{}, nil
	}

	addReq := api.AddSourceRequest{
		Title:      input.Title,
		Authors:    input.Authors,
		Abstract:   input.Abstract,
		FullText:   input.FullText,
		SourceType: input.SourceType,
	}
	if input.PublicationYear != 0 {
		year := input.PublicationYear
		addReq.PublicationYear = &year
	}

	source, err := h.client.AddSource(ctx, addReq)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to store source: %v", err)), mcptypes.AddOutput{}, nil
	}

	result, _ := json.MarshalIndent(source, "", "  ")
	return mcptypes.TextResult(fmt.Sprintf("Source added successfully:\n%s", string(result))), mcptypes.AddOutput{Source: source}, nil
}

func (h *Handler) Search(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.SearchInput) (*mcp.CallToolResult, mcptypes.SearchOutput, error) {
	if input.Query == "" {
		return mcptypes.ErrorResult("query is required"), mcptypes.SearchOutput{}, nil
	}

	results, err := h.client.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to search: %v", err)), mcptypes.SearchOutput{}, nil
	}

	if len(results) == 0 {
		return mcptypes.TextResult("No matching sources found."), mcptypes.SearchOutput{Results: []types.SourceSummary{}}, nil
	}

	formatted, _ := json.MarshalIndent(results, "", "  ")
	return mcptypes.TextResult(string(formatted)), mcptypes.SearchOutput{Results: results}, nil
}

func (h *Handler) Ingest(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.IngestInput) (*mcp.CallToolResult, mcptypes.IngestOutput, error) {
	n, err := h.client.Ingest(ctx)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to ingest: %v", err)), mcptypes.IngestOutput{}, nil
	}

	return mcptypes.TextResult(fmt.Sprintf("Embedded %d sources.", n)), mcptypes.IngestOutput{Embedded: n}, nil
}

func (h *Handler) List(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.ListInput) (*mcp.CallToolResult, mcptypes.ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	sources, err := h.client.List(ctx, limit)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to list: %v", err)), mcptypes.ListOutput{}, nil
	}

	if len(sources) == 0 {
		return mcptypes.TextResult("No sources found."), mcptypes.ListOutput{Sources: []types.Source{}}, nil
	}

	result, _ := json.MarshalIndent(sources, "", "  ")
	return mcptypes.TextResult(string(result)), mcptypes.ListOutput{Sources: sources}, nil
}

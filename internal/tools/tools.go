package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jodahe1/AcademicHelper/internal/mcptypes"
	"github.com/jodahe1/AcademicHelper/internal/service"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

// Handler holds dependencies for tool handlers
type Handler struct {
	svc *service.Service
}

// NewHandler creates a tool handler over the local service
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register adds all AH tools to the MCP server
func Register(server *mcp.Server, svc *service.Service) {
	h := NewHandler(svc)

	mcp.AddTool(server, mcptypes.AddTool, h.Add)
	mcp.AddTool(server, mcptypes.SearchTool, h.Search)
	mcp.AddTool(server, mcptypes.IngestTool, h.Ingest)
	mcp.AddTool(server, mcptypes.ListTool, h.List)
}

func (h *Handler) Add(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.AddInput) (*mcp.CallToolResult, mcptypes.AddOutput, error) {
	if input.Title == "" || input.Authors == "" {
		return mcptypes.ErrorResult("title and authors are required"), mcptypes.AddOutput{}, nil
	}

	src := types.Source{
		Title:      input.Title,
		Authors:    input.Authors,
		Abstract:   input.Abstract,
		FullText:   input.FullText,
		SourceType: types.SourceType(input.SourceType),
	}
	if input.PublicationYear != 0 {
		year := input.PublicationYear
		src.PublicationYear = &year
	}

	stored, err := h.svc.AddSource(ctx, src)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to store source: %v", err)), mcptypes.AddOutput{}, nil
	}

	result, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to format response: %v", err)), mcptypes.AddOutput{}, nil
	}
	return mcptypes.TextResult(fmt.Sprintf("Source added successfully:\n%s", string(result))), mcptypes.AddOutput{Source: stored}, nil
}

func (h *Handler) Search(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.SearchInput) (*mcp.CallToolResult, mcptypes.SearchOutput, error) {
	if input.Query == "" {
		return mcptypes.ErrorResult("query is required"), mcptypes.SearchOutput{}, nil
	}

	sources, err := h.svc.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to search: %v", err)), mcptypes.SearchOutput{}, nil
	}

	results := make([]types.SourceSummary, 0, len(sources))
	for _, s := range sources {
		results = append(results, s.Summary())
	}

	if len(results) == 0 {
		return mcptypes.TextResult("No matching sources found."), mcptypes.SearchOutput{Results: results}, nil
	}

	formatted, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to format response: %v", err)), mcptypes.SearchOutput{}, nil
	}
	return mcptypes.TextResult(string(formatted)), mcptypes.SearchOutput{Results: results}, nil
}

func (h *Handler) Ingest(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.IngestInput) (*mcp.CallToolResult, mcptypes.IngestOutput, error) {
	n, err := h.svc.IngestMissing(ctx)
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

	sources, err := h.svc.List(ctx, limit)
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to list: %v", err)), mcptypes.ListOutput{}, nil
	}

	if len(sources) == 0 {
		return mcptypes.TextResult("No sources found."), mcptypes.ListOutput{Sources: []types.Source{}}, nil
	}

	result, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return mcptypes.ErrorResult(fmt.Sprintf("failed to format response: %v", err)), mcptypes.ListOutput{}, nil
	}
	return mcptypes.TextResult(string(result)), mcptypes.ListOutput{Sources: sources}, nil
}

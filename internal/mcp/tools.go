// Package mcp exposes the evaluation framework over the Model Context
// Protocol: listing catalogs, running evaluations, scoring single
// responses, and retrieving past runs.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nutritionlabs/nutrition-eval/internal/server"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// list_catalogs
	listTool := mcp.NewTool("list_catalogs",
		mcp.WithDescription("List available nutrition evaluation catalogs with metadata"),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListCatalogs(ctx, request, sc)
	})

	// run_evaluation
	runTool := mcp.NewTool("run_evaluation",
		mcp.WithDescription("Run a catalog's prompt battery against a model and return the run summary"),
		mcp.WithString("catalog",
			mcp.Required(),
			mcp.Description("Name of the catalog to run (e.g. 'calorieking-v1')"),
		),
		mcp.WithString("model",
			mcp.Required(),
			mcp.Description("Model name to evaluate"),
		),
		mcp.WithString("endpoint",
			mcp.Description("OpenAI-compatible endpoint URL (overrides the default client)"),
		),
		mcp.WithNumber("temperature",
			mcp.Description("Temperature for generation (default: 0.1)"),
		),
		mcp.WithString("scoring",
			mcp.Description("Scoring mode: structured or heuristic (default: from catalog config)"),
		),
	)
	s.AddTool(runTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunEvaluation(ctx, request, sc)
	})

	// score_response
	scoreTool := mcp.NewTool("score_response",
		mcp.WithDescription("Score a single response text against a catalog prompt's expected answer"),
		mcp.WithString("catalog",
			mcp.Required(),
			mcp.Description("Name of the catalog the prompt belongs to"),
		),
		mcp.WithString("prompt_id",
			mcp.Required(),
			mcp.Description("Prompt identifier (e.g. '1A')"),
		),
		mcp.WithString("response",
			mcp.Required(),
			mcp.Description("Response text to score"),
		),
	)
	s.AddTool(scoreTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleScoreResponse(ctx, request, sc)
	})

	// get_results
	getResultsTool := mcp.NewTool("get_results",
		mcp.WithDescription("Retrieve manifests and results for past evaluation runs"),
		mcp.WithString("run_id",
			mcp.Description("Specific run ID to retrieve (optional, lists all if omitted)"),
		),
	)
	s.AddTool(getResultsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetResults(ctx, request, sc)
	})

	return nil
}

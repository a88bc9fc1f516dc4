package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
	"github.com/nutritionlabs/nutrition-eval/internal/evaluator"
	"github.com/nutritionlabs/nutrition-eval/internal/llm"
	"github.com/nutritionlabs/nutrition-eval/internal/scorer"
	"github.com/nutritionlabs/nutrition-eval/internal/server"
)

func handleListCatalogs(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	names, err := catalog.List(sc.CatalogsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list catalogs: %v", err)), nil
	}

	type catalogInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Version     string `json:"version"`
		Scoring     string `json:"scoring"`
		RecordCount int    `json:"record_count"`
		PromptCount int    `json:"prompt_count"`
	}

	var catalogs []catalogInfo
	for _, name := range names {
		def, err := catalog.Load(name, sc.CatalogsDir)
		if err != nil {
			continue
		}
		prompts, err := catalog.Build(def)
		if err != nil {
			continue
		}
		catalogs = append(catalogs, catalogInfo{
			Name:        def.Name,
			Description: def.Description,
			Version:     def.Version,
			Scoring:     def.Scoring,
			RecordCount: len(def.Records),
			PromptCount: len(prompts),
		})
	}

	data, err := json.MarshalIndent(catalogs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal catalogs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleRunEvaluation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	catalogName, ok := args["catalog"].(string)
	if !ok || catalogName == "" {
		return mcp.NewToolResultError("catalog is required"), nil
	}
	model, ok := args["model"].(string)
	if !ok || model == "" {
		return mcp.NewToolResultError("model is required"), nil
	}

	def, err := catalog.Load(catalogName, sc.CatalogsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load catalog: %v", err)), nil
	}

	if mode, ok := args["scoring"].(string); ok && mode != "" {
		def.Scoring = mode
	}
	temperature := 0.1
	if t, ok := args["temperature"].(float64); ok {
		temperature = t
	}

	client := sc.LLMClient
	if endpoint, ok := args["endpoint"].(string); ok && endpoint != "" {
		client = llm.NewOpenAIClient(llm.WithBaseURL(endpoint))
	}
	if client == nil {
		return mcp.NewToolResultError("LLM client is not configured"), nil
	}

	strategy, err := scorer.GetStrategy(def.Scoring)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported scoring mode: %v", err)), nil
	}

	ev := evaluator.New(client, strategy, sc.OutputDir)
	run, err := ev.Run(ctx, def, model, temperature)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation run failed: %v", err)), nil
	}

	summary := map[string]interface{}{
		"run_id":      run.ID,
		"catalog":     run.Catalog,
		"model":       run.Model,
		"scoring":     run.Scoring,
		"duration":    run.Duration.String(),
		"report_file": run.ReportFile,
		"summary":     run.Summary,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleScoreResponse(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	catalogName, _ := args["catalog"].(string)
	promptID, _ := args["prompt_id"].(string)
	response, _ := args["response"].(string)
	if catalogName == "" || promptID == "" || response == "" {
		return mcp.NewToolResultError("catalog, prompt_id, and response are required"), nil
	}

	def, err := catalog.Load(catalogName, sc.CatalogsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load catalog: %v", err)), nil
	}
	prompts, err := catalog.Build(def)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build catalog: %v", err)), nil
	}

	var prompt *catalog.Prompt
	for i := range prompts {
		if prompts[i].ID == promptID {
			prompt = &prompts[i]
			break
		}
	}
	if prompt == nil {
		return mcp.NewToolResultError(fmt.Sprintf("prompt %q not found in catalog %q", promptID, catalogName)), nil
	}

	strategy, err := scorer.GetStrategy(def.Scoring)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported scoring mode: %v", err)), nil
	}

	result := map[string]interface{}{
		"prompt_id": prompt.ID,
		"category":  prompt.Category,
		"scoring":   strategy.Name(),
		"scores":    strategy.Score(*prompt, response),
		"expected":  prompt.Expected,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal scores: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

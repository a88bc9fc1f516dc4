package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritionlabs/nutrition-eval/internal/server"
)

func TestHandleListCatalogs(t *testing.T) {
	sc := &server.ServerContext{
		CatalogsDir: "",
	}

	result, err := handleListCatalogs(context.Background(), mcp.CallToolRequest{}, sc)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Should return at least the embedded calorieking-v1 catalog.
	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "CalorieKing Nutrition Knowledge")

	// Verify it's valid JSON.
	var catalogs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &catalogs))
	assert.GreaterOrEqual(t, len(catalogs), 1)

	// Verify required fields.
	c := catalogs[0]
	assert.Contains(t, c, "name")
	assert.Contains(t, c, "description")
	assert.Contains(t, c, "version")
	assert.Contains(t, c, "scoring")
	assert.Contains(t, c, "record_count")
	assert.Contains(t, c, "prompt_count")
}

func TestHandleRunEvaluationMissingRequired(t *testing.T) {
	sc := &server.ServerContext{}

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing catalog",
			args: map[string]interface{}{"model": "gpt-4"},
			want: "catalog is required",
		},
		{
			name: "missing model",
			args: map[string]interface{}{"catalog": "calorieking-v1"},
			want: "model is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{}
			request.Params.Arguments = tt.args

			result, err := handleRunEvaluation(context.Background(), request, sc)
			require.NoError(t, err)

			content := result.Content[0].(mcp.TextContent)
			assert.Contains(t, content.Text, tt.want)
		})
	}
}

func TestHandleRunEvaluationUnknownCatalog(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"catalog": "nonexistent-catalog",
		"model":   "gpt-4",
	}

	result, err := handleRunEvaluation(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "failed to load catalog")
}

func TestHandleRunEvaluationNoClient(t *testing.T) {
	sc := &server.ServerContext{
		LLMClient: nil,
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"catalog": "calorieking-v1",
		"model":   "gpt-4",
	}

	result, err := handleRunEvaluation(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "LLM client is not configured")
}

func TestHandleScoreResponseMissingRequired(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"catalog": "calorieking-v1",
	}

	result, err := handleScoreResponse(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "catalog, prompt_id, and response are required")
}

func TestHandleScoreResponse(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"catalog":   "calorieking-v1",
		"prompt_id": "1A",
		"response": `{"total_fat_g": 0.1, "total_carbohydrates_g": 22.5,
			"carb_calculation": {"net_carbs": 19.8, "fiber": 2.7, "total": 22.5}}`,
	}

	result, err := handleScoreResponse(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)

	var scored map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content.Text), &scored))
	assert.Equal(t, "1A", scored["prompt_id"])

	scores, ok := scored["scores"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 100.0, scores["total"])
}

func TestHandleScoreResponseUnknownPrompt(t *testing.T) {
	sc := &server.ServerContext{}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"catalog":   "calorieking-v1",
		"prompt_id": "9Z",
		"response":  "{}",
	}

	result, err := handleScoreResponse(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, `prompt "9Z" not found`)
}

func TestHandleGetResultsEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()
	sc := &server.ServerContext{
		OutputDir: tmpDir,
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	// Should return an empty list, not null or an error.
	assert.Equal(t, "[]", content.Text)

	// A stray file without a run manifest is skipped, still an empty list.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0o644))

	result, err = handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)
	content = result.Content[0].(mcp.TextContent)
	assert.Equal(t, "[]", content.Text)
}

func TestHandleGetResultsNonexistentDir(t *testing.T) {
	sc := &server.ServerContext{
		OutputDir: "/nonexistent/directory",
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Equal(t, "[]", content.Text)
}

func TestHandleGetResultsSpecificRun(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "test-run")
	require.NoError(t, os.MkdirAll(runDir, 0o755))

	manifest := `{"id": "test-run", "catalog": "calorieking-v1"}`
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "run.json"), []byte(manifest), 0o644))

	results := `[{"prompt_id": "1A", "scores": {"total": 100}}]`
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "results.json"), []byte(results), 0o644))

	sc := &server.ServerContext{
		OutputDir: tmpDir,
	}

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"run_id": "test-run",
	}

	result, err := handleGetResults(context.Background(), request, sc)
	require.NoError(t, err)

	content := result.Content[0].(mcp.TextContent)
	assert.Contains(t, content.Text, "test-run")
	assert.Contains(t, content.Text, `"prompt_id"`)
}

func TestResolveRunPathRejectsTraversal(t *testing.T) {
	tests := []struct {
		name  string
		runID string
	}{
		{name: "empty", runID: ""},
		{name: "dot dot", runID: ".."},
		{name: "forward slash", runID: "../other"},
		{name: "nested", runID: "runs/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveRunPath("/tmp/results", tt.runID)
			assert.Error(t, err)
		})
	}
}

func TestResolveRunPathAccepts(t *testing.T) {
	p, err := resolveRunPath("/tmp/results", "My_Catalog_20250314-093000")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp", "results", "My_Catalog_20250314-093000"), p)
}

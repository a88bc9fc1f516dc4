package server

import (
	"github.com/nutritionlabs/nutrition-eval/internal/llm"
)

// ServerContext holds shared dependencies for MCP tool handlers.
type ServerContext struct {
	LLMClient   llm.Client
	OutputDir   string
	CatalogsDir string // external catalogs directory (optional)
}

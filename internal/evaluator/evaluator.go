// Package evaluator orchestrates evaluation runs: it sends each catalog
// prompt to the model, scores the response, and persists the aggregated
// results and report.
package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nutritionlabs/nutrition-eval/internal/aggregate"
	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
	"github.com/nutritionlabs/nutrition-eval/internal/llm"
	"github.com/nutritionlabs/nutrition-eval/internal/report"
	"github.com/nutritionlabs/nutrition-eval/internal/scorer"
)

// errorMarker prefixes response text synthesized from a client failure.
// Such responses flow through normal parse-failure scoring instead of
// aborting the run.
const errorMarker = "ERROR: "

// defaultDelay is the fixed inter-prompt throttle. It is applied after
// every result regardless of how long the fetch took.
const defaultDelay = 1 * time.Second

// defaultMaxTokens bounds response length for evaluation prompts.
const defaultMaxTokens = 800

// ProgressFunc is called to report progress during an evaluation run.
type ProgressFunc func(promptIndex, totalPrompts int)

// Evaluator runs a catalog's prompt battery against a model. Prompts are
// evaluated strictly sequentially, in catalog order.
type Evaluator struct {
	client    llm.Client
	strategy  scorer.Strategy
	outputDir string
	delay     time.Duration
	progress  ProgressFunc
}

// New creates an Evaluator writing run output under outputDir.
func New(client llm.Client, strategy scorer.Strategy, outputDir string) *Evaluator {
	return &Evaluator{
		client:    client,
		strategy:  strategy,
		outputDir: outputDir,
		delay:     defaultDelay,
	}
}

// SetProgressFunc sets the progress callback.
func (e *Evaluator) SetProgressFunc(fn ProgressFunc) {
	e.progress = fn
}

// SetDelay overrides the inter-prompt throttle. Tests set this to zero.
func (e *Evaluator) SetDelay(d time.Duration) {
	e.delay = d
}

// Run holds metadata and results for a complete evaluation run.
type Run struct {
	ID          string            `json:"id"`
	Catalog     string            `json:"catalog"`
	Model       string            `json:"model"`
	Scoring     string            `json:"scoring"`
	Timestamp   time.Time         `json:"timestamp"`
	Duration    time.Duration     `json:"duration"`
	ResultsFile string            `json:"results_file"`
	ReportFile  string            `json:"report_file"`
	Summary     aggregate.Summary `json:"summary"`
	Results     []catalog.Result  `json:"-"`
}

// Run executes the full prompt battery and writes run output. Only catalog
// construction can fail the run; fetch and scoring problems degrade into
// zero-scored results.
func (e *Evaluator) Run(ctx context.Context, def *catalog.Definition, model string, temperature float64) (*Run, error) {
	prompts, err := catalog.Build(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt catalog: %w", err)
	}

	timestamp := time.Now()
	sanitizedName := strings.ReplaceAll(def.Name, " ", "_")
	runID := fmt.Sprintf("%s_%s", sanitizedName, timestamp.Format("20060102-150405"))

	outputPath := filepath.Join(e.outputDir, runID)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("starting evaluation",
		"catalog", def.Name,
		"model", model,
		"prompts", len(prompts),
		"scoring", e.strategy.Name(),
	)

	agg := aggregate.New()

	for i, p := range prompts {
		// Check for context cancellation between prompts.
		if err := ctx.Err(); err != nil {
			slog.Warn("evaluation cancelled", "completed", i, "total", len(prompts))
			break
		}

		if e.progress != nil {
			e.progress(i+1, len(prompts))
		}

		response, elapsed := e.fetch(ctx, llm.ChatRequest{
			Model:         model,
			SystemMessage: def.Prompt.SystemMessage,
			UserMessage:   p.Text,
			Temperature:   temperature,
			MaxTokens:     defaultMaxTokens,
		})

		scores := e.strategy.Score(p, response)

		agg.Add(catalog.Result{
			PromptID:       p.ID,
			Category:       p.Category,
			Difficulty:     p.Difficulty,
			Response:       response,
			Expected:       p.Expected,
			Scores:         scores,
			ElapsedSeconds: elapsed,
		})

		slog.Info("prompt evaluated",
			"prompt_id", p.ID,
			"category", p.Category,
			"score", scores.Total,
			"elapsed_seconds", elapsed,
		)

		// Fixed-rate throttle, not adaptive backoff.
		time.Sleep(e.delay)
	}

	run := &Run{
		ID:        runID,
		Catalog:   def.Name,
		Model:     model,
		Scoring:   e.strategy.Name(),
		Timestamp: timestamp,
		Duration:  time.Since(timestamp),
		Summary:   agg.Summarize(),
		Results:   agg.Results(),
	}

	if err := e.writeRunOutput(outputPath, run); err != nil {
		return nil, err
	}

	slog.Info("evaluation complete",
		"run_id", run.ID,
		"prompts_evaluated", len(run.Results),
		"duration", run.Duration,
	)

	return run, nil
}

// fetch sends one prompt and never returns an error: a client failure
// becomes an error-marked response with the elapsed time measured so far.
// Streaming is preferred, falling back to a plain completion.
func (e *Evaluator) fetch(ctx context.Context, req llm.ChatRequest) (string, float64) {
	start := time.Now()

	stream, err := e.client.ChatCompletionStream(ctx, req)
	if err == nil {
		content, streamErr := llm.CollectStream(stream)
		if streamErr == nil {
			return content, time.Since(start).Seconds()
		}
		slog.Warn("streaming fetch failed, falling back to non-streaming", "error", streamErr)
	} else {
		slog.Debug("streaming not available, using non-streaming", "error", err)
	}

	resp, err := e.client.ChatCompletion(ctx, req)
	if err != nil {
		slog.Error("prompt fetch failed", "error", err)
		return errorMarker + err.Error(), time.Since(start).Seconds()
	}
	return resp.Content, time.Since(start).Seconds()
}

func (e *Evaluator) writeRunOutput(outputPath string, run *Run) error {
	// Full per-prompt results.
	resultsFile := filepath.Join(outputPath, "results.json")
	data, err := json.MarshalIndent(run.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	run.ResultsFile = resultsFile

	// Human-readable report.
	reportFile := filepath.Join(outputPath, "report.md")
	rendered := report.Render(run.Results, run.Summary, report.Options{
		Model:             run.Model,
		Timestamp:         run.Timestamp,
		TruncateResponses: run.Scoring == catalog.ScoringHeuristic,
	})
	if err := os.WriteFile(reportFile, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	run.ReportFile = reportFile

	// Run manifest.
	manifest, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputPath, "run.json"), manifest, 0o644); err != nil {
		return fmt.Errorf("failed to write run manifest: %w", err)
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
	"github.com/nutritionlabs/nutrition-eval/internal/evaluator"
	"github.com/nutritionlabs/nutrition-eval/internal/scorer"
)

func newRunCmd() *cobra.Command {
	var (
		model       string
		endpoint    string
		apiKey      string
		temperature float64
		scoring     string
		outputDir   string
		catalogsDir string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run <catalog>",
		Short: "Run an evaluation catalog against a language model",
		Long: `Execute a catalog's prompt battery by sending each prompt to a model,
scoring the responses against computed expected answers, and writing the
aggregated results and report to the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			def, err := catalog.Load(args[0], catalogsDir)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			// Override scoring mode if specified via flag.
			if scoring != "" {
				def.Scoring = scoring
			}

			strategy, err := scorer.GetStrategy(def.Scoring)
			if err != nil {
				return err
			}

			client := newLLMClientFromFlags(endpoint, apiKey)

			ev := evaluator.New(client, strategy, outputDir)
			ev.SetProgressFunc(func(idx, total int) {
				fmt.Printf("\r  [%s] Evaluating prompt %d/%d...", model, idx, total)
			})

			fmt.Printf("Catalog: %s\n", def.Name)
			fmt.Printf("Description: %s\n", def.Description)
			fmt.Printf("Model: %s (temperature: %.1f)\n", model, temperature)
			fmt.Printf("Scoring: %s\n", strategy.Name())
			fmt.Println()

			run, err := ev.Run(ctx, def, model, temperature)
			if err != nil {
				return err
			}

			fmt.Printf("\n\nEvaluation completed.\n")
			fmt.Printf("Run ID: %s\n", run.ID)
			fmt.Printf("Duration: %s\n", run.Duration)
			if run.Summary.Mean != nil {
				fmt.Printf("Average Score: %.1f%%\n", *run.Summary.Mean)
				fmt.Printf("Best Score: %.1f%%\n", *run.Summary.Max)
				fmt.Printf("Worst Score: %.1f%%\n", *run.Summary.Min)
			}
			fmt.Printf("Report: %s\n", run.ReportFile)

			slog.Info("evaluation run complete", "run_id", run.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "gpt-4", "Model name to evaluate")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "OpenAI-compatible API endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (or set OPENAI_API_KEY)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.1, "Temperature for generation")
	cmd.Flags().StringVar(&scoring, "scoring", "", "Scoring mode: structured or heuristic (default: from catalog config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "results", "Directory for evaluation results")
	cmd.Flags().StringVar(&catalogsDir, "catalogs-dir", "", "External catalogs directory")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall timeout for the run (e.g. 30m, 1h). 0 means no timeout")

	return cmd
}

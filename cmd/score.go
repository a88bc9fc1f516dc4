package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutritionlabs/nutrition-eval/internal/aggregate"
	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
	"github.com/nutritionlabs/nutrition-eval/internal/scorer"
)

func newScoreCmd() *cobra.Command {
	var scoring string

	cmd := &cobra.Command{
		Use:   "score <results-file>",
		Short: "Re-score a persisted results file offline",
		Long: `Replay the stored responses of a past run through the scorer without
contacting a model. Useful after rubric changes, or to compare scoring modes
on the same responses. Writes the re-scored results next to the input file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultsFile := args[0]

			data, err := os.ReadFile(resultsFile)
			if err != nil {
				return fmt.Errorf("failed to read results file: %w", err)
			}

			var results []catalog.Result
			if err := json.Unmarshal(data, &results); err != nil {
				return fmt.Errorf("failed to parse results file: %w", err)
			}

			strategy, err := scorer.GetStrategy(scoring)
			if err != nil {
				return err
			}

			agg := aggregate.New()
			for _, r := range results {
				prompt := catalog.Prompt{
					ID:         r.PromptID,
					Category:   r.Category,
					Difficulty: r.Difficulty,
					Expected:   r.Expected,
				}
				rescored := r
				rescored.Scores = strategy.Score(prompt, r.Response)
				agg.Add(rescored)
			}

			outFile := strings.TrimSuffix(resultsFile, ".json") + "_rescored.json"
			out, err := json.MarshalIndent(agg.Results(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal re-scored results: %w", err)
			}
			if err := os.WriteFile(outFile, out, 0o644); err != nil {
				return fmt.Errorf("failed to write re-scored results: %w", err)
			}

			summary := agg.Summarize()
			fmt.Printf("Re-scored %d results with %s scoring\n", summary.Count, strategy.Name())
			if summary.Mean != nil {
				fmt.Printf("  Average: %.1f%%\n", *summary.Mean)
				fmt.Printf("  Range: %.1f%% - %.1f%%\n", *summary.Min, *summary.Max)
			}
			fmt.Printf("Written to: %s\n", outFile)

			return nil
		},
	}

	cmd.Flags().StringVar(&scoring, "scoring", "", "Scoring mode: structured or heuristic (default: structured)")

	return cmd
}

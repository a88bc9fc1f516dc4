package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

func newListCmd() *cobra.Command {
	var catalogsDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available evaluation catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			names, err := catalog.List(catalogsDir)
			if err != nil {
				return fmt.Errorf("failed to list catalogs: %w", err)
			}

			if len(names) == 0 {
				fmt.Fprintln(out, "No catalogs found.")
				return nil
			}

			fmt.Fprintf(out, "Available catalogs:\n\n")
			for _, name := range names {
				def, err := catalog.Load(name, catalogsDir)
				if err != nil {
					fmt.Fprintf(out, "  - %s (error loading: %v)\n", name, err)
					continue
				}
				// The identifier is what 'run' and the MCP tools take.
				fmt.Fprintf(out, "  - %s\n", name)
				fmt.Fprintf(out, "    Name: %s\n", def.Name)
				fmt.Fprintf(out, "    Description: %s\n", def.Description)
				fmt.Fprintf(out, "    Version: %s\n", def.Version)
				fmt.Fprintf(out, "    Scoring: %s\n", def.Scoring)
				fmt.Fprintf(out, "    Records: %d\n\n", len(def.Records))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&catalogsDir, "catalogs-dir", "", "External catalogs directory")

	return cmd
}

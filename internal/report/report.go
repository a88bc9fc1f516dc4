// Package report renders evaluation runs as human-readable markdown.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nutritionlabs/nutrition-eval/internal/aggregate"
	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

// NoResults is the sentinel rendered when a run produced no results.
const NoResults = "No results available"

// responseTruncateLen is the prefix length free-text responses are cut to
// in detail blocks. Structured responses are short JSON and shown in full.
const responseTruncateLen = 200

// Options control report rendering.
type Options struct {
	Model     string
	Timestamp time.Time

	// TruncateResponses cuts each response to a fixed prefix; set for
	// free-text (heuristic) runs where responses can be very long.
	TruncateResponses bool
}

// Render produces the full markdown report: a summary block followed by one
// detail block per prompt. Rendering is deterministic given the options and
// results.
func Render(results []catalog.Result, summary aggregate.Summary, opts Options) string {
	if len(results) == 0 {
		return NoResults
	}

	var b strings.Builder

	b.WriteString("# Nutrition Evaluation Report\n\n")
	fmt.Fprintf(&b, "**Model:** %s\n", opts.Model)
	fmt.Fprintf(&b, "**Date:** %s\n", opts.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Prompts:** %d\n\n", summary.Count)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Overall Average: %.1f%%\n", *summary.Mean)
	fmt.Fprintf(&b, "- Best Performance: %.1f%%\n", *summary.Max)
	fmt.Fprintf(&b, "- Worst Performance: %.1f%%\n\n", *summary.Min)

	b.WriteString("## Results by Category\n")
	for _, cat := range summary.Categories {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", cat, summary.CategoryMeans[cat])
	}
	b.WriteString("\n## Detailed Results\n\n")

	for _, r := range results {
		fmt.Fprintf(&b, "### %s: %s\n", r.PromptID, r.Category)
		fmt.Fprintf(&b, "Score: %.1f%%\n", r.Scores.Total)
		fmt.Fprintf(&b, "Time: %.2fs\n\n", r.ElapsedSeconds)
		fmt.Fprintf(&b, "**Expected:** %s\n\n", r.Expected.Text)
		fmt.Fprintf(&b, "**Response:** %s\n\n", renderResponse(r.Response, opts.TruncateResponses))
		b.WriteString("---\n\n")
	}

	return b.String()
}

func renderResponse(response string, truncate bool) string {
	if !truncate || len(response) <= responseTruncateLen {
		return response
	}
	// Back up to a rune boundary so a multi-byte sequence is never split.
	cut := responseTruncateLen
	for cut > 0 && !utf8.RuneStart(response[cut]) {
		cut--
	}
	return response[:cut] + "..."
}

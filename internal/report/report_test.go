package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/nutritionlabs/nutrition-eval/internal/aggregate"
	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

func sampleResults() ([]catalog.Result, aggregate.Summary) {
	a := aggregate.New()
	a.Add(catalog.Result{
		PromptID:       "1A",
		Category:       catalog.CategoryFactual,
		Response:       `{"total_fat_g": 0.1}`,
		Expected:       catalog.Expected{Text: "Total fat = 0.1g"},
		Scores:         catalog.Scores{Total: 100},
		ElapsedSeconds: 1.23,
	})
	a.Add(catalog.Result{
		PromptID: "2A",
		Category: catalog.CategoryMath,
		Response: "The total is about 97.7 calories.",
		Expected: catalog.Expected{Text: "Total: ~97.7 cal"},
		Scores:   catalog.Scores{Total: 25},
	})
	return a.Results(), a.Summarize()
}

func TestRenderEmptyResults(t *testing.T) {
	out := Render(nil, aggregate.New().Summarize(), Options{Model: "gpt-4"})
	assert.Equal(t, NoResults, out)
}

func TestRender(t *testing.T) {
	results, summary := sampleResults()
	opts := Options{
		Model:     "gpt-4",
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	out := Render(results, summary, opts)

	assert.Contains(t, out, "# Nutrition Evaluation Report")
	assert.Contains(t, out, "**Model:** gpt-4")
	assert.Contains(t, out, "**Date:** 2025-03-14 09:30:00")
	assert.Contains(t, out, "**Total Prompts:** 2")
	assert.Contains(t, out, "- Overall Average: 62.5%")
	assert.Contains(t, out, "- Best Performance: 100.0%")
	assert.Contains(t, out, "- Worst Performance: 25.0%")
	assert.Contains(t, out, "- Factual Accuracy: 100.0%")
	assert.Contains(t, out, "- Mathematical Computation: 25.0%")
	assert.Contains(t, out, "### 1A: Factual Accuracy")
	assert.Contains(t, out, "**Expected:** Total fat = 0.1g")
	assert.Contains(t, out, `**Response:** {"total_fat_g": 0.1}`)
}

func TestRenderTruncatesLongResponses(t *testing.T) {
	long := strings.Repeat("x", 500)
	results := []catalog.Result{{
		PromptID: "1A",
		Category: catalog.CategoryFactual,
		Response: long,
		Scores:   catalog.Scores{Total: 10},
	}}
	a := aggregate.New()
	a.Add(results[0])

	out := Render(results, a.Summarize(), Options{TruncateResponses: true})
	assert.Contains(t, out, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 201))

	// Without truncation the full response is shown.
	out = Render(results, a.Summarize(), Options{})
	assert.Contains(t, out, long)
}

func TestRenderTruncatesOnRuneBoundary(t *testing.T) {
	// 100 three-byte runes: byte 200 falls inside a rune, so the cut
	// must back up rather than split the sequence.
	long := strings.Repeat("日", 100)
	r := catalog.Result{
		PromptID: "1A",
		Category: catalog.CategoryFactual,
		Response: long,
		Scores:   catalog.Scores{Total: 10},
	}
	a := aggregate.New()
	a.Add(r)

	out := Render([]catalog.Result{r}, a.Summarize(), Options{TruncateResponses: true})

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("日", 66)+"...")
	assert.NotContains(t, out, strings.Repeat("日", 67))
}

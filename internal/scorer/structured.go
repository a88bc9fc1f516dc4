package scorer

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

// StructuredStrategy parses responses as JSON and dispatches to a
// per-category comparator. Parse failures are a normal outcome -- the
// response simply scores zero -- and are never surfaced as errors.
//
// In this mode structural correctness stands in for all four rubric
// dimensions, so every sub-score equals the comparator's accuracy.
type StructuredStrategy struct {
	comparators map[catalog.Category]Comparator
}

// NewStructuredStrategy creates a StructuredStrategy with the four standard
// comparators registered. Adding a rubric means registering a comparator
// here, not extending a dispatch chain.
func NewStructuredStrategy() *StructuredStrategy {
	return &StructuredStrategy{
		comparators: map[catalog.Category]Comparator{
			catalog.CategoryFactual: factualComparator{},
			catalog.CategoryMath:    mathComparator{},
			catalog.CategoryHealth:  healthComparator{},
			catalog.CategoryErrors:  errorComparator{},
		},
	}
}

func (s *StructuredStrategy) Name() string {
	return catalog.ScoringStructured
}

func (s *StructuredStrategy) Score(prompt catalog.Prompt, response string) catalog.Scores {
	parsed, err := parseStructured(response)
	if err != nil {
		slog.Warn("response is not valid JSON, scoring zero",
			"prompt_id", prompt.ID,
			"error", err,
		)
		return catalog.Scores{}
	}

	comp, ok := s.comparators[prompt.Category]
	if !ok {
		slog.Warn("no comparator registered for category, scoring zero",
			"prompt_id", prompt.ID,
			"category", prompt.Category,
		)
		return catalog.Scores{}
	}

	accuracy := comp.Compare(parsed, prompt.Expected)
	return catalog.Scores{
		Accuracy:     accuracy,
		Reasoning:    accuracy,
		Completeness: accuracy,
		Practical:    accuracy,
		Total:        accuracy,
	}
}

// parseStructured decodes a response as a JSON object, tolerating the
// markdown code fences models tend to wrap JSON in.
func parseStructured(response string) (map[string]any, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

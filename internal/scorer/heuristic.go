package scorer

import (
	"regexp"
	"strings"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Sub-score weights for the legacy free-text rubric.
const (
	accuracyWeight     = 0.4
	reasoningWeight    = 0.3
	completenessWeight = 0.2
	practicalWeight    = 0.1
)

var (
	calculationMarkers = []string{"×", "*", "=", "calculate"}
	reasoningWords     = []string{"because", "due to", "since", "therefore"}
	explanationWords   = []string{"explain", "reason", "shows"}
	unitWords          = []string{"gram", "mg", "calorie", "%"}
	practicalWords     = []string{"health", "diet", "nutrition", "recommend"}
)

// HeuristicStrategy scores free-text responses with keyword-presence
// heuristics. It predates structured comparison and remains for catalogs
// whose prompts do not request JSON output.
type HeuristicStrategy struct{}

func (s *HeuristicStrategy) Name() string {
	return catalog.ScoringHeuristic
}

func (s *HeuristicStrategy) Score(prompt catalog.Prompt, response string) catalog.Scores {
	lower := strings.ToLower(response)

	var accuracy, reasoning, completeness, practical float64

	// Numeric accuracy: 25 points per hit group, capped below.
	if containsAny(lower, numbersIn(prompt.Expected.Text)) {
		accuracy += 25
	}
	if containsAny(lower, calculationMarkers) {
		accuracy += 25
	}

	// Reasoning connectives.
	if containsAny(lower, reasoningWords) {
		reasoning += 30
	}
	if containsAny(lower, explanationWords) {
		reasoning += 20
	}

	// Completeness: response length and unit usage.
	if len(strings.Fields(lower)) > 20 {
		completeness += 20
	}
	if containsAny(lower, unitWords) {
		completeness += 20
	}

	// Practical application.
	if containsAny(lower, practicalWords) {
		practical += 15
	}

	accuracy = capScore(accuracy)
	reasoning = capScore(reasoning)
	completeness = capScore(completeness)
	practical = capScore(practical)

	return catalog.Scores{
		Accuracy:     accuracy,
		Reasoning:    reasoning,
		Completeness: completeness,
		Practical:    practical,
		Total: accuracy*accuracyWeight +
			reasoning*reasoningWeight +
			completeness*completenessWeight +
			practical*practicalWeight,
	}
}

func capScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// numbersIn extracts the numeric tokens from an expected-answer text so the
// accuracy heuristic can look for them in the response.
func numbersIn(text string) []string {
	return numberPattern.FindAllString(text, -1)
}

package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nutritionlabs/nutrition-eval/internal/nutrition"
)

// Scoring mode names. The mode is fixed once per catalog build; it is never
// chosen per response.
const (
	ScoringStructured = "structured"
	ScoringHeuristic  = "heuristic"
)

// Representative food selection. Each prompt family searches the record
// sequence for the first name containing its hint; when no record matches,
// the fixed positional fallback below is used instead. Distinct fallback
// indices keep the prompts from all collapsing onto the same record for
// datasets without the preferred items.
const (
	factualFoodHint = "apple"
	healthFoodHint  = "cheese"
	errorFoodHint   = "chocolate"

	factualFallbackIndex = 0
	healthFallbackIndex  = 1
	errorFallbackIndex   = 2
)

// Build produces the ordered prompt battery for a catalog, with every
// expected answer computed from the selected records. Building is
// deterministic: the same definition always yields the same prompts.
func Build(def *Definition) ([]Prompt, error) {
	structured := def.Scoring != ScoringHeuristic

	staple, err := nutrition.FindRecord(def.Records, nutrition.NameContains(factualFoodHint), factualFallbackIndex)
	if err != nil {
		return nil, err
	}
	healthItem, err := nutrition.FindRecord(def.Records, nutrition.NameContains(healthFoodHint), healthFallbackIndex)
	if err != nil {
		return nil, err
	}
	errorItem, err := nutrition.FindRecord(def.Records, nutrition.NameContains(errorFoodHint), errorFallbackIndex)
	if err != nil {
		return nil, err
	}

	return []Prompt{
		factualPrompt(staple, structured),
		mathPrompt(staple, structured),
		healthPrompt(healthItem, structured),
		errorPrompt(errorItem, structured),
	}, nil
}

const factualResponseFormat = `Respond with only a JSON object in exactly this format:
{
  "total_fat_g": <number>,
  "total_carbohydrates_g": <number>,
  "carb_calculation": {"net_carbs": <number>, "fiber": <number>, "total": <number>}
}`

func factualPrompt(r nutrition.FoodRecord, structured bool) Prompt {
	p := r.Nutrients
	totalCarbs := nutrition.TotalCarbs(p)

	var b strings.Builder
	fmt.Fprintf(&b, "Given the following nutrition data:\n\n%s\n\n", renderNutrients(p))
	b.WriteString("Question: What is the total fat content and total carbohydrate content of this food item?\n")
	b.WriteString("Show your calculation for carbohydrates.")
	if structured {
		b.WriteString("\n\n" + factualResponseFormat)
	}

	return Prompt{
		ID:         "1A",
		Category:   CategoryFactual,
		Difficulty: DifficultyBasic,
		Text:       b.String(),
		Expected: Expected{
			Text: fmt.Sprintf("Total fat = %sg, Total carbohydrates = %sg (netCarbs + fiber = %s + %s)",
				amount(p.Value(nutrition.Fat)), amount(totalCarbs),
				amount(p.Value(nutrition.NetCarbs)), amount(p.Value(nutrition.Fiber))),
			Factual: &FactualAnswer{
				TotalFatG:           p.Value(nutrition.Fat),
				TotalCarbohydratesG: totalCarbs,
				CarbCalculation: CarbCalculation{
					NetCarbs: p.Value(nutrition.NetCarbs),
					Fiber:    p.Value(nutrition.Fiber),
					Total:    totalCarbs,
				},
			},
		},
	}
}

const mathResponseFormat = `Respond with only a JSON object in exactly this format:
{
  "calculations": {"carbohydrates_cal": <number>, "protein_cal": <number>, "fat_cal": <number>, "alcohol_cal": <number>},
  "calculated_total_cal": <number>,
  "given_energy_value": <number>,
  "comparison": {"match": <boolean>, "explanation": <string>}
}`

func mathPrompt(r nutrition.FoodRecord, structured bool) Prompt {
	p := r.Nutrients
	calories := nutrition.Calories(p)

	var b strings.Builder
	fmt.Fprintf(&b, "Food Item:\n%s\n\n", renderNutrients(p))
	b.WriteString("Calculate total calories using the 4-4-9-7 rule:\n")
	b.WriteString("- Carbohydrates: 4 calories per gram\n")
	b.WriteString("- Protein: 4 calories per gram\n")
	b.WriteString("- Fat: 9 calories per gram\n")
	b.WriteString("- Alcohol: 7 calories per gram\n\n")
	b.WriteString("Show your calculation and compare to the energy value given.")
	if structured {
		b.WriteString("\n\n" + mathResponseFormat)
	}

	return Prompt{
		ID:         "2A",
		Category:   CategoryMath,
		Difficulty: DifficultyIntermediate,
		Text:       b.String(),
		Expected: Expected{
			Text: fmt.Sprintf("Carbs: %s cal, Protein: %s cal, Fat: %s cal, Alcohol: %s cal, Total: ~%s cal",
				amount(calories.Carbohydrates), amount(calories.Protein),
				amount(calories.Fat), amount(calories.Alcohol), amount(calories.Total)),
			Math: &MathAnswer{
				Calculations: CalorieCalculations{
					CarbohydratesCal: calories.Carbohydrates,
					ProteinCal:       calories.Protein,
					FatCal:           calories.Fat,
					AlcoholCal:       calories.Alcohol,
				},
				CalculatedTotalCal: calories.Total,
				GivenEnergyValue:   p.Value(nutrition.Energy),
			},
		},
	}
}

const healthResponseFormat = `Respond with only a JSON object in exactly this format:
{
  "evaluations": {
    "type_2_diabetes": {"suitability": "poor"|"fair"|"good", "key_concerns": [<string>], "specific_values": {<nutrient>: <number>}},
    "high_blood_pressure": {"suitability": "poor"|"fair"|"good", "key_concerns": [<string>], "specific_values": {<nutrient>: <number>}},
    "high_cholesterol": {"suitability": "poor"|"fair"|"good", "key_concerns": [<string>], "specific_values": {<nutrient>: <number>}}
  }
}`

func healthPrompt(r nutrition.FoodRecord, structured bool) Prompt {
	p := r.Nutrients
	diabetes := nutrition.DiabetesVerdict(p)
	bloodPressure := nutrition.BloodPressureVerdict(p)
	cholesterol := nutrition.CholesterolVerdict(p)

	var b strings.Builder
	fmt.Fprintf(&b, "Food Item:\n%s\n\n", renderNutrients(p))
	b.WriteString("Evaluate this food's suitability for someone with:\n")
	b.WriteString("1) Type 2 diabetes\n")
	b.WriteString("2) High blood pressure\n")
	b.WriteString("3) High cholesterol\n\n")
	b.WriteString("Provide specific reasoning based on the nutritional values.")
	if structured {
		b.WriteString("\n\n" + healthResponseFormat)
	}

	return Prompt{
		ID:         "3A",
		Category:   CategoryHealth,
		Difficulty: DifficultyAdvanced,
		Text:       b.String(),
		Expected: Expected{
			Text: fmt.Sprintf("1) %s for diabetes (sugar: %sg), 2) %s for blood pressure (sodium: %smg), 3) %s for cholesterol (sat fat: %sg)",
				diabetes.Suitability, amount(p.Value(nutrition.Sugar)),
				bloodPressure.Suitability, amount(p.Value(nutrition.Sodium)),
				cholesterol.Suitability, amount(p.Value(nutrition.SatFat))),
			Health: &HealthAnswer{
				Evaluations: HealthEvaluations{
					Type2Diabetes:     conditionEvaluation(diabetes),
					HighBloodPressure: conditionEvaluation(bloodPressure),
					HighCholesterol:   conditionEvaluation(cholesterol),
				},
			},
		},
	}
}

const errorResponseFormat = `Respond with only a JSON object in exactly this format:
{
  "errors_found": [{"field": <string>, "issue": <string>, "why_problematic": <string>}],
  "total_errors": <integer>
}`

func errorPrompt(r nutrition.FoodRecord, structured bool) Prompt {
	corrupted, flagged := nutrition.CorruptForErrorDetection(r)

	errs := make([]DataError, 0, len(flagged))
	for _, field := range flagged {
		switch field {
		case nutrition.SatFat:
			errs = append(errs, DataError{
				Field:          field,
				Issue:          "saturated fat exceeds total fat",
				WhyProblematic: "saturated fat is a component of total fat and cannot exceed it",
			})
		case nutrition.Sodium:
			errs = append(errs, DataError{
				Field:          field,
				Issue:          "negative sodium value",
				WhyProblematic: "nutrient amounts cannot be negative",
			})
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Identify errors in this nutrition data:\n\n%s\n\n", renderNutrients(corrupted.Nutrients))
	b.WriteString("What issues do you notice and why are they problematic?")
	if structured {
		b.WriteString("\n\n" + errorResponseFormat)
	}

	summaries := make([]string, 0, len(errs))
	for i, e := range errs {
		summaries = append(summaries, fmt.Sprintf("%d) %s", i+1, e.Issue))
	}

	return Prompt{
		ID:         "4A",
		Category:   CategoryErrors,
		Difficulty: DifficultyExpert,
		Text:       b.String(),
		Expected: Expected{
			Text: "Errors: " + strings.Join(summaries, ", "),
			Errors: &ErrorAnswer{
				ErrorsFound: errs,
				TotalErrors: len(errs),
			},
		},
	}
}

func conditionEvaluation(v nutrition.HealthVerdict) ConditionEvaluation {
	return ConditionEvaluation{
		Suitability:    string(v.Suitability),
		KeyConcerns:    v.Concerns,
		SpecificValues: v.Values,
	}
}

// renderNutrients renders the nutrient mapping as indented JSON. Map keys
// marshal in sorted order, so the rendering is deterministic.
func renderNutrients(p nutrition.NutrientProfile) string {
	data, err := json.MarshalIndent(map[string]nutrition.NutrientProfile{"nutrients": p}, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// amount formats a nutrient amount without trailing zeros.
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package catalog

import "github.com/nutritionlabs/nutrition-eval/internal/nutrition"

// Category identifies the rubric a prompt is scored with.
type Category string

const (
	CategoryFactual Category = "Factual Accuracy"
	CategoryMath    Category = "Mathematical Computation"
	CategoryHealth  Category = "Health Recommendations"
	CategoryErrors  Category = "Error Detection"
)

// Difficulty rates how demanding a prompt is.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "Basic"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

// Prompt is one evaluation prompt with its computed ground truth. Prompts
// are built once per catalog and never mutated.
type Prompt struct {
	ID         string     `json:"id"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"text"`
	Expected   Expected   `json:"expected"`
}

// Expected is the ground truth for one prompt: a legacy free-text rendering
// plus exactly one populated structured tree matching the prompt's category.
// The shape is fixed for the lifetime of a catalog.
type Expected struct {
	Text    string         `json:"text"`
	Factual *FactualAnswer `json:"factual,omitempty"`
	Math    *MathAnswer    `json:"math,omitempty"`
	Health  *HealthAnswer  `json:"health,omitempty"`
	Errors  *ErrorAnswer   `json:"errors,omitempty"`
}

// FactualAnswer is the expected structured response for factual accuracy
// prompts. Field names mirror the response schema the model is asked for.
type FactualAnswer struct {
	TotalFatG           float64         `json:"total_fat_g"`
	TotalCarbohydratesG float64         `json:"total_carbohydrates_g"`
	CarbCalculation     CarbCalculation `json:"carb_calculation"`
}

// CarbCalculation is the nested carbohydrate derivation.
type CarbCalculation struct {
	NetCarbs float64 `json:"net_carbs"`
	Fiber    float64 `json:"fiber"`
	Total    float64 `json:"total"`
}

// MathAnswer is the expected structured response for calorie computation
// prompts.
type MathAnswer struct {
	Calculations       CalorieCalculations `json:"calculations"`
	CalculatedTotalCal float64             `json:"calculated_total_cal"`
	GivenEnergyValue   float64             `json:"given_energy_value"`
}

// CalorieCalculations holds the per-macronutrient contributions under the
// 4-4-9-7 rule.
type CalorieCalculations struct {
	CarbohydratesCal float64 `json:"carbohydrates_cal"`
	ProteinCal       float64 `json:"protein_cal"`
	FatCal           float64 `json:"fat_cal"`
	AlcoholCal       float64 `json:"alcohol_cal"`
}

// HealthAnswer is the expected structured response for health
// recommendation prompts.
type HealthAnswer struct {
	Evaluations HealthEvaluations `json:"evaluations"`
}

// HealthEvaluations covers the three fixed conditions.
type HealthEvaluations struct {
	Type2Diabetes     ConditionEvaluation `json:"type_2_diabetes"`
	HighBloodPressure ConditionEvaluation `json:"high_blood_pressure"`
	HighCholesterol   ConditionEvaluation `json:"high_cholesterol"`
}

// ConditionEvaluation is the verdict for one condition. Only the
// suitability label is scored; concerns and values are justification.
type ConditionEvaluation struct {
	Suitability    string             `json:"suitability"`
	KeyConcerns    []string           `json:"key_concerns"`
	SpecificValues map[string]float64 `json:"specific_values"`
}

// ErrorAnswer is the expected structured response for error detection
// prompts.
type ErrorAnswer struct {
	ErrorsFound []DataError `json:"errors_found"`
	TotalErrors int         `json:"total_errors"`
}

// DataError describes one induced inconsistency the model should flag.
type DataError struct {
	Field          string `json:"field"`
	Issue          string `json:"issue"`
	WhyProblematic string `json:"why_problematic"`
}

// Scores holds the four rubric sub-scores and the combined total, each in
// [0, 100].
type Scores struct {
	Accuracy     float64 `json:"accuracy"`
	Reasoning    float64 `json:"reasoning"`
	Completeness float64 `json:"completeness"`
	Practical    float64 `json:"practical"`
	Total        float64 `json:"total"`
}

// Result records the outcome of evaluating a single prompt. Results are
// append-only and never mutated after creation.
type Result struct {
	PromptID       string     `json:"prompt_id"`
	Category       Category   `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	Response       string     `json:"response"`
	Expected       Expected   `json:"expected"`
	Scores         Scores     `json:"scores"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
}

// Definition is a loaded catalog: metadata, scoring mode, and the food
// records prompts are derived from.
type Definition struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Version     string                 `yaml:"version"`
	Scoring     string                 `yaml:"scoring"` // "structured" (default) or "heuristic"
	RecordsFile string                 `yaml:"records_file"`
	Prompt      PromptConfig           `yaml:"prompt"`
	Records     []nutrition.FoodRecord `yaml:"-"` // loaded separately from CSV
}

// PromptConfig defines the system prompt sent with every evaluation prompt.
type PromptConfig struct {
	Role          string `yaml:"role"`
	SystemMessage string `yaml:"system_message"`
}

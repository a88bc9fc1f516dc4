package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutritionlabs/nutrition-eval/internal/nutrition"
)

func loadTestCatalog(t *testing.T) *Definition {
	t.Helper()
	def, err := Load("calorieking-v1", "")
	require.NoError(t, err)
	return def
}

func TestBuildPromptBattery(t *testing.T) {
	def := loadTestCatalog(t)

	prompts, err := Build(def)
	require.NoError(t, err)
	require.Len(t, prompts, 4)

	assert.Equal(t, "1A", prompts[0].ID)
	assert.Equal(t, CategoryFactual, prompts[0].Category)
	assert.Equal(t, DifficultyBasic, prompts[0].Difficulty)

	assert.Equal(t, "2A", prompts[1].ID)
	assert.Equal(t, CategoryMath, prompts[1].Category)
	assert.Equal(t, DifficultyIntermediate, prompts[1].Difficulty)

	assert.Equal(t, "3A", prompts[2].ID)
	assert.Equal(t, CategoryHealth, prompts[2].Category)
	assert.Equal(t, DifficultyAdvanced, prompts[2].Difficulty)

	assert.Equal(t, "4A", prompts[3].ID)
	assert.Equal(t, CategoryErrors, prompts[3].Category)
	assert.Equal(t, DifficultyExpert, prompts[3].Difficulty)
}

func TestBuildFactualExpected(t *testing.T) {
	prompts, err := Build(loadTestCatalog(t))
	require.NoError(t, err)

	exp := prompts[0].Expected.Factual
	require.NotNil(t, exp)

	assert.InDelta(t, 0.1, exp.TotalFatG, 1e-9)
	assert.InDelta(t, 22.5, exp.TotalCarbohydratesG, 1e-9)
	assert.InDelta(t, 19.8, exp.CarbCalculation.NetCarbs, 1e-9)
	assert.InDelta(t, 2.7, exp.CarbCalculation.Fiber, 1e-9)
	assert.InDelta(t, 22.5, exp.CarbCalculation.Total, 1e-9)
}

func TestBuildMathExpected(t *testing.T) {
	prompts, err := Build(loadTestCatalog(t))
	require.NoError(t, err)

	exp := prompts[1].Expected.Math
	require.NotNil(t, exp)

	assert.InDelta(t, 90.0, exp.Calculations.CarbohydratesCal, 1e-9)
	assert.InDelta(t, 6.8, exp.Calculations.ProteinCal, 1e-9)
	assert.InDelta(t, 0.9, exp.Calculations.FatCal, 1e-9)
	assert.InDelta(t, 0.0, exp.Calculations.AlcoholCal, 1e-9)
	assert.InDelta(t, 97.7, exp.CalculatedTotalCal, 1e-9)
	assert.InDelta(t, 378.0, exp.GivenEnergyValue, 1e-9)
}

func TestBuildHealthExpected(t *testing.T) {
	prompts, err := Build(loadTestCatalog(t))
	require.NoError(t, err)

	exp := prompts[2].Expected.Health
	require.NotNil(t, exp)

	// Cheesecake: sugar 18g, sodium 650mg, sat fat 8g are all above the
	// condition limits.
	assert.Equal(t, "poor", exp.Evaluations.Type2Diabetes.Suitability)
	assert.Equal(t, "poor", exp.Evaluations.HighBloodPressure.Suitability)
	assert.Equal(t, "poor", exp.Evaluations.HighCholesterol.Suitability)
	assert.Contains(t, exp.Evaluations.HighCholesterol.KeyConcerns, nutrition.TransFat)
}

func TestBuildErrorExpected(t *testing.T) {
	prompts, err := Build(loadTestCatalog(t))
	require.NoError(t, err)

	exp := prompts[3].Expected.Errors
	require.NotNil(t, exp)

	assert.Equal(t, 2, exp.TotalErrors)
	require.Len(t, exp.ErrorsFound, 2)
	assert.Equal(t, nutrition.SatFat, exp.ErrorsFound[0].Field)
	assert.Equal(t, nutrition.Sodium, exp.ErrorsFound[1].Field)
}

func TestBuildIsDeterministic(t *testing.T) {
	def := loadTestCatalog(t)

	first, err := Build(def)
	require.NoError(t, err)
	second, err := Build(def)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildStructuredAppendsResponseFormat(t *testing.T) {
	def := loadTestCatalog(t)
	def.Scoring = ScoringStructured

	prompts, err := Build(def)
	require.NoError(t, err)
	for _, p := range prompts {
		assert.Contains(t, p.Text, "Respond with only a JSON object", "prompt %s", p.ID)
	}

	def.Scoring = ScoringHeuristic
	prompts, err = Build(def)
	require.NoError(t, err)
	for _, p := range prompts {
		assert.NotContains(t, p.Text, "Respond with only a JSON object", "prompt %s", p.ID)
	}
}

func TestBuildFallbackSelection(t *testing.T) {
	def := &Definition{
		Records: []nutrition.FoodRecord{
			{Name: "Oatmeal", Nutrients: nutrition.NutrientProfile{nutrition.Energy: 640}},
			{Name: "Lentil Soup", Nutrients: nutrition.NutrientProfile{nutrition.Sodium: 480}},
			{Name: "Trail Mix", Nutrients: nutrition.NutrientProfile{nutrition.Fat: 29}},
		},
	}

	prompts, err := Build(def)
	require.NoError(t, err)
	require.Len(t, prompts, 4)

	// No record matches the hints, so selection falls back by position.
	assert.Contains(t, prompts[2].Text, "480")
	assert.Contains(t, prompts[3].Text, "34") // fat 29 + 5 injected into satFat
}

func TestBuildFailsWhenFallbackOutOfRange(t *testing.T) {
	def := &Definition{
		Records: []nutrition.FoodRecord{
			{Name: "Oatmeal", Nutrients: nutrition.NutrientProfile{}},
		},
	}

	_, err := Build(def)
	assert.Error(t, err)
}

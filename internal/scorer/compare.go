package scorer

import (
	"math"

	"github.com/nutritionlabs/nutrition-eval/internal/catalog"
)

// Absolute tolerances for numeric comparisons. A difference exactly equal
// to the tolerance fails the check.
const (
	nutrientTolerance = 0.01
	calorieTolerance  = 0.1
)

// Comparator computes an accuracy percentage (0-100) for one rubric by
// comparing a parsed response against the expected answer. Missing or
// mistyped response fields read as zero values and simply fail their
// criterion; a comparator never returns an error.
type Comparator interface {
	Compare(response map[string]any, expected catalog.Expected) float64
}

// within reports whether two values are strictly inside an absolute
// tolerance of each other.
func within(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// factualComparator awards 3 points: total fat, total carbohydrates, and
// the full nested carbohydrate derivation.
type factualComparator struct{}

func (factualComparator) Compare(response map[string]any, expected catalog.Expected) float64 {
	exp := expected.Factual
	if exp == nil {
		return 0
	}

	points := 0
	if within(numberAt(response, "total_fat_g"), exp.TotalFatG, nutrientTolerance) {
		points++
	}
	if within(numberAt(response, "total_carbohydrates_g"), exp.TotalCarbohydratesG, nutrientTolerance) {
		points++
	}
	carbs := objectAt(response, "carb_calculation")
	if within(numberAt(carbs, "net_carbs"), exp.CarbCalculation.NetCarbs, nutrientTolerance) &&
		within(numberAt(carbs, "fiber"), exp.CarbCalculation.Fiber, nutrientTolerance) &&
		within(numberAt(carbs, "total"), exp.CarbCalculation.Total, nutrientTolerance) {
		points++
	}
	return percentage(points, 3)
}

// mathComparator awards 4 points: one per macronutrient calorie
// contribution and one for the aggregated total. The total is scored
// independently, so it can pass even when intermediate terms are absent.
type mathComparator struct{}

func (mathComparator) Compare(response map[string]any, expected catalog.Expected) float64 {
	exp := expected.Math
	if exp == nil {
		return 0
	}

	points := 0
	calcs := objectAt(response, "calculations")
	if within(numberAt(calcs, "carbohydrates_cal"), exp.Calculations.CarbohydratesCal, calorieTolerance) {
		points++
	}
	if within(numberAt(calcs, "protein_cal"), exp.Calculations.ProteinCal, calorieTolerance) {
		points++
	}
	if within(numberAt(calcs, "fat_cal"), exp.Calculations.FatCal, calorieTolerance) {
		points++
	}
	if within(numberAt(response, "calculated_total_cal"), exp.CalculatedTotalCal, calorieTolerance) {
		points++
	}
	return percentage(points, 4)
}

// healthComparator awards 3 points, one per condition whose suitability
// label exactly matches. Numeric justification fields are not scored.
type healthComparator struct{}

func (healthComparator) Compare(response map[string]any, expected catalog.Expected) float64 {
	exp := expected.Health
	if exp == nil {
		return 0
	}

	evaluations := objectAt(response, "evaluations")
	conditions := []struct {
		key   string
		label string
	}{
		{"type_2_diabetes", exp.Evaluations.Type2Diabetes.Suitability},
		{"high_blood_pressure", exp.Evaluations.HighBloodPressure.Suitability},
		{"high_cholesterol", exp.Evaluations.HighCholesterol.Suitability},
	}

	points := 0
	for _, c := range conditions {
		if stringAt(objectAt(evaluations, c.key), "suitability") == c.label {
			points++
		}
	}
	return percentage(points, 3)
}

// errorComparator awards 1 point for an exact total-error count plus 1
// point per induced critical field reported. Extra fields are not
// penalized.
type errorComparator struct{}

func (errorComparator) Compare(response map[string]any, expected catalog.Expected) float64 {
	exp := expected.Errors
	if exp == nil {
		return 0
	}

	points := 0
	if numberAt(response, "total_errors") == float64(exp.TotalErrors) {
		points++
	}

	reported := make(map[string]bool)
	for _, entry := range sliceAt(response, "errors_found") {
		if obj, ok := entry.(map[string]any); ok {
			reported[stringAt(obj, "field")] = true
		}
	}
	for _, e := range exp.ErrorsFound {
		if reported[e.Field] {
			points++
		}
	}
	return percentage(points, 1+len(exp.ErrorsFound))
}

func percentage(points, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(points) / float64(total) * 100
}

// numberAt returns the numeric value at key, or 0 when the key is absent or
// not a number. Missing response fields fail tolerance checks naturally
// instead of aborting the comparison.
func numberAt(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	v, _ := m[key].(float64)
	return v
}

// objectAt returns the nested object at key, or nil when absent or of
// another type.
func objectAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

// stringAt returns the string at key, or "" when absent or of another type.
func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

// sliceAt returns the array at key, or nil when absent or of another type.
func sliceAt(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	v, _ := m[key].([]any)
	return v
}

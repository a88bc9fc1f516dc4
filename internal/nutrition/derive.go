package nutrition

// Derived quantities computed from a NutrientProfile. These form the ground
// truth that model responses are compared against, so the formulas here are
// the single source of each expected value.

// Suitability is a categorical health verdict for one medical condition.
type Suitability string

const (
	SuitabilityPoor Suitability = "poor"
	SuitabilityFair Suitability = "fair"
	SuitabilityGood Suitability = "good"
)

// Health thresholds. A value above the limit is poor for the condition;
// above half the limit is fair; otherwise good.
const (
	sugarDiabetesLimit       = 15.0  // grams
	sodiumBloodPressureLimit = 400.0 // milligrams
	satFatCholesterolLimit   = 5.0   // grams
)

// TotalCarbs returns total carbohydrates: net carbs plus fiber.
func TotalCarbs(p NutrientProfile) float64 {
	return p.Value(NetCarbs) + p.Value(Fiber)
}

// CalorieBreakdown holds per-macronutrient calorie contributions under the
// 4-4-9-7 rule.
type CalorieBreakdown struct {
	Carbohydrates float64
	Protein       float64
	Fat           float64
	Alcohol       float64
	Total         float64
}

// Calories computes the calorie breakdown using the 4-4-9-7 rule:
// 4 cal/g for carbohydrates (net carbs plus fiber), 4 cal/g for protein,
// 9 cal/g for fat, 7 cal/g for alcohol.
func Calories(p NutrientProfile) CalorieBreakdown {
	b := CalorieBreakdown{
		Carbohydrates: TotalCarbs(p) * 4,
		Protein:       p.Value(Protein) * 4,
		Fat:           p.Value(Fat) * 9,
		Alcohol:       p.Value(Alcohol) * 7,
	}
	b.Total = b.Carbohydrates + b.Protein + b.Fat + b.Alcohol
	return b
}

// HealthVerdict is the outcome of evaluating a profile against one
// condition: the categorical label, the nutrient names that drove it, and
// the literal values behind it.
type HealthVerdict struct {
	Suitability Suitability
	Concerns    []string
	Values      map[string]float64
}

// DiabetesVerdict evaluates suitability for type 2 diabetes based on sugar
// content.
func DiabetesVerdict(p NutrientProfile) HealthVerdict {
	return thresholdVerdict(p, Sugar, sugarDiabetesLimit)
}

// BloodPressureVerdict evaluates suitability for high blood pressure based
// on sodium content.
func BloodPressureVerdict(p NutrientProfile) HealthVerdict {
	return thresholdVerdict(p, Sodium, sodiumBloodPressureLimit)
}

// CholesterolVerdict evaluates suitability for high cholesterol based on
// saturated fat, noting trans fat as an additional concern when present.
func CholesterolVerdict(p NutrientProfile) HealthVerdict {
	v := thresholdVerdict(p, SatFat, satFatCholesterolLimit)
	if trans := p.Value(TransFat); trans > 0 {
		v.Concerns = append(v.Concerns, TransFat)
		v.Values[TransFat] = trans
	}
	return v
}

func thresholdVerdict(p NutrientProfile, nutrient string, limit float64) HealthVerdict {
	value := p.Value(nutrient)
	v := HealthVerdict{
		Suitability: SuitabilityGood,
		Values:      map[string]float64{nutrient: value},
	}
	switch {
	case value > limit:
		v.Suitability = SuitabilityPoor
	case value > limit/2:
		v.Suitability = SuitabilityFair
	}
	if v.Suitability != SuitabilityGood {
		v.Concerns = append(v.Concerns, nutrient)
	}
	return v
}

// CorruptForErrorDetection returns a copy of the record with two deliberate
// inconsistencies injected: a negative sodium value and a saturated fat
// value above total fat. The returned field names are the errors a correct
// response is expected to flag, in injection order.
func CorruptForErrorDetection(r FoodRecord) (FoodRecord, []string) {
	corrupted := r
	corrupted.Nutrients = r.Nutrients.Clone()
	corrupted.Nutrients[SatFat] = corrupted.Nutrients.Value(Fat) + 5
	corrupted.Nutrients[Sodium] = -5
	return corrupted, []string{SatFat, Sodium}
}

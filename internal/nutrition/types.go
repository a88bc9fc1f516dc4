package nutrition

// Nutrient names used by the record sources. Macronutrients are grams per
// serving; minerals are milligrams per serving.
const (
	Energy      = "energy"
	Fat         = "fat"
	NetCarbs    = "netCarbs"
	Protein     = "protein"
	Sugar       = "sugar"
	Fiber       = "fiber"
	Calcium     = "calcium"
	Sodium      = "sodium"
	SatFat      = "satFat"
	TransFat    = "transFat"
	Cholesterol = "cholesterol"
	Alcohol     = "alcohol"
	Potassium   = "potassium"
	Iron        = "iron"
	VitaminC    = "vitaminC"
)

// NutrientProfile maps a nutrient name to its amount. Absent nutrients read
// as 0. Profiles are treated as immutable once loaded; anything that needs a
// modified profile works on a copy.
type NutrientProfile map[string]float64

// Value returns the amount for a nutrient, or 0 when the profile has no
// entry for it.
func (p NutrientProfile) Value(name string) float64 {
	return p[name]
}

// Clone returns an independent copy of the profile.
func (p NutrientProfile) Clone() NutrientProfile {
	out := make(NutrientProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FoodRecord is a single food item from a record source.
type FoodRecord struct {
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Nutrients NutrientProfile `json:"nutrients"`
}

// DataSourceError indicates the underlying record source is missing or
// corrupt. It is the only error class that aborts an evaluation run.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return "nutrition data source " + e.Source + ": " + e.Err.Error()
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

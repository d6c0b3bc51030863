package classifier

import "fmt"

// CountryPrefix is how the training pipeline named its one-hot country
// columns.
const CountryPrefix = "COUNTRY_NAME_"

// DefaultCountry is assumed when the caller does not supply one, matching
// the model's training default.
const DefaultCountry = "Czech Republic"

// ControlledFeatures are the numeric inputs the assessment form controls;
// everything else in the vector stays zero.
var ControlledFeatures = []string{
	"SEX",
	"AGE",
	"SOFT_DRINKS",
	"SWEETS",
	"VEGETABLES",
	"FRIEND_TALK",
	"PHYS_ACT_60",
	"BREAKFAST_WEEKDAYS",
	"TOOTH_BRUSHING",
	"FEEL_LOW",
	"TALK_FATHER",
}

// FeatureVector is one named row in the model's training layout.
type FeatureVector struct {
	Features map[string]float64
}

// BuildVector assembles the model input: controlled features from the
// profile, a one-hot country marker, zeros everywhere else. Inputs outside
// the controlled set are rejected so a typo cannot silently become a zero
// column.
func BuildVector(inputs map[string]int, country string) (FeatureVector, error) {
	controlled := map[string]bool{}
	for _, f := range ControlledFeatures {
		controlled[f] = true
	}

	features := make(map[string]float64, len(inputs)+1)
	for name, v := range inputs {
		if !controlled[name] {
			return FeatureVector{}, fmt.Errorf("uncontrolled feature %q", name)
		}
		features[name] = float64(v)
	}
	for _, f := range ControlledFeatures {
		if _, ok := features[f]; !ok {
			return FeatureVector{}, fmt.Errorf("missing controlled feature %q", f)
		}
	}

	if country == "" {
		country = DefaultCountry
	}
	features[CountryPrefix+country] = 1.0

	return FeatureVector{Features: features}, nil
}

package survey

// Scale describes one factor column's ordinal range. Reversed means raw 1 is
// the riskiest answer in the data's natural direction, so normalization must
// invert it to keep 1 = riskiest on the common axis.
type Scale struct {
	Max      int  `yaml:"max"`
	Reversed bool `yaml:"reversed"`
}

// ScaleTable maps factor column name to its scale descriptor. It is
// configuration: every column the ranker or aggregator touches must have an
// entry.
type ScaleTable map[string]Scale

// Lookup returns the descriptor for a column, or false if none is configured
// or the descriptor is unusable (max < 1).
func (t ScaleTable) Lookup(name string) (Scale, bool) {
	s, ok := t[name]
	if !ok || s.Max < 1 {
		return Scale{}, false
	}
	return s, true
}

// DefaultScales is the scale table for the HBSC dataset.
func DefaultScales() ScaleTable {
	return ScaleTable{
		"HEADACHE":              {Max: 5, Reversed: true},
		"NERVOUS":               {Max: 5, Reversed: true},
		"SLEEP_DIF":             {Max: 5, Reversed: true},
		"FEEL_LOW":              {Max: 5, Reversed: true},
		"STOMACHACHE":           {Max: 5, Reversed: true},
		"DIZZY":                 {Max: 5, Reversed: true},
		"TALK_FATHER":           {Max: 5},
		"TALK_MOTHER":           {Max: 5},
		"FAMILY_MEALS_TOGETHER": {Max: 5},
		"TIME_EXE":              {Max: 7},
		"TOOTH_BRUSHING":        {Max: 5},
		"HEALTH":                {Max: 4},
		"LIKE_SCHOOL":           {Max: 4},
		"STUD_TOGETHER":         {Max: 5},
		"FRUITS":                {Max: 7, Reversed: true},
		"VEGETABLES":            {Max: 7, Reversed: true},
		"FRIEND_TALK":           {Max: 7, Reversed: true},
		"BREAKFAST_WEEKDAYS":    {Max: 5, Reversed: true},
		"BREAKFAST_WEEKEND":     {Max: 3, Reversed: true},
		"PHYS_ACT_60":           {Max: 7, Reversed: true},
		"LIFESAT":               {Max: 10, Reversed: true},
		"SWEETS":                {Max: 7},
		"SOFT_DRINKS":           {Max: 7},
		"DRUNK_30":              {Max: 5},
		"BUL_BEEN":              {Max: 5},
		"BUL_OTHERS":            {Max: 5},
		"FIGHT_YEAR":            {Max: 5},
		"INJURED_YEAR":          {Max: 5},
		"COMPUTER_NO":           {Max: 4},
		"THINK_BODY":            {Max: 5},
		"SCHOOL_PRESSURE":       {Max: 4},
	}
}

// DefaultFactors is the candidate factor list used for ranking and gap
// tables, in declaration order. Order matters: it is the tie-break for equal
// correlations.
func DefaultFactors() []string {
	return []string{
		"FRUITS", "SOFT_DRINKS", "SWEETS", "VEGETABLES", "FRIEND_TALK",
		"TIME_EXE", "PHYS_ACT_60", "DRUNK_30",
		"FAMILY_MEALS_TOGETHER", "BREAKFAST_WEEKDAYS", "BREAKFAST_WEEKEND",
		"TOOTH_BRUSHING", "STUD_TOGETHER",
		"BUL_OTHERS", "BUL_BEEN", "FIGHT_YEAR", "INJURED_YEAR",
		"HEADACHE", "FEEL_LOW", "NERVOUS", "SLEEP_DIF", "DIZZY",
		"TALK_MOTHER", "TALK_FATHER", "LIKE_SCHOOL",
		"SCHOOL_PRESSURE", "COMPUTER_NO",
	}
}

// FactorAlias maps column names to the short risk-oriented labels the
// dashboards display. Presentation data, returned alongside field names so
// clients need no copy of this table.
var FactorAlias = map[string]string{
	"FRUITS":                "No fruit",
	"SOFT_DRINKS":           "Soft drinks",
	"SWEETS":                "Sweets",
	"VEGETABLES":            "No vegetables",
	"FRIEND_TALK":           "No friends talk",
	"TIME_EXE":              "No exercise",
	"PHYS_ACT_60":           "Below 60 min/day",
	"DRUNK_30":              "Alcohol",
	"FAMILY_MEALS_TOGETHER": "No family meals",
	"BREAKFAST_WEEKDAYS":    "No breakfast (weekdays)",
	"BREAKFAST_WEEKEND":     "No breakfast (weekend)",
	"TOOTH_BRUSHING":        "Poor tooth care",
	"STUD_TOGETHER":         "No friend time",
	"BUL_OTHERS":            "Bullies others",
	"BUL_BEEN":              "Been bullied",
	"FIGHT_YEAR":            "Often fights",
	"INJURED_YEAR":          "Often injured",
	"HEADACHE":              "Headaches",
	"FEEL_LOW":              "Feels low",
	"NERVOUS":               "Nervous",
	"SLEEP_DIF":             "Sleep problems",
	"DIZZY":                 "Dizzy",
	"TALK_MOTHER":           "No mom talk",
	"TALK_FATHER":           "No dad talk",
	"LIKE_SCHOOL":           "Dislikes school",
	"SCHOOL_PRESSURE":       "High school pressure",
	"COMPUTER_NO":           "Computer/Gaming use",
}

// Alias returns the display label for a factor, falling back to the column
// name itself.
func Alias(field string) string {
	if a, ok := FactorAlias[field]; ok {
		return a
	}
	return field
}

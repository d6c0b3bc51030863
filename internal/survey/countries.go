package survey

// The source CSV splits some countries into survey sub-regions. Aggregation
// by country expects the merged spellings below.
var countryMerge = map[string]string{
	"Belgium (Flemish)": "Belgium",
	"Belgium (French)":  "Belgium",
	"England":           "United Kingdom",
	"Scotland":          "United Kingdom",
	"Wales":             "United Kingdom",
	"Northern Ireland":  "United Kingdom",
	"Great Britain":     "United Kingdom",
	"UK (England)":      "United Kingdom",
	"UK (Wales)":        "United Kingdom",
	"UK (Scotland)":     "United Kingdom",
}

// CanonicalCountry maps a raw country spelling to its canonical form.
func CanonicalCountry(name string) string {
	if merged, ok := countryMerge[name]; ok {
		return merged
	}
	return name
}

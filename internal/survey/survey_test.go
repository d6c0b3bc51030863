package survey

import "testing"

func TestCanonicalCountry(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Belgium (Flemish)", "Belgium"},
		{"Belgium (French)", "Belgium"},
		{"Scotland", "United Kingdom"},
		{"UK (Wales)", "United Kingdom"},
		{"Czech Republic", "Czech Republic"},
	}
	for _, tt := range tests {
		if got := CanonicalCountry(tt.in); got != tt.want {
			t.Errorf("CanonicalCountry(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScaleTableLookup(t *testing.T) {
	table := DefaultScales()

	s, ok := table.Lookup("FRUITS")
	if !ok || s.Max != 7 || !s.Reversed {
		t.Errorf("FRUITS = %+v, %v; want {7 true}, true", s, ok)
	}
	if _, ok := table.Lookup("NOT_A_COLUMN"); ok {
		t.Error("unknown column must not resolve")
	}
	broken := ScaleTable{"BROKEN": {Max: 0}}
	if _, ok := broken.Lookup("BROKEN"); ok {
		t.Error("zero-max descriptor must not resolve")
	}
}

func TestDefaultFactorsHaveScales(t *testing.T) {
	table := DefaultScales()
	for _, f := range DefaultFactors() {
		if _, ok := table.Lookup(f); !ok {
			t.Errorf("candidate factor %s has no scale descriptor", f)
		}
	}
}

func TestRecordFactor(t *testing.T) {
	r := Record{Factors: map[string]int{"SWEETS": 3, "BUL_BEEN": Sentinel}}

	if v, ok := r.Factor("SWEETS"); !ok || v != 3 {
		t.Errorf("SWEETS = (%d, %v), want (3, true)", v, ok)
	}
	if _, ok := r.Factor("BUL_BEEN"); ok {
		t.Error("sentinel answer must read as missing")
	}
	if _, ok := r.Factor("FRUITS"); ok {
		t.Error("absent answer must read as missing")
	}
}

func TestSexLabel(t *testing.T) {
	if SexBoys.Label() != "Boys" || SexGirls.Label() != "Girls" {
		t.Error("unexpected sex labels")
	}
}

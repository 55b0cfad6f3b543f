package quality

import "fmt"

// Thresholds holds the numeric knobs of the classifier
type Thresholds struct {
	MinTotalLength   int     // reject when contributing answers are shorter in total
	MaxSuspicious    int     // reject when more answers than this are suspicious
	MinValidWeight   float64 // reject when the weighted count of solid answers is lower
	FullWeightLength int     // answer length that counts as 1.0
	HalfWeightLength int     // answer length that counts as 0.5
	MaxVowelRatio    float64 // below this vowel share an answer may be keyboard mashing
	MinConsonantRun  int     // ...if it also has a consonant run at least this long
}

// Strict is the current production rule set
var Strict = Thresholds{
	MinTotalLength:   50,
	MaxSuspicious:    2,
	MinValidWeight:   2,
	FullWeightLength: 20,
	HalfWeightLength: 10,
	MaxVowelRatio:    0.15,
	MinConsonantRun:  5,
}

// Lenient is the earlier, more forgiving rule set
var Lenient = Thresholds{
	MinTotalLength:   30,
	MaxSuspicious:    3,
	MinValidWeight:   1,
	FullWeightLength: 20,
	HalfWeightLength: 10,
	MaxVowelRatio:    0.15,
	MinConsonantRun:  5,
}

// Presets lists the named threshold sets
var Presets = map[string]Thresholds{
	"strict":  Strict,
	"lenient": Lenient,
}

// PresetByName resolves a preset, defaulting to Strict for an empty name
func PresetByName(name string) (Thresholds, error) {
	if name == "" {
		return Strict, nil
	}
	t, ok := Presets[name]
	if !ok {
		return Thresholds{}, fmt.Errorf("unknown quality preset %q", name)
	}
	return t, nil
}

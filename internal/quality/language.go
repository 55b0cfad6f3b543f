package quality

import "strings"

// Language carries the orthography-specific parts of the heuristic. The
// letter classes only make sense for the language the audit is written in;
// retargeting the service means supplying a new Language, not widening
// these sets.
type Language struct {
	Name       string
	Vowels     string
	Consonants string

	// LowQualityPhrases are filler answers, compared after lowercasing and
	// trimming, with or without one trailing period.
	LowQualityPhrases []string

	// ShortPhraseMaxLen bounds the phrase check: only answers shorter than
	// this many runes are compared against LowQualityPhrases.
	ShortPhraseMaxLen int
}

// Polish is the language of the audit questionnaire
var Polish = Language{
	Name:       "pl",
	Vowels:     "aąeęioóuy",
	Consonants: "bcćdfghjklłmnńprsśtwzźż",
	LowQualityPhrases: []string{
		"nie wiem",
		"trudno powiedzieć",
		"test",
		"asdf",
		"brak",
		"xd",
		"ok",
		"asd",
		"qwe",
		"zxc",
		"brak pomysłu",
	},
	ShortPhraseMaxLen: 15,
}

// Languages lists the built-in languages by name
var Languages = map[string]Language{
	Polish.Name: Polish,
}

func (l Language) isVowel(r rune) bool {
	return strings.ContainsRune(l.Vowels, r)
}

func (l Language) isConsonant(r rune) bool {
	return strings.ContainsRune(l.Consonants, r)
}

func (l Language) isLowQualityPhrase(normalized string) bool {
	for _, phrase := range l.LowQualityPhrases {
		if normalized == phrase || normalized == phrase+"." {
			return true
		}
	}
	return false
}

// Package quality decides whether free-text audit answers are worth a real
// analysis. It is a keyword-and-shape heuristic, no model call is involved.
package quality

import (
	"strings"
	"unicode/utf8"

	"brandaudit/internal/model"
)

// AnswerKind is the per-answer classification
type AnswerKind string

const (
	KindContributing AnswerKind = "contributing"
	KindEmpty        AnswerKind = "empty"
	KindFillerPhrase AnswerKind = "filler_phrase"
	KindRepetition   AnswerKind = "repetition"
	KindDigitsOnly   AnswerKind = "digits_only"
	KindKeyboardMash AnswerKind = "keyboard_mash"
)

// Suspicious reports whether the kind counts against the submission
func (k AnswerKind) Suspicious() bool {
	return k != KindContributing
}

// AnswerAssessment describes how a single answer was judged
type AnswerAssessment struct {
	Normalized string     `json:"normalized"`
	Length     int        `json:"length"`
	Kind       AnswerKind `json:"kind"`
	Weight     float64    `json:"weight"`
}

// Classifier is safe for concurrent use; it holds no mutable state.
type Classifier struct {
	lang       Language
	thresholds Thresholds
}

// Option configures a Classifier
type Option func(*Classifier)

// WithLanguage swaps the letter classes and filler phrases
func WithLanguage(lang Language) Option {
	return func(c *Classifier) { c.lang = lang }
}

// WithThresholds swaps the rejection thresholds
func WithThresholds(t Thresholds) Option {
	return func(c *Classifier) { c.thresholds = t }
}

// NewClassifier creates a classifier using Polish and the Strict thresholds
// unless overridden
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		lang:       Polish,
		thresholds: Strict,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Language returns the language the classifier is tuned to
func (c *Classifier) Language() Language {
	return c.lang
}

// Thresholds returns the active thresholds
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify judges a set of answers. Rejected means the submission looks
// like low-effort input and should not reach the generation backend.
func (c *Classifier) Classify(answers []string) model.QualityVerdict {
	var verdict model.QualityVerdict

	for _, answer := range answers {
		a := c.AssessAnswer(answer)
		if a.Kind.Suspicious() {
			verdict.SuspiciousCount++
			continue
		}
		verdict.TotalLength += a.Length
		verdict.ValidWeight += a.Weight
	}

	t := c.thresholds
	verdict.Rejected = verdict.TotalLength < t.MinTotalLength ||
		verdict.SuspiciousCount > t.MaxSuspicious ||
		verdict.ValidWeight < t.MinValidWeight

	return verdict
}

// AssessAnswer runs the per-answer checks in order; the first match wins.
func (c *Classifier) AssessAnswer(answer string) AnswerAssessment {
	normalized := strings.TrimSpace(strings.ToLower(answer))
	length := utf8.RuneCountInString(normalized)
	a := AnswerAssessment{Normalized: normalized, Length: length}

	switch {
	case length == 0:
		a.Kind = KindEmpty
	case length < c.lang.ShortPhraseMaxLen && c.lang.isLowQualityPhrase(normalized):
		a.Kind = KindFillerPhrase
	case isDegenerateRepetition(normalized):
		a.Kind = KindRepetition
	case isDigitsOnly(normalized):
		a.Kind = KindDigitsOnly
	case c.looksLikeKeyboardMash(normalized):
		a.Kind = KindKeyboardMash
	default:
		a.Kind = KindContributing
		a.Weight = c.weight(length)
	}
	return a
}

func (c *Classifier) weight(length int) float64 {
	switch {
	case length >= c.thresholds.FullWeightLength:
		return 1
	case length >= c.thresholds.HalfWeightLength:
		return 0.5
	default:
		return 0
	}
}

// looksLikeKeyboardMash flags strings that are almost all consonants and
// contain a long consonant run, e.g. "sdfghjkl qwrtzp".
func (c *Classifier) looksLikeKeyboardMash(s string) bool {
	vowels, consonants := 0, 0
	run, longestRun := 0, 0
	for _, r := range s {
		switch {
		case c.lang.isVowel(r):
			vowels++
			run = 0
		case c.lang.isConsonant(r):
			consonants++
			run++
			if run > longestRun {
				longestRun = run
			}
		default:
			run = 0
		}
	}
	if consonants == 0 {
		return false
	}
	ratio := float64(vowels) / float64(vowels+consonants)
	return ratio < c.thresholds.MaxVowelRatio && longestRun >= c.thresholds.MinConsonantRun
}

// isDegenerateRepetition reports whether s is a block of 1-3 runes repeated
// at least three times and nothing else ("aaaa", "ababab", "xyzxyzxyz").
func isDegenerateRepetition(s string) bool {
	runes := []rune(s)
	n := len(runes)
	for unit := 1; unit <= 3; unit++ {
		if n%unit != 0 || n/unit < 3 {
			continue
		}
		if hasLineBreak(runes[:unit]) {
			continue
		}
		repeated := true
		for i := unit; i < n; i++ {
			if runes[i] != runes[i%unit] {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

func hasLineBreak(runes []rune) bool {
	for _, r := range runes {
		switch r {
		case '\n', '\r', '\u2028', '\u2029':
			return true
		}
	}
	return false
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

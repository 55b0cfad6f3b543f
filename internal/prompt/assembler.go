// Package prompt turns a validated audit into the directive sent to the
// generation backend.
package prompt

import (
	"errors"
	"fmt"

	"brandaudit/internal/model"
	"brandaudit/internal/tier"
)

// Input is what the assembler needs for one accepted submission
type Input struct {
	Survey    model.SurveyResponse
	Table     *tier.Table
	Band      tier.Band
	Knowledge string
}

// Directive is the assembled payload and the layout that produced it
type Directive struct {
	Text     string
	Strategy string
}

// Assembler is pure; the same Input always yields the same bytes.
type Assembler struct {
	strategies []Strategy
	fallback   Strategy
	sanitizer  Sanitizer
	defaults   Defaults
}

// Option configures an Assembler
type Option func(*Assembler)

// WithStrategy adds a layout that is tried before the ones added earlier
func WithStrategy(s Strategy) Option {
	return func(a *Assembler) {
		a.strategies = append([]Strategy{s}, a.strategies...)
	}
}

// WithPeerReview switches scores >= minScore to the peer-review layout
func WithPeerReview(minScore int) Option {
	return WithStrategy(PeerReviewStrategy{MinScore: minScore})
}

func WithSanitizer(s Sanitizer) Option {
	return func(a *Assembler) { a.sanitizer = s }
}

func WithDefaults(d Defaults) Option {
	return func(a *Assembler) { a.defaults = d }
}

// NewAssembler creates an assembler that falls back to MentorStrategy
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		fallback:  MentorStrategy{},
		sanitizer: DefaultSanitizer(),
		defaults:  PolishDefaults,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StrategyFor returns the first layout that applies to score
func (a *Assembler) StrategyFor(score int) Strategy {
	for _, s := range a.strategies {
		if s.Applies(score) {
			return s
		}
	}
	return a.fallback
}

// Assemble builds the directive text
func (a *Assembler) Assemble(in Input) (Directive, error) {
	if in.Table == nil {
		return Directive{}, errors.New("prompt: no tier table")
	}
	if in.Band.Directive == "" {
		return Directive{}, fmt.Errorf("prompt: band %q has no directive", in.Band.Name)
	}
	survey := in.Survey

	c := Context{
		UserName:      a.name(survey.UserName, a.defaults.UserName),
		BrandName:     a.name(survey.BrandName, a.defaults.brandFallback(survey.Segment)),
		Segment:       survey.Segment,
		SegmentLabel:  tier.SegmentLabel(survey.Segment),
		SegmentClause: tier.SegmentClause(survey.Segment),
		Score:         survey.Score,
		Scale:         in.Table.Scale(),
		Knowledge:     in.Knowledge,
		Band:          in.Band,
	}
	for i, ans := range survey.Answers {
		c.Answers[i] = a.sanitizer.Answer(ans)
	}

	s := a.StrategyFor(survey.Score)
	return Directive{Text: s.Render(c), Strategy: s.Name()}, nil
}

// name sanitizes raw and falls back when nothing usable is left
func (a *Assembler) name(raw, fallback string) string {
	if v := a.sanitizer.Name(raw); v != "" {
		return v
	}
	return fallback
}

// Package tier maps an audit score to a closing-tone directive.
package tier

import (
	"errors"
	"fmt"
	"strings"

	"brandaudit/internal/model"
)

// ErrScoreOutOfRange is returned for scores outside [0, model.MaxScore]
var ErrScoreOutOfRange = errors.New("score out of range")

// Band is a contiguous score range ending at Max (inclusive). It starts one
// above the previous band's Max, or at 0 for the first band.
type Band struct {
	Name      string
	Label     string // one-line reading of the band, used in the interpretation scale
	Max       int
	Directive string
}

// Table is an ordered, gap-free partition of [0, model.MaxScore]
type Table struct {
	Name  string
	Bands []Band
}

// NewTable checks that bands ascend strictly and end exactly at
// model.MaxScore, so every valid score falls into exactly one band.
func NewTable(name string, bands []Band) (*Table, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("tier table %q has no bands", name)
	}
	prev := -1
	for i, b := range bands {
		if b.Max <= prev {
			return nil, fmt.Errorf("tier table %q: band %d (%s) ends at %d, not above %d", name, i, b.Name, b.Max, prev)
		}
		if b.Directive == "" {
			return nil, fmt.Errorf("tier table %q: band %s has no directive", name, b.Name)
		}
		prev = b.Max
	}
	if prev != model.MaxScore {
		return nil, fmt.Errorf("tier table %q ends at %d, want %d", name, prev, model.MaxScore)
	}
	return &Table{Name: name, Bands: bands}, nil
}

// MustTable is NewTable for package-level tables
func MustTable(name string, bands []Band) *Table {
	t, err := NewTable(name, bands)
	if err != nil {
		panic(err)
	}
	return t
}

// Select returns the first band whose Max is at least score
func (t *Table) Select(score int) (Band, error) {
	if score < 0 || score > model.MaxScore {
		return Band{}, fmt.Errorf("%w: %d not in [0,%d]", ErrScoreOutOfRange, score, model.MaxScore)
	}
	for _, b := range t.Bands {
		if score <= b.Max {
			return b, nil
		}
	}
	// unreachable for tables built with NewTable
	return Band{}, fmt.Errorf("%w: no band in table %q covers %d", ErrScoreOutOfRange, t.Name, score)
}

// Min returns the lowest score of the band at index i
func (t *Table) Min(i int) int {
	if i == 0 {
		return 0
	}
	return t.Bands[i-1].Max + 1
}

// Scale renders the human-readable interpretation of every band, one line
// per band, in ascending order.
func (t *Table) Scale() string {
	var sb strings.Builder
	for i, b := range t.Bands {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "- **%d-%d pkt**: %s", t.Min(i), b.Max, b.Label)
	}
	return sb.String()
}

// Tables lists the built-in tables by name
var Tables = map[string]*Table{
	SixBand.Name:   SixBand,
	ThreeBand.Name: ThreeBand,
}

// ByName resolves a table name, defaulting to SixBand
func ByName(name string) (*Table, error) {
	if name == "" {
		return SixBand, nil
	}
	t, ok := Tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown tier table %q", name)
	}
	return t, nil
}

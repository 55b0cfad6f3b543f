package prompt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultMaxAnswerRunes = 2000
	DefaultMaxNameRunes   = 120
	ellipsis              = "…"
)

// Sanitizer cleans user-supplied text before it is interpolated into a
// directive. Ordinary prose passes through untouched.
type Sanitizer struct {
	MaxAnswerRunes int
	MaxNameRunes   int
}

// DefaultSanitizer uses the default caps
func DefaultSanitizer() Sanitizer {
	return Sanitizer{MaxAnswerRunes: DefaultMaxAnswerRunes, MaxNameRunes: DefaultMaxNameRunes}
}

// Answer prepares a free-text answer for a quoted slot
func (s Sanitizer) Answer(text string) string {
	text = stripControl(text, true)
	text = neutralizeDelimiters(text)
	text = stripHeadings(text)
	text = strings.ReplaceAll(text, `"`, "'")
	return capRunes(text, s.MaxAnswerRunes)
}

// Name prepares a user or brand name. Names are single-line.
func (s Sanitizer) Name(text string) string {
	text = stripControl(text, false)
	text = neutralizeDelimiters(text)
	text = strings.TrimLeft(text, "# ")
	text = strings.ReplaceAll(text, `"`, "'")
	return capRunes(strings.TrimSpace(text), s.MaxNameRunes)
}

// stripControl drops control characters. Line breaks and tabs survive in
// multi-line text, in names they become spaces.
func stripControl(text string, multiline bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\u2028', '\u2029':
			if multiline {
				return '\n'
			}
			return ' '
		case '\t':
			if multiline {
				return r
			}
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// neutralizeDelimiters breaks up "---" which fences the knowledge block
func neutralizeDelimiters(text string) string {
	for strings.Contains(text, "---") {
		text = strings.ReplaceAll(text, "---", "--")
	}
	return text
}

// stripHeadings removes markdown heading markers at line starts so answers
// cannot open a new section of the directive.
func stripHeadings(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			lines[i] = line[:len(line)-len(trimmed)] + strings.TrimLeft(trimmed, "#")
		}
	}
	return strings.Join(lines, "\n")
}

func capRunes(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + ellipsis
}

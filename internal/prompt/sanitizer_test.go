package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Answer(t *testing.T) {
	s := DefaultSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain prose untouched", "Nasza marka stoi na zaufaniu, bo dotrzymujemy słowa.", "Nasza marka stoi na zaufaniu, bo dotrzymujemy słowa."},
		{"control chars dropped", "abc\x00def\x07", "abcdef"},
		{"newlines and tabs kept", "a\n\tb", "a\n\tb"},
		{"crlf normalized", "a\r\nb", "a\nb"},
		{"delimiter broken", "x ---- y", "x -- y"},
		{"heading marker removed", "  ## Nagłówek", "   Nagłówek"},
		{"hash inside line kept", "numer #1", "numer #1"},
		{"double quotes swapped", `powiedział "tak"`, "powiedział 'tak'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Answer(tt.in))
		})
	}
}

func TestSanitizer_Caps(t *testing.T) {
	s := Sanitizer{MaxAnswerRunes: 5, MaxNameRunes: 3}

	assert.Equal(t, "ąęśćż…", s.Answer("ąęśćżź"))
	assert.Equal(t, "ąęś", s.Answer("ąęś"))
	assert.Equal(t, "Ann…", s.Name("Anna"))

	long := strings.Repeat("a", DefaultMaxAnswerRunes+10)
	assert.Equal(t, DefaultMaxAnswerRunes+1, len([]rune(DefaultSanitizer().Answer(long))))
}

func TestSanitizer_Name(t *testing.T) {
	s := DefaultSanitizer()

	assert.Equal(t, "Jan Kowalski", s.Name("  Jan\nKowalski "))
	assert.Equal(t, "Firma", s.Name("# Firma"))
	assert.Equal(t, "", s.Name("   "))
}

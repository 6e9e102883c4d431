package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// FKMarker annotates foreign-key columns in matcher output and gold files.
	FKMarker = "(FK)"

	// Separator joins the table and column parts of an element identifier.
	Separator = "__"
)

// isWordRune reports whether r may appear in an identifier word: a letter,
// a number or an underscore, in any script.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// wordAt returns the byte width of the word rune starting at s[i], or 0 when
// s[i] does not start one.
func wordAt(s string, i int) int {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError || !isWordRune(r) {
		return 0
	}
	return size
}

// StripFK removes every foreign-key marker from s.
func StripFK(s string) string {
	return strings.ReplaceAll(s, FKMarker, "")
}

// Canonical returns the canonical <Table>__<Column> form of a raw identifier
// run. The run may carry FK markers anywhere; they are dropped. ok is false
// when what remains is not a word containing the separator with at least one
// byte on each side.
func Canonical(raw string) (id string, ok bool) {
	s := StripFK(raw)
	if s == "" {
		return "", false
	}
	for i := 0; i < len(s); {
		n := wordAt(s, i)
		if n == 0 {
			return "", false
		}
		i += n
	}
	if !hasSeparator(s) {
		return "", false
	}
	return s, true
}

// hasSeparator reports whether s holds the separator with at least one byte
// before and after it.
func hasSeparator(s string) bool {
	for i := 1; i+len(Separator) < len(s); i++ {
		if s[i:i+len(Separator)] == Separator {
			return true
		}
	}
	return false
}

// Package tokenizer lexes lines of matcher output into element identifiers
// and separators.
//
// A line such as
//
//	('DimWhat__OwningDomainNumber(FK)', 'DimTheme__Id')
//
// lexes to Other("("), Ident("DimWhat__OwningDomainNumber"), Comma,
// Ident("DimTheme__Id"), Other(")"). Identifiers are reported in canonical
// form: quotes and FK markers removed.
package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	// Other is any run of text that is not an identifier or a comma.
	Other Kind = iota
	// Ident is a canonical <Table>__<Column> element identifier.
	Ident
	// Comma separates the two identifiers of a pair.
	Comma
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Comma:
		return "Comma"
	default:
		return "Other"
	}
}

// Token is a lexed piece of a line.
type Token struct {
	Kind  Kind
	Text  string // canonical identifier for Ident, raw text otherwise
	Start int    // byte offset in the line
	End   int    // byte offset in the line
}

// Tokenize splits line into tokens. Whitespace is dropped. A quoted
// identifier must close with the quote it opened with; an identifier with an
// unbalanced quote lexes as Other so it can never take part in a pair.
func Tokenize(line string) []Token {
	var tokens []Token
	i := 0
	for i < len(line) {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++

		case ch == ',':
			tokens = append(tokens, Token{Kind: Comma, Text: ",", Start: i, End: i + 1})
			i++

		case ch == '\'' || ch == '"':
			tok := lexQuoted(line, i)
			tokens = append(tokens, tok)
			i = tok.End

		case startsRun(line, i):
			end := scanRun(line, i)
			if end < len(line) && (line[end] == '\'' || line[end] == '"') {
				// Closing quote without an opening one.
				tokens = append(tokens, Token{Kind: Other, Text: line[i : end+1], Start: i, End: end + 1})
				i = end + 1
				continue
			}
			tokens = append(tokens, identOrOther(line[i:end], i, end))
			i = end

		default:
			_, size := utf8.DecodeRuneInString(line[i:])
			end := i + size
			for end < len(line) && isNoise(line, end) {
				_, size = utf8.DecodeRuneInString(line[end:])
				end += size
			}
			tokens = append(tokens, Token{Kind: Other, Text: line[i:end], Start: i, End: end})
			i = end
		}
	}
	return tokens
}

// lexQuoted lexes the token opened by the quote at line[start].
func lexQuoted(line string, start int) Token {
	q := line[start]
	if !startsRun(line, start+1) {
		return Token{Kind: Other, Text: line[start : start+1], Start: start, End: start + 1}
	}
	end := scanRun(line, start+1)
	if end >= len(line) || line[end] != q {
		return Token{Kind: Other, Text: line[start:end], Start: start, End: end}
	}
	tok := identOrOther(line[start+1:end], start, end+1)
	if tok.Kind == Other {
		tok.Text = line[start : end+1]
	}
	return tok
}

func identOrOther(raw string, start, end int) Token {
	if id, ok := Canonical(raw); ok {
		return Token{Kind: Ident, Text: id, Start: start, End: end}
	}
	return Token{Kind: Other, Text: raw, Start: start, End: end}
}

// startsRun reports whether an identifier run begins at line[i].
func startsRun(line string, i int) bool {
	if i >= len(line) {
		return false
	}
	return wordAt(line, i) > 0 || strings.HasPrefix(line[i:], FKMarker)
}

// scanRun returns the end offset of the identifier run starting at line[i].
func scanRun(line string, i int) int {
	for i < len(line) {
		switch n := wordAt(line, i); {
		case n > 0:
			i += n
		case strings.HasPrefix(line[i:], FKMarker):
			i += len(FKMarker)
		default:
			return i
		}
	}
	return i
}

// isNoise reports whether line[i] continues an Other token.
func isNoise(line string, i int) bool {
	ch := line[i]
	switch ch {
	case ' ', '\t', '\r', '\n', ',', '\'', '"':
		return false
	}
	return !startsRun(line, i)
}

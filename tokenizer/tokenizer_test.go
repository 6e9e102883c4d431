package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
		texts []string
	}{
		{
			name:  "canonical pair",
			input: "('DimWhat__OwningDomainNumber', 'DimTheme__Id')",
			want:  []Kind{Other, Ident, Comma, Ident, Other},
			texts: []string{"(", "DimWhat__OwningDomainNumber", ",", "DimTheme__Id", ")"},
		},
		{
			name:  "FK marker stripped",
			input: "('DimWhat__OwningDomainNumber(FK)', 'DimTheme__Id')",
			want:  []Kind{Other, Ident, Comma, Ident, Other},
			texts: []string{"(", "DimWhat__OwningDomainNumber", ",", "DimTheme__Id", ")"},
		},
		{
			name:  "unquoted",
			input: "A__x, B__y",
			want:  []Kind{Ident, Comma, Ident},
			texts: []string{"A__x", ",", "B__y"},
		},
		{
			name:  "double quotes",
			input: `"A__x", "B__y"`,
			want:  []Kind{Ident, Comma, Ident},
			texts: []string{"A__x", ",", "B__y"},
		},
		{
			name:  "non-ASCII identifiers",
			input: "('Kunde__Größe', 'Dim__Ümlaut')",
			want:  []Kind{Other, Ident, Comma, Ident, Other},
			texts: []string{"(", "Kunde__Größe", ",", "Dim__Ümlaut", ")"},
		},
		{
			name:  "non-ASCII noise",
			input: "→ A__x, B__y «",
			want:  []Kind{Other, Ident, Comma, Ident, Other},
			texts: []string{"→", "A__x", ",", "B__y", "«"},
		},
		{
			name:  "unclosed quote",
			input: "('A__x, 'B__y')",
			want:  []Kind{Other, Other, Comma, Ident, Other},
		},
		{
			name:  "mismatched quotes",
			input: `'A__x", 'B__y'`,
			want:  []Kind{Other, Other, Comma, Ident},
		},
		{
			name:  "stray closing quote",
			input: "A__x', B__y",
			want:  []Kind{Other, Comma, Ident},
		},
		{
			name:  "plain words",
			input: "Leaf matchings:",
			want:  []Kind{Other, Other, Other},
			texts: []string{"Leaf", "matchings", ":"},
		},
		{
			name:  "empty",
			input: "",
			want:  []Kind{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			require.Equal(t, tc.want, kinds(got), "Tokenize(%q) kinds", tc.input)
			for i, text := range tc.texts {
				assert.Equal(t, text, got[i].Text, "token[%d] text", i)
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	line := "('A__x', 'Kunde__Größe')"
	for _, tok := range Tokenize(line) {
		assert.True(t, tok.Start >= 0 && tok.End <= len(line) && tok.Start < tok.End,
			"token %+v has bad offsets for line of length %d", tok, len(line))
	}
}

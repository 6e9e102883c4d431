package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain", "DimTheme__Id", "DimTheme__Id", true},
		{"trailing FK", "DimWhat__OwningDomainNumber(FK)", "DimWhat__OwningDomainNumber", true},
		{"FK before separator", "DimWhat(FK)__Id", "DimWhat__Id", true},
		{"triple underscore", "A___b", "A___b", true},
		{"digits", "T1__c2", "T1__c2", true},
		{"umlaut", "Kunde__Größe", "Kunde__Größe", true},
		{"cyrillic", "Клиент__Имя", "Клиент__Имя", true},
		{"no separator", "DimTheme", "", false},
		{"leading separator", "__Id", "", false},
		{"trailing separator", "DimTheme__", "", false},
		{"only FK", "(FK)", "", false},
		{"punctuation", "Dim-Theme__Id", "", false},
		{"non-word symbol", "Dim€__Id", "", false},
		{"invalid UTF-8", "Dim\xff__Id", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Canonical(tc.input)
			assert.Equal(t, tc.wantOK, ok, "Canonical(%q) ok", tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStripFK(t *testing.T) {
	assert.Equal(t, "A__b", StripFK("A(FK)__b(FK)"))
	assert.Equal(t, "A__b", StripFK("A__b"))
}

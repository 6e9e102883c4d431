// Package mapping reads and writes sets of element correspondences.
//
// A mapping file holds one pair per line in the form
//
//	('DimWhat__OwningDomainNumber', 'DimTheme__Id')
//
// Lines that do not contain a pair are ignored, so matcher logs with
// interleaved chatter parse to the pairs they mention.
package mapping

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jamesainslie/go-matchbench/tokenizer"
)

// maxLineSize bounds a single line of a mapping file.
const maxLineSize = 1 << 20

// Pair is a claimed correspondence between a source and a target element.
// Identifiers are canonical <Table>__<Column> strings.
type Pair struct {
	Source string
	Target string
}

// String renders the pair in mapping file form.
func (p Pair) String() string {
	return fmt.Sprintf("('%s', '%s')", p.Source, p.Target)
}

// Set is an ordered list of pairs. Duplicates are kept.
type Set []Pair

// Contains reports whether p is in s.
func (s Set) Contains(p Pair) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// Index returns the distinct pairs of s for membership tests.
func (s Set) Index() map[Pair]struct{} {
	idx := make(map[Pair]struct{}, len(s))
	for _, p := range s {
		idx[p] = struct{}{}
	}
	return idx
}

// ParseLine extracts the first pair on line: an identifier, a comma and a
// second identifier, in that order. ok is false when there is none.
func ParseLine(line string) (p Pair, ok bool) {
	tokens := tokenizer.Tokenize(line)
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i].Kind == tokenizer.Ident &&
			tokens[i+1].Kind == tokenizer.Comma &&
			tokens[i+2].Kind == tokenizer.Ident {
			return Pair{Source: tokens[i].Text, Target: tokens[i+2].Text}, true
		}
	}
	return Pair{}, false
}

// Parse reads pairs from r in line order.
func Parse(r io.Reader) (Set, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	set := Set{}
	for scanner.Scan() {
		if p, ok := ParseLine(scanner.Text()); ok {
			set = append(set, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mappings: %w", err)
	}
	return set, nil
}

// ParseFile reads the mapping file at path.
func ParseFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mappings: %w", err)
	}
	defer func() { _ = f.Close() }()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Write renders s to w, one pair per line.
func Write(w io.Writer, s Set) error {
	bw := bufio.NewWriter(w)
	for _, p := range s {
		if _, err := bw.WriteString(p.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes s to path, truncating any existing file.
func WriteFile(path string, s Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mappings: %w", err)
	}
	if err := Write(f, s); err != nil {
		_ = f.Close()
		return fmt.Errorf("write mappings: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mappings: %w", err)
	}
	return nil
}

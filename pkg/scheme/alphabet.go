package scheme

import (
	"strings"
	"unicode/utf8"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/perm"
)

// Alphabet is an ordered set of distinct string symbols.
type Alphabet []string

// ParseAlphabet splits s into symbols. A string containing commas is split on
// commas, with surrounding whitespace trimmed; otherwise every rune is a
// symbol. "abc" and "a,b,c" give the same alphabet.
func ParseAlphabet(s string) (Alphabet, error) {
	var symbols []string
	if strings.Contains(s, ",") {
		for _, part := range strings.Split(s, ",") {
			symbols = append(symbols, strings.TrimSpace(part))
		}
	} else {
		symbols = make([]string, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			symbols = append(symbols, string(r))
		}
	}

	for _, sym := range symbols {
		if err := perrors.ValidateSymbol(sym); err != nil {
			return nil, err
		}
	}
	if err := perrors.ValidateAlphabet(symbols); err != nil {
		return nil, err
	}
	return Alphabet(symbols), nil
}

// Size returns the number of symbols.
func (a Alphabet) Size() int { return len(a) }

// Compact reports whether every symbol is a single rune, in which case words
// can be written without separators.
func (a Alphabet) Compact() bool {
	for _, s := range a {
		if utf8.RuneCountInString(s) != 1 {
			return false
		}
	}
	return true
}

// Split parses a word written over the alphabet: comma separated when it
// contains commas or the alphabet is not compact, one rune per symbol
// otherwise.
func (a Alphabet) Split(word string) []string {
	if word == "" {
		return []string{}
	}
	if strings.Contains(word, ",") || !a.Compact() {
		parts := strings.Split(word, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, string(r))
	}
	return out
}

// Indices maps a word to alphabet indices.
func (a Alphabet) Indices(word string) ([]int, error) {
	return perm.Indices(a.Split(word), []string(a))
}

// Symbols maps indices back to symbols.
func (a Alphabet) Symbols(indices []int) []string {
	return perm.Apply(indices, []string(a))
}

// Format writes indices as a word, without separators for a compact alphabet
// and comma separated otherwise.
func (a Alphabet) Format(indices []int) string {
	sep := ""
	if !a.Compact() {
		sep = ","
	}
	return strings.Join(a.Symbols(indices), sep)
}

// String returns the alphabet in the form accepted by ParseAlphabet.
func (a Alphabet) String() string {
	if a.Compact() {
		return strings.Join(a, "")
	}
	return strings.Join(a, ",")
}

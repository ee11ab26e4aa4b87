// Package moderation masks banned words in posted text.
// Matching is case, accent and leet speak insensitive, so "M3rd@" still
// hits the wordlist; surrounding spelling and punctuation are preserved.
package moderation

import (
	"bufio"
	"strings"
	"unicode"

	"sala-api/errors"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Filter struct {
	machine *goahocorasick.Machine
	mask    rune
}

// NewFilter builds the Aho-Corasick automaton over the folded word list.
// The list must not be empty; a filterless room simply skips construction.
func NewFilter(words []string, mask rune) (*Filter, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		folded := foldRunes([]rune(word))
		if len(folded) == 0 {
			continue
		}
		patterns = append(patterns, folded)
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyWords
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Filter{machine: machine, mask: mask}, nil
}

// Apply replaces every banned span of text with the mask rune. Positions
// are tracked through folding so the mask lands on the original runes.
func (f *Filter) Apply(text string) string {
	folded, origAt := fold(text)
	if len(folded) == 0 {
		return text
	}

	spans := f.machine.MultiPatternSearch(folded, false)
	if len(spans) == 0 {
		return text
	}

	out := []rune(text)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origAt) {
			continue
		}
		for i := origAt[start]; i <= origAt[end-1]; i++ {
			out[i] = f.mask
		}
	}
	return string(out)
}

// fold lowercases text, strips pt-BR diacritics and drops everything that
// is not a letter or digit. origAt maps each folded rune back to its index
// in the original text.
func fold(text string) ([]rune, []int) {
	origRunes := []rune(text)
	folded := make([]rune, 0, len(origRunes))
	origAt := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := foldRune(r)
		if !unicode.IsLetter(clean) && !unicode.IsNumber(clean) {
			continue
		}
		folded = append(folded, clean)
		origAt = append(origAt, i)
	}
	return folded, origAt
}

func foldRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := foldRune(r)
		if !unicode.IsLetter(clean) && !unicode.IsNumber(clean) {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// accentFold covers the diacritics of Brazilian Portuguese; anything
// outside the table passes through unchanged.
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a',
	'é': 'e', 'ê': 'e',
	'í': 'i',
	'ó': 'o', 'ô': 'o', 'õ': 'o',
	'ú': 'u', 'ü': 'u',
	'ç': 'c',
}

// foldRune lowercases r, strips diacritics and maps common leet speak
// substitutions back to their plain letter.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if folded, ok := accentFold[r]; ok {
		return folded
	}
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// ParseWords splits a newline or comma separated word list, ignoring
// blanks and '#' comment lines.
func ParseWords(raw string) []string {
	var words []string
	scanner := bufio.NewScanner(strings.NewReader(strings.ReplaceAll(raw, ",", "\n")))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words
}

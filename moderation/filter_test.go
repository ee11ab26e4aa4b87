package moderation

import (
	"testing"

	"sala-api/errors"

	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// TestFilter_Apply
// The dictionary uses specific words to avoid partial collisions
func TestFilter_Apply(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"merda", "porra", "caralho"}
	filter, err := NewFilter(dictionary, replacementChar)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "Que merda é essa",
			expected: "Que ***** é essa",
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "merda merda merda",
			expected: "***** ***** *****",
		},
		{
			name: "Leet speak and internal punctuation",
			// m (index 4) . 3 . r . d . 4 (index 12) -> 9 characters
			input:    "Que m.3.r.d.4 !",
			expected: "Que ********* !",
		},
		{
			name:     "Uppercase and accents",
			input:    "MÉRDA",
			expected: "*****",
		},
		{
			name:     "Accent folding inside a sentence",
			input:    "isso é uma pôrra",
			expected: "isso é uma *****",
		},
		{
			name:     "Word adjacent to trailing punctuation",
			input:    "eu disse porra, de novo",
			expected: "eu disse *****, de novo",
		},
		{
			name:     "Nothing to censor",
			input:    "bom dia pessoal",
			expected: "bom dia pessoal",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, filter.Apply(tt.input), "test=%s", tt.name)
		})
	}
}

func TestFilter_CornerCases(t *testing.T) {
	req := require.New(t)

	// Given noise entries mixed into the dictionary
	dictionary := []string{"...", ",,,", "", "merda"}
	filter, err := NewFilter(dictionary, replacementChar)
	req.NoError(err)

	// Then the sentence is censored
	req.Equal("a ***** passou", filter.Apply("a merda passou"))

	// Then real noise is uncensored
	req.Equal("opa ...", filter.Apply("opa ..."))
}

func TestNewFilter_EmptyWords(t *testing.T) {
	req := require.New(t)

	_, err := NewFilter([]string{"...", ""}, replacementChar)
	req.ErrorIs(err, errors.ErrEmptyWords)
}

func TestParseWords(t *testing.T) {
	req := require.New(t)

	words := ParseWords("merda, porra\n# comentário\n\n caralho ")
	req.Equal([]string{"merda", "porra", "caralho"}, words)
}

func TestEmbeddedWords(t *testing.T) {
	req := require.New(t)

	words, err := EmbeddedWords()
	req.NoError(err)
	req.NotEmpty(words)
	req.Contains(words, "merda")
}

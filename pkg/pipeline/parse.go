package pipeline

import (
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
)

// Load reads a word list from path and applies MaxWords.
func Load(path string, opts Options) ([]cloud.Word, error) {
	words, err := wcio.ImportWords(path)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return Limit(words, opts.MaxWords), nil
}

// Read reads a word list from r in the given format and applies MaxWords.
func Read(r io.Reader, format wcio.Format, opts Options) ([]cloud.Word, error) {
	words, err := wcio.ReadWords(r, format)
	if err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return Limit(words, opts.MaxWords), nil
}

// Limit keeps the n highest-valued words, preserving input order among
// equal values. n <= 0 keeps all words. The input slice is not modified.
func Limit(words []cloud.Word, n int) []cloud.Word {
	if n <= 0 || len(words) <= n {
		return words
	}
	out := slices.Clone(words)
	slices.SortStableFunc(out, func(a, b cloud.Word) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
	return out[:n]
}

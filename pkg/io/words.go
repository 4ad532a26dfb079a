package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Format is a word list encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "txt", "":
		return FormatText, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown word list format %q (use json or text)", s)
}

// FormatFromPath returns FormatJSON for .json files and FormatText otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

type word struct {
	Text  string         `json:"text"`
	Value *float64       `json:"value,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// ReadWords decodes a word list from r. ReadWords does not close r.
func ReadWords(r io.Reader, format Format) ([]cloud.Word, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatText, "":
		return readText(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown word list format %q", format)
}

// ImportWords reads the word list file at path.
func ImportWords(path string) ([]cloud.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := ReadWords(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

func readJSON(r io.Reader) ([]cloud.Word, error) {
	var data []word
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode word list")
	}

	words := make([]cloud.Word, len(data))
	for i, w := range data {
		v := 1.0
		if w.Value != nil {
			v = *w.Value
		}
		if err := checkValue(v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWord, err, "word %d (%q)", i, w.Text)
		}
		words[i] = cloud.Word{Text: w.Text, Value: v, Meta: w.Meta}
	}
	return words, nil
}

func readText(r io.Reader) ([]cloud.Word, error) {
	var words []cloud.Word
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		fields := strings.Fields(s)
		text, v := s, 1.0
		if n := len(fields); n > 1 {
			if f, err := strconv.ParseFloat(fields[n-1], 64); err == nil {
				text, v = strings.Join(fields[:n-1], " "), f
			}
		}
		if err := checkValue(v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWord, err, "line %d (%q)", line, text)
		}
		words = append(words, cloud.Word{Text: text, Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("value must be a finite non-negative number, got %v", v)
	}
	return nil
}

// WriteWords encodes words as a JSON array.
func WriteWords(words []cloud.Word, w io.Writer) error {
	out := make([]word, len(words))
	for i, wd := range words {
		v := wd.Value
		out[i] = word{Text: wd.Text, Value: &v, Meta: wd.Meta}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportWords writes words as JSON to the file at path.
func ExportWords(words []cloud.Word, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteWords(words, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package fonts provides the embedded font families used for rasterization.
//
// The fonts are the Go font family shipped with golang.org/x/image, compiled
// into the binary so layouts do not depend on system fonts. CSS-style generic
// family names ("serif", "sans-serif", "monospace") map onto the closest Go
// family, so word lists written for a browser still rasterize.
package fonts

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// DefaultFamily is used when a word does not name a font.
const DefaultFamily = "serif"

// Font style and weight keywords.
const (
	StyleNormal  = "normal"
	StyleItalic  = "italic"
	StyleOblique = "oblique"

	WeightNormal = "normal"
	WeightMedium = "medium"
	WeightBold   = "bold"
)

type weight int

const (
	regular weight = iota
	medium
	bold
)

// variants holds the TTF data of one family, indexed by [italic][weight].
type variants [2][3][]byte

var families = map[string]*variants{
	"go": {
		{goregular.TTF, gomedium.TTF, gobold.TTF},
		{goitalic.TTF, gomediumitalic.TTF, gobolditalic.TTF},
	},
	"go mono": {
		{gomono.TTF, gomono.TTF, gomonobold.TTF},
		{gomonoitalic.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
	},
	"go smallcaps": {
		{gosmallcaps.TTF, gosmallcaps.TTF, gosmallcaps.TTF},
		{gosmallcapsitalic.TTF, gosmallcapsitalic.TTF, gosmallcapsitalic.TTF},
	},
}

var aliases = map[string]string{
	"serif":      "go",
	"sans-serif": "go",
	"system-ui":  "go",
	"impact":     "go",
	"monospace":  "go mono",
	"gomono":     "go mono",
	"smallcaps":  "go smallcaps",
}

var (
	mu     sync.Mutex
	parsed = map[*byte]*opentype.Font{}
)

func canonical(family string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(family))
	name = strings.Trim(name, `"'`)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	_, ok := families[name]
	return name, ok
}

// Has reports whether family names a known font family or alias.
func Has(family string) bool {
	_, ok := canonical(family)
	return ok
}

// Families returns the known family names and aliases in sorted order.
func Families() []string {
	names := make([]string, 0, len(families)+len(aliases))
	for name := range families {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidStyle reports whether style is a recognised font style.
func ValidStyle(style string) bool {
	switch strings.ToLower(style) {
	case "", StyleNormal, StyleItalic, StyleOblique:
		return true
	}
	return false
}

// ValidWeight reports whether w is a keyword or a CSS numeric weight.
func ValidWeight(w string) bool {
	_, ok := parseWeight(w)
	return ok
}

func parseWeight(w string) (weight, bool) {
	switch strings.ToLower(w) {
	case "", WeightNormal, "regular", "lighter":
		return regular, true
	case WeightMedium:
		return medium, true
	case WeightBold, "bolder":
		return bold, true
	}
	n, err := strconv.Atoi(w)
	if err != nil || n < 1 || n > 1000 {
		return regular, false
	}
	switch {
	case n >= 600:
		return bold, true
	case n >= 500:
		return medium, true
	}
	return regular, true
}

// Lookup returns the parsed font for family, style and weight.
// Parsed fonts are shared and safe for concurrent use.
func Lookup(family, style, w string) (*opentype.Font, error) {
	name, ok := canonical(family)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFont, "unknown font family %q", family)
	}
	if !ValidStyle(style) {
		return nil, errors.New(errors.ErrCodeInvalidFont, "unknown font style %q", style)
	}
	wt, ok := parseWeight(w)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFont, "unknown font weight %q", w)
	}

	italic := 0
	if s := strings.ToLower(style); s == StyleItalic || s == StyleOblique {
		italic = 1
	}
	data := families[name][italic][wt]

	mu.Lock()
	defer mu.Unlock()
	key := &data[0]
	if f, ok := parsed[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %s", name)
	}
	parsed[key] = f
	return f, nil
}

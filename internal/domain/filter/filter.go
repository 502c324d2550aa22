// Package filter implements the kindness check that runs before sentiment scoring.
package filter

import (
	"strings"
)

// DefaultWords is the stock list of blocked terms.
var DefaultWords = []string{"hate", "stupid", "idiot", "dumb", "shut up"} //nolint:gochecknoglobals // read-only default list

// Filter reports whether text contains a blocked term.
type Filter interface {
	// Contains reports whether any blocked term occurs in text.
	Contains(text string) bool

	// Match returns the first blocked term found in text.
	Match(text string) (string, bool)

	// Words returns a copy of the blocked terms.
	Words() []string
}

// substringFilter matches blocked terms anywhere in the lowercased text,
// including inside longer words ("hateful" trips "hate").
type substringFilter struct {
	words []string
}

// New builds a Filter from the default list unless WithWords overrides it.
func New(opts ...Option) Filter {
	f := &substringFilter{}
	f.words = normalize(DefaultWords)

	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *substringFilter) Contains(text string) bool {
	_, ok := f.Match(text)
	return ok
}

func (f *substringFilter) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			return w, true
		}
	}
	return "", false
}

func (f *substringFilter) Words() []string {
	out := make([]string, len(f.words))
	copy(out, f.words)
	return out
}

// normalize lowercases, trims and drops blank or duplicate entries, keeping order.
func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

package sentiment

import "strings"

// Option applies a configuration option to the LexiconAnalyzer.
type Option func(*LexiconAnalyzer)

// WithLexicon merges extra word polarities over the built-in lexicon.
// Values are clamped to [-1, 1]; blank keys are ignored.
func WithLexicon(words map[string]float64) Option {
	return func(a *LexiconAnalyzer) {
		for w, p := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			switch {
			case p > 1:
				p = 1
			case p < -1:
				p = -1
			}
			a.words[w] = p
		}
	}
}

// WithIntensifier registers a word that scales the next scored word by factor.
func WithIntensifier(word string, factor float64) Option {
	return func(a *LexiconAnalyzer) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" && factor > 0 {
			a.intensifiers[word] = factor
		}
	}
}

// WithNegations registers extra negation words.
func WithNegations(words ...string) Option {
	return func(a *LexiconAnalyzer) {
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				a.negations[w] = struct{}{}
			}
		}
	}
}

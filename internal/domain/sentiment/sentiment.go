// Package sentiment defines the contract for turning a sentence into a polarity
// score and ships a lexicon-based implementation.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/okian/mood2emoji/internal/domain/mood"
)

// Default modifier weights.
const (
	negationFactor = -0.5
)

// ErrAnalyze wraps failures coming out of an Analyzer.
var ErrAnalyze = errors.New("sentiment analysis failed")

// Analyzer computes a polarity score in [-1, 1] for text.
type Analyzer interface {
	// Polarity scores text, honoring ctx for cancellation.
	Polarity(ctx context.Context, text string) (float64, error)
}

// AnalyzerFunc adapts a plain function to Analyzer.
type AnalyzerFunc func(ctx context.Context, text string) (float64, error)

// Polarity calls f.
func (f AnalyzerFunc) Polarity(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// LexiconAnalyzer scores text by averaging the polarity of the lexicon words it
// contains. Intensifiers scale the next scored word and negations flip and halve
// it. Modifiers do not carry across sentence boundaries.
type LexiconAnalyzer struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// NewLexiconAnalyzer creates an analyzer over the built-in lexicon.
func NewLexiconAnalyzer(opts ...Option) *LexiconAnalyzer {
	a := &LexiconAnalyzer{
		words:        copyWeights(defaultLexicon),
		intensifiers: copyWeights(defaultIntensifiers),
		negations:    make(map[string]struct{}, len(defaultNegations)),
	}
	for _, n := range defaultNegations {
		a.negations[n] = struct{}{}
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Polarity implements Analyzer.
func (a *LexiconAnalyzer) Polarity(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAnalyze, err)
	}

	var sum float64
	var n int
	for _, sentence := range splitSentences(text) {
		scale := 1.0
		for _, tok := range tokenize(sentence) {
			if _, ok := a.negations[tok]; ok {
				scale *= negationFactor
				continue
			}
			if f, ok := a.intensifiers[tok]; ok {
				scale *= f
				continue
			}
			if p, ok := a.words[tok]; ok {
				sum += mood.Clamp(p * scale)
				n++
				scale = 1.0
			}
		}
	}
	if n == 0 {
		return 0, nil
	}
	return mood.Clamp(sum / float64(n)), nil
}

// Assessment is one scored word, used to explain a score in teacher mode.
type Assessment struct {
	Word     string  `json:"word"`
	Polarity float64 `json:"polarity"`
}

// Explain returns the per-word assessments that make up the score of text.
func (a *LexiconAnalyzer) Explain(text string) []Assessment {
	var out []Assessment
	for _, sentence := range splitSentences(text) {
		scale := 1.0
		var prefix []string
		for _, tok := range tokenize(sentence) {
			if _, ok := a.negations[tok]; ok {
				scale *= negationFactor
				prefix = append(prefix, tok)
				continue
			}
			if f, ok := a.intensifiers[tok]; ok {
				scale *= f
				prefix = append(prefix, tok)
				continue
			}
			if p, ok := a.words[tok]; ok {
				out = append(out, Assessment{
					Word:     strings.Join(append(prefix, tok), " "),
					Polarity: mood.Clamp(p * scale),
				})
				scale = 1.0
				prefix = prefix[:0]
			}
		}
	}
	return out
}

// splitSentences breaks text on terminal punctuation.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';'
	})
}

// tokenize lowercases and splits on anything that is not a letter, digit or
// apostrophe. Curly apostrophes are folded to ASCII.
func tokenize(sentence string) []string {
	sentence = strings.ReplaceAll(strings.ToLower(sentence), "’", "'")
	fields := strings.FieldsFunc(sentence, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func copyWeights(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

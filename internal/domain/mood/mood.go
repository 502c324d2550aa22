// Package mood maps polarity scores onto the three emoji categories shown to users.
package mood

import (
	"errors"
	"math"
)

// Default classification thresholds.
const (
	DefaultPositiveThreshold = 0.1
	DefaultNegativeThreshold = -0.1

	minPolarity = -1.0
	maxPolarity = 1.0
)

// Emoji shown for each outcome.
const (
	EmojiHappy   = "😀"
	EmojiSad     = "😞"
	EmojiNeutral = "😐"
)

// Canned explanations.
const (
	ExplainHappy    = "Sounds happy and positive!"
	ExplainSad      = "Sounds a bit sad or negative."
	ExplainNeutral  = "Sounds neutral or calm."
	ExplainEmpty    = "Please type something!"
	ExplainFiltered = "Let's keep our words kind and respectful!"
)

// ErrInvalidThresholds is returned when the negative threshold exceeds the positive one
// or either falls outside [-1, 1].
var ErrInvalidThresholds = errors.New("invalid mood thresholds")

// Category is the coarse mood bucket a polarity falls into.
type Category string

// Mood categories.
const (
	Happy   Category = "happy"
	Sad     Category = "sad"
	Neutral Category = "neutral"
)

// Reason records which branch of the pipeline produced a Result.
type Reason string

// Pipeline branches.
const (
	ReasonEmpty    Reason = "empty"
	ReasonFiltered Reason = "filtered"
	ReasonScored   Reason = "scored"
)

// Result is what the user sees for one sentence.
type Result struct {
	Emoji       string   `json:"emoji"`
	Explanation string   `json:"explanation"`
	Polarity    float64  `json:"polarity"`
	Category    Category `json:"category"`
	Reason      Reason   `json:"reason"`
}

// Thresholds holds the strict cut-offs between categories.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds returns the stock ±0.1 band.
func DefaultThresholds() Thresholds {
	return Thresholds{Positive: DefaultPositiveThreshold, Negative: DefaultNegativeThreshold}
}

// Validate checks Negative <= Positive and both lie inside the polarity range.
func (t Thresholds) Validate() error {
	switch {
	case math.IsNaN(t.Positive) || math.IsNaN(t.Negative):
		return ErrInvalidThresholds
	case t.Positive < minPolarity || t.Positive > maxPolarity:
		return ErrInvalidThresholds
	case t.Negative < minPolarity || t.Negative > maxPolarity:
		return ErrInvalidThresholds
	case t.Negative > t.Positive:
		return ErrInvalidThresholds
	}
	return nil
}

// Classify buckets a polarity. Both comparisons are strict, so a score sitting
// exactly on a threshold is neutral.
func (t Thresholds) Classify(polarity float64) Category {
	switch {
	case polarity > t.Positive:
		return Happy
	case polarity < t.Negative:
		return Sad
	default:
		return Neutral
	}
}

// Scored builds the Result for an analyzed sentence.
func (t Thresholds) Scored(polarity float64) Result {
	p := Clamp(polarity)
	c := t.Classify(p)
	return Result{
		Emoji:       c.Emoji(),
		Explanation: c.Explanation(),
		Polarity:    p,
		Category:    c,
		Reason:      ReasonScored,
	}
}

// Empty is the Result for blank input.
func Empty() Result {
	return Result{Emoji: EmojiNeutral, Explanation: ExplainEmpty, Category: Neutral, Reason: ReasonEmpty}
}

// Filtered is the Result for input that tripped the word filter.
func Filtered() Result {
	return Result{Emoji: EmojiNeutral, Explanation: ExplainFiltered, Category: Neutral, Reason: ReasonFiltered}
}

// Emoji returns the emoji for c.
func (c Category) Emoji() string {
	switch c {
	case Happy:
		return EmojiHappy
	case Sad:
		return EmojiSad
	default:
		return EmojiNeutral
	}
}

// Explanation returns the canned explanation for c.
func (c Category) Explanation() string {
	switch c {
	case Happy:
		return ExplainHappy
	case Sad:
		return ExplainSad
	default:
		return ExplainNeutral
	}
}

// Clamp limits p to [-1, 1]. NaN becomes 0.
func Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(minPolarity, math.Min(maxPolarity, p))
}

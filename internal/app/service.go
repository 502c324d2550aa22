// Package service wires the word filter, the sentiment analyzer and the mood
// thresholds into the detection pipeline used by the HTTP adapters and the CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/okian/mood2emoji/internal/domain/filter"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/okian/mood2emoji/pkg/logger"
	"github.com/okian/mood2emoji/pkg/metrics"
)

const (
	defaultMaxChars           = 200
	nanosecondsPerMillisecond = 1e6
)

// explainer is implemented by analyzers that can break a score down per word.
type explainer interface {
	Explain(text string) []sentiment.Assessment
}

// filterBox lets an interface value live behind an atomic.Pointer.
type filterBox struct {
	filter.Filter
}

// Service runs the detection pipeline. It is safe for concurrent use; the
// filter and thresholds may be swapped while requests are in flight.
type Service struct {
	analyzer   sentiment.Analyzer
	filter     atomic.Pointer[filterBox]
	thresholds atomic.Pointer[mood.Thresholds]
	maxChars   int

	stats counters

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAnalyzer replaces the built-in lexicon analyzer.
func WithAnalyzer(a sentiment.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithFilter replaces the default word filter.
func WithFilter(f filter.Filter) Option {
	return func(s *Service) {
		if f != nil {
			s.filter.Store(&filterBox{f})
		}
	}
}

// WithThresholds sets the category cut-offs. Invalid thresholds are ignored.
func WithThresholds(t mood.Thresholds) Option {
	return func(s *Service) {
		if t.Validate() == nil {
			s.thresholds.Store(&t)
		}
	}
}

// WithMaxChars caps the accepted sentence length in characters.
func WithMaxChars(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// New constructs a Service with the default filter, lexicon and thresholds.
func New(opts ...Option) *Service {
	s := &Service{
		analyzer: sentiment.NewLexiconAnalyzer(),
		maxChars: defaultMaxChars,
		logger:   logger.Nop(),
	}
	s.filter.Store(&filterBox{filter.New()})
	t := mood.DefaultThresholds()
	s.thresholds.Store(&t)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detect runs one sentence through the pipeline: blank input, then the word
// filter, then polarity scoring. The analyzer is never called for blank or
// filtered input.
func (s *Service) Detect(ctx context.Context, text string) (mood.Result, error) {
	const op = "service.detect"

	if n := utf8.RuneCountInString(text); n > s.maxChars {
		s.stats.tooLong.Add(1)
		metrics.RecordRejectedTooLong()
		return mood.Result{}, fmt.Errorf("%s: %w: %d characters, limit %d", op, ErrTooLong, n, s.maxChars)
	}

	if strings.TrimSpace(text) == "" {
		return s.record(ctx, mood.Empty()), nil
	}

	if term, ok := s.Filter().Match(text); ok {
		metrics.RecordFilterHit(term)
		s.logger.Debug(ctx, "sentence filtered", logger.String("term", term))
		return s.record(ctx, mood.Filtered()), nil
	}

	start := time.Now()
	polarity, err := s.analyzer.Polarity(ctx, text)
	metrics.RecordAnalyzerLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	if err != nil {
		s.stats.errors.Add(1)
		metrics.RecordAnalyzerError()
		s.logger.Error(ctx, "polarity computation failed", logger.Error(err))
		return mood.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	res := s.Thresholds().Scored(polarity)
	metrics.ObservePolarity(res.Polarity)
	return s.record(ctx, res), nil
}

// Explain returns the per-word breakdown of text when the analyzer supports it.
func (s *Service) Explain(text string) []sentiment.Assessment {
	if e, ok := s.analyzer.(explainer); ok {
		return e.Explain(text)
	}
	return nil
}

// Filter returns the active word filter.
func (s *Service) Filter() filter.Filter {
	return s.filter.Load().Filter
}

// SetFilter swaps the active word filter.
func (s *Service) SetFilter(f filter.Filter) {
	if f == nil {
		return
	}
	s.filter.Store(&filterBox{f})
}

// Thresholds returns the active category cut-offs.
func (s *Service) Thresholds() mood.Thresholds {
	return *s.thresholds.Load()
}

// SetThresholds swaps the category cut-offs after validating them.
func (s *Service) SetThresholds(t mood.Thresholds) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("service.set_thresholds: %w", err)
	}
	s.thresholds.Store(&t)
	return nil
}

// MaxChars returns the accepted sentence length in characters.
func (s *Service) MaxChars() int {
	return s.maxChars
}

func (s *Service) record(ctx context.Context, r mood.Result) mood.Result {
	s.stats.add(r)
	metrics.RecordDetection(string(r.Category), string(r.Reason))
	s.logger.Debug(ctx, "mood detected",
		logger.String("category", string(r.Category)),
		logger.String("reason", string(r.Reason)),
		logger.Float64("polarity", r.Polarity),
	)
	return r
}

// Reconfigure swaps the filter list and thresholds together. The filter is left
// unchanged when the thresholds are rejected.
func (s *Service) Reconfigure(ctx context.Context, words []string, t mood.Thresholds) error {
	if err := s.SetThresholds(t); err != nil {
		s.logger.Warn(ctx, "rejected reconfiguration", logger.Error(err))
		return err
	}
	s.SetFilter(filter.New(filter.WithWords(words)))
	s.logger.Info(ctx, "service reconfigured",
		logger.Int("bad_words", len(s.Filter().Words())),
		logger.Float64("positive_threshold", t.Positive),
		logger.Float64("negative_threshold", t.Negative),
	)
	return nil
}

// Package loadcheck drives a running mood2emoji server with concurrent
// detections and checks every answer against the expected mood.
package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/pkg/logger"
)

// Run executes the complete load check.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Requests <= 0 || config.Workers <= 0 {
		return nil, fmt.Errorf("%w: requests and workers must be positive", ErrConfig)
	}
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.Timeout)

	logger.Get().Info(ctx, "starting mood2emoji load check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return stats, err
	}

	// Step 2: Snapshot counters
	before, err := client.stats(ctx, config.BaseURL)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrStats, err)
	}

	// Step 3: Generate requests
	reqs, err := generateRequests(ctx, config.Requests, DefaultSamples, stats)
	if err != nil {
		return stats, fmt.Errorf("request generation failed: %w", err)
	}

	// Step 4: Submit concurrently and verify each answer
	submit(ctx, client, config, reqs, stats)

	// Step 5: Verify the counters moved by exactly the answered requests
	after, err := client.stats(ctx, config.BaseURL)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrStats, err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	return stats, verify(stats, before, after)
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submit sends requests through a worker pool.
func submit(ctx context.Context, client *HTTPClient, config *Config, reqs []Request, stats *Stats) {
	var submitted, matched, mismatched, failed atomic.Int64

	ch := make(chan Request, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range ch {
				submitted.Add(1)
				res, err := client.detect(ctx, config.BaseURL, r)
				switch {
				case err != nil:
					failed.Add(1)
					if config.Verbose {
						logger.Get().Warn(ctx, "request failed", logger.String("request_id", r.ID), logger.Error(err))
					}
				case res.Category != r.Sample.Category || res.Reason != r.Sample.Reason:
					mismatched.Add(1)
					if config.Verbose {
						logger.Get().Warn(ctx, "unexpected mood",
							logger.String("request_id", r.ID),
							logger.String("text", r.Sample.Text),
							logger.String("want", string(r.Sample.Category)+"/"+string(r.Sample.Reason)),
							logger.String("got", string(res.Category)+"/"+string(res.Reason)),
							logger.Float64("polarity", res.Polarity))
					}
				default:
					matched.Add(1)
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, r := range reqs {
			select {
			case <-ctx.Done():
				return
			case ch <- r:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Matched = int(matched.Load())
	stats.Mismatched = int(mismatched.Load())
	stats.Failed = int(failed.Load())
}

// verify checks the answers and the server counters. The counter check
// assumes nobody else is using the server during the run.
func verify(stats *Stats, before, after app.Stats) error {
	var errs []error
	if stats.Mismatched > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d answers", ErrMismatch, stats.Mismatched, stats.Submitted))
	}
	answered := int64(stats.Matched + stats.Mismatched)
	if delta := after.Total - before.Total; delta != answered {
		errs = append(errs, fmt.Errorf("%w: total moved by %d, %d answered", ErrStats, delta, answered))
	}
	return errors.Join(errs...)
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var matchRate, perSecond float64
	if stats.Submitted > 0 {
		matchRate = float64(stats.Matched) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("matchRate", matchRate),
		logger.Float64("requestsPerSecond", perSecond))
}

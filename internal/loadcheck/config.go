package loadcheck

import (
	"time"

	"github.com/okian/mood2emoji/internal/domain/mood"
)

// Config holds configuration for a load check run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of sentences to submit
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every mismatch
}

// Sample is a sentence with the outcome the default configuration produces.
type Sample struct {
	Text     string        `json:"text"`
	Category mood.Category `json:"-"`
	Reason   mood.Reason   `json:"-"`
}

// Request is one submission, tagged with the request id sent to the service.
type Request struct {
	ID     string
	Sample Sample
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Matched    int
	Mismatched int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

package loadcheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/pkg/logger"
)

// DefaultSamples cover every branch of the pipeline under the default configuration.
var DefaultSamples = []Sample{
	{Text: "I love pizza!", Category: mood.Happy, Reason: mood.ReasonScored},
	{Text: "I aced my math test!", Category: mood.Happy, Reason: mood.ReasonScored},
	{Text: "Science class was amazing!", Category: mood.Happy, Reason: mood.ReasonScored},
	{Text: "This is terrible.", Category: mood.Sad, Reason: mood.ReasonScored},
	{Text: "I'm feeling down about the game.", Category: mood.Sad, Reason: mood.ReasonScored},
	{Text: "I feel okay.", Category: mood.Neutral, Reason: mood.ReasonScored},
	{Text: "The weather is okay today.", Category: mood.Neutral, Reason: mood.ReasonScored},
	{Text: "I don't know how I feel.", Category: mood.Neutral, Reason: mood.ReasonScored},
	{Text: "   ", Category: mood.Neutral, Reason: mood.ReasonEmpty},
	{Text: "Please shut up.", Category: mood.Neutral, Reason: mood.ReasonFiltered},
	{Text: "That was a dumb idea", Category: mood.Neutral, Reason: mood.ReasonFiltered},
}

// generateRequests picks n samples at random and gives each a request id.
func generateRequests(ctx context.Context, n int, samples []Sample, stats *Stats) ([]Request, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrConfig)
	}
	logger.Get().Info(ctx, "generating requests", logger.Int("count", n), logger.Int("samples", len(samples)))

	limit := big.NewInt(int64(len(samples)))
	reqs := make([]Request, n)
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("pick sample: %w", err)
		}
		reqs[i] = Request{ID: uuid.NewString(), Sample: samples[idx.Int64()]}
	}

	stats.Generated = len(reqs)
	return reqs, nil
}

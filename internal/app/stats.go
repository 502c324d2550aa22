package service

import (
	"sync/atomic"

	"github.com/okian/mood2emoji/internal/domain/mood"
)

// Stats is a snapshot of detection counts since the service was created.
type Stats struct {
	Total    int64 `json:"total"`
	Happy    int64 `json:"happy"`
	Sad      int64 `json:"sad"`
	Neutral  int64 `json:"neutral"`
	Empty    int64 `json:"empty"`
	Filtered int64 `json:"filtered"`
	TooLong  int64 `json:"too_long"`
	Errors   int64 `json:"errors"`
}

type counters struct {
	happy, sad, neutral atomic.Int64
	empty, filtered     atomic.Int64
	tooLong, errors     atomic.Int64
}

func (c *counters) add(r mood.Result) {
	switch r.Reason {
	case mood.ReasonEmpty:
		c.empty.Add(1)
		return
	case mood.ReasonFiltered:
		c.filtered.Add(1)
		return
	}
	switch r.Category {
	case mood.Happy:
		c.happy.Add(1)
	case mood.Sad:
		c.sad.Add(1)
	default:
		c.neutral.Add(1)
	}
}

// Stats returns current counters. Total counts every sentence that produced a
// Result, so rejected and failed sentences are excluded from it.
func (s *Service) Stats() Stats {
	st := Stats{
		Happy:    s.stats.happy.Load(),
		Sad:      s.stats.sad.Load(),
		Neutral:  s.stats.neutral.Load(),
		Empty:    s.stats.empty.Load(),
		Filtered: s.stats.filtered.Load(),
		TooLong:  s.stats.tooLong.Load(),
		Errors:   s.stats.errors.Load(),
	}
	st.Total = st.Happy + st.Sad + st.Neutral + st.Empty + st.Filtered
	return st
}

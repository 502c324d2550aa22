package loadcheck

import "errors"

// Error constants.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("unexpected mood")
	ErrStats     = errors.New("stats do not add up")
	ErrConfig    = errors.New("invalid load check config")
)

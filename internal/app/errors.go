package service

import "errors"

// ErrTooLong is returned when a sentence exceeds the character limit.
var ErrTooLong = errors.New("sentence too long")

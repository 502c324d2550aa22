package config

import "errors"

// Errors returned by Load, LoadFile and Watch.
var (
	// ErrInvalidConfig marks settings that parsed but break an invariant, such
	// as negative_threshold above positive_threshold. A watched reload carrying
	// it is rejected and the running settings stay in place.
	ErrInvalidConfig = errors.New("invalid mood2emoji config")
	// ErrLoadConfig marks a file or environment layer that could not be read.
	ErrLoadConfig = errors.New("load mood2emoji config")
)

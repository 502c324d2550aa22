package site

import "errors"

// Error constants.
var (
	ErrTeacherNotes = errors.New("teacher notes render failed")
	ErrRender       = errors.New("page render failed")
)

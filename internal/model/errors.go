package model

import "errors"

var (
	ErrUnsupportedEvent = errors.New("unsupported event")
	ErrMissingRange     = errors.New("the base and head commits are missing")
	ErrNotAhead         = errors.New("the head commit is not ahead of the base commit")
	ErrNoFiles          = errors.New("no files were found in the compare commits response")
)

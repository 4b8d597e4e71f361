package config

import "errors"

var (
	ErrMissingToken  = errors.New("input required and not supplied: token")
	ErrMissingFormat = errors.New("input required and not supplied: format")
)

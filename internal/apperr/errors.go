// Package apperr defines sentinel errors shared across Dagaz layers.
package apperr

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN is wrapped by every FEN parse failure.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrMoveNotFound reports move text that matches no legal move.
	ErrMoveNotFound = errors.New("move not found")
)

// FENError describes which FEN field failed to parse and why.
type FENError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	return fmt.Sprintf("invalid FEN %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FENError) Unwrap() error {
	return ErrInvalidFEN
}

func fenError(field, value, format string, args ...any) error {
	return &FENError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

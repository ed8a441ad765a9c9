package engine

import "errors"

// ErrNoMove is returned when the side to move has no legal move.
var ErrNoMove = errors.New("no legal move")

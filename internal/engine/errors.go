package engine

import (
	"errors"

	"github.com/dshills/revcalc/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the undo history is empty.
	// It is the same sentinel the history package returns, re-exported
	// so callers need not import history to match it.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNilOperation indicates Apply was called with a nil operation.
	ErrNilOperation = errors.New("nil operation")
)

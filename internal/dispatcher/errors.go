package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no handler is registered for a token.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrQuit signals that the user asked to leave the loop.
	ErrQuit = errors.New("dispatcher: quit requested")

	// ErrNoEngine indicates the dispatcher has no engine attached.
	ErrNoEngine = errors.New("dispatcher: no engine attached")
)

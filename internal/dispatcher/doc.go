// Package dispatcher routes command tokens to handlers and executes
// batches against the calculator engine.
//
// A registry maps each token ("increment", "undo", ...) to a Handler.
// Dispatch executes one token; DispatchBatch executes a token sequence
// strictly left to right, updating the engine between tokens so each
// token sees the effect of the previous one. Calculator activity is
// published on the event bus as it happens.
package dispatcher

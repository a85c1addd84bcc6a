// Package history provides the reversible operation type and the undo
// stack for the calculator engine.
//
// An Operation is a tagged variant over the calculator's command kinds.
// Applying an operation records the result value seen immediately before
// it ran (its prior value); undo restores that value. Operations are
// owned by the Stack from push until pop, and a popped operation is
// discarded permanently. Undo itself is never pushed, so there is no
// multi-level redo.
package history

// Package engine implements the calculator state machine: a single
// integer result plus a LIFO history of applied reversible operations.
//
// Applying a non-undo operation computes the new result, records the
// prior value on the operation, and pushes it onto history. Undo pops
// the newest history entry and restores its prior value; undo is never
// pushed, so it cannot itself be undone.
package engine

package engine

import (
	"sync"

	"github.com/dshills/revcalc/internal/engine/history"
)

// Engine is the calculator state machine. It owns the current result
// and the undo history; both are mutated only through Apply and Undo.
type Engine struct {
	mu      sync.Mutex
	result  int
	history *history.Stack
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxHistory bounds the undo history to n entries.
func WithMaxHistory(n int) Option {
	return func(e *Engine) {
		e.history = history.NewStack(n)
	}
}

// New creates an engine with the given initial result.
func New(initial int, opts ...Option) *Engine {
	e := &Engine{
		result:  initial,
		history: history.NewStack(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result returns the current result value.
func (e *Engine) Result() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Apply executes an operation against the current result and returns
// the new result. Non-undo operations capture their prior value and are
// pushed onto history before Apply returns, so each following command
// sees their effect. An undo operation is routed to Undo.
func (e *Engine) Apply(op *history.Operation) (int, error) {
	if op == nil {
		return e.Result(), ErrNilOperation
	}
	if op.Kind() == history.KindUndo {
		return e.Undo()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prior := e.result
	e.result = op.Eval(prior)
	op.MarkApplied(prior)
	e.history.Push(op)
	return e.result, nil
}

// Undo pops the most recent history entry and restores its prior value.
// On an empty history it returns ErrNothingToUndo and leaves the result
// unchanged. The popped entry is discarded permanently.
func (e *Engine) Undo() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	op, err := e.history.Pop()
	if err != nil {
		return e.result, err
	}
	e.result = op.Prior()
	return e.result, nil
}

// CanUndo reports whether an undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// UndoCount returns the number of undoable operations.
func (e *Engine) UndoCount() int {
	return e.history.Len()
}

// HistoryDescriptions returns descriptions of undoable operations,
// oldest first.
func (e *Engine) HistoryDescriptions() []string {
	return e.history.Descriptions()
}

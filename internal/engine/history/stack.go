package history

import (
	"errors"
	"sync"
)

// ErrNothingToUndo indicates the undo stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// DefaultMaxEntries is the stack depth used when none is configured.
const DefaultMaxEntries = 1000

// Stack holds applied operations eligible for undo, newest last.
// Only operations applied as normal actions are pushed; undo operations
// are never stored, and a popped operation is never reinserted.
type Stack struct {
	mu         sync.Mutex
	ops        []*Operation
	maxEntries int
}

// NewStack creates a stack bounded to maxEntries operations.
// Non-positive values fall back to DefaultMaxEntries.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{maxEntries: maxEntries}
}

// Push adds an applied operation to the stack. Undo operations are
// ignored. When the stack exceeds its bound, the oldest entries are
// dropped.
func (s *Stack) Push(op *Operation) {
	if op == nil || op.kind == KindUndo {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ops = append(s.ops, op)
	if len(s.ops) > s.maxEntries {
		excess := len(s.ops) - s.maxEntries
		s.ops = s.ops[excess:]
	}
}

// Pop removes and returns the most recently pushed operation.
// Returns ErrNothingToUndo when the stack is empty.
func (s *Stack) Pop() (*Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ops) == 0 {
		return nil, ErrNothingToUndo
	}

	op := s.ops[len(s.ops)-1]
	s.ops = s.ops[:len(s.ops)-1]
	return op, nil
}

// Peek returns the most recently pushed operation without removing it.
func (s *Stack) Peek() (*Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ops) == 0 {
		return nil, false
	}
	return s.ops[len(s.ops)-1], true
}

// Len returns the number of undoable operations.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ops)
}

// CanUndo reports whether at least one operation can be undone.
func (s *Stack) CanUndo() bool {
	return s.Len() > 0
}

// Clear removes all operations from the stack.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
}

// Descriptions returns the descriptions of undoable operations,
// oldest first.
func (s *Stack) Descriptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]string, len(s.ops))
	for i, op := range s.ops {
		result[i] = op.Description()
	}
	return result
}

// MaxEntries returns the configured stack bound.
func (s *Stack) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}

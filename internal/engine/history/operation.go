package history

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Kind identifies a calculator operation variant.
type Kind int

const (
	// KindIncrement adds one to the result.
	KindIncrement Kind = iota
	// KindDecrement subtracts one from the result.
	KindDecrement
	// KindDouble multiplies the result by two.
	KindDouble
	// KindRandomAdd adds a delta sampled at construction time.
	KindRandomAdd
	// KindUndo reverses the most recent non-undo operation.
	KindUndo
)

// Bounds for the RandomAdd delta, inclusive.
const (
	RandomAddMin = 1
	RandomAddMax = 10
)

// String returns the command-token name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncrement:
		return "increment"
	case KindDecrement:
		return "decrement"
	case KindDouble:
		return "double"
	case KindRandomAdd:
		return "random"
	case KindUndo:
		return "undo"
	default:
		return "unknown"
	}
}

// Operation is a single reversible calculator step.
// The prior value is captured when the engine applies the operation;
// it is the only mutable state an operation carries.
type Operation struct {
	kind    Kind
	delta   int // RandomAdd payload, fixed at construction
	prior   int
	applied bool
	created time.Time
}

// NewIncrement creates an increment operation.
func NewIncrement() *Operation {
	return &Operation{kind: KindIncrement, created: time.Now()}
}

// NewDecrement creates a decrement operation.
func NewDecrement() *Operation {
	return &Operation{kind: KindDecrement, created: time.Now()}
}

// NewDouble creates a doubling operation.
func NewDouble() *Operation {
	return &Operation{kind: KindDouble, created: time.Now()}
}

// NewRandomAdd creates a random-add operation. The delta is drawn from
// [RandomAddMin, RandomAddMax] once, here; it is never re-sampled, so
// undo after any number of intervening operations restores the exact
// pre-apply value.
func NewRandomAdd(rng *rand.Rand) *Operation {
	return &Operation{
		kind:    KindRandomAdd,
		delta:   rng.IntN(RandomAddMax-RandomAddMin+1) + RandomAddMin,
		created: time.Now(),
	}
}

// NewUndo creates an undo operation. Undo operations are never pushed
// onto the stack.
func NewUndo() *Operation {
	return &Operation{kind: KindUndo, created: time.Now()}
}

// Kind returns the operation's variant tag.
func (op *Operation) Kind() Kind {
	return op.kind
}

// Delta returns the sampled RandomAdd payload. Zero for other kinds.
func (op *Operation) Delta() int {
	return op.delta
}

// Eval computes the result of applying the operation to current.
// It is a pure function of (kind, payload, current); undo evaluates to
// current unchanged because reversal is the stack's job.
func (op *Operation) Eval(current int) int {
	switch op.kind {
	case KindIncrement:
		return current + 1
	case KindDecrement:
		return current - 1
	case KindDouble:
		return current * 2
	case KindRandomAdd:
		return current + op.delta
	default:
		return current
	}
}

// MarkApplied records the result value seen immediately before the
// operation ran. The engine calls this at apply time.
func (op *Operation) MarkApplied(prior int) {
	op.prior = prior
	op.applied = true
}

// Prior returns the result value this operation's undo restores.
func (op *Operation) Prior() int {
	return op.prior
}

// Applied reports whether the operation has been applied.
func (op *Operation) Applied() bool {
	return op.applied
}

// Description returns a human-readable description of the operation,
// used when listing undoable history.
func (op *Operation) Description() string {
	if op.kind == KindRandomAdd {
		return fmt.Sprintf("random (+%d)", op.delta)
	}
	return op.kind.String()
}

// CreatedAt returns when the operation was constructed.
func (op *Operation) CreatedAt() time.Time {
	return op.created
}

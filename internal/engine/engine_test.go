package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/dshills/revcalc/internal/engine/history"
)

func TestApplyIncrement(t *testing.T) {
	e := New(5)

	got, err := e.Apply(history.NewIncrement())
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got != 6 {
		t.Errorf("Apply() = %d, want 6", got)
	}
	if e.Result() != 6 {
		t.Errorf("Result() = %d, want 6", e.Result())
	}
}

func TestApplyNil(t *testing.T) {
	e := New(5)

	got, err := e.Apply(nil)
	if !errors.Is(err, ErrNilOperation) {
		t.Errorf("Apply(nil) error = %v, want ErrNilOperation", err)
	}
	if got != 5 {
		t.Errorf("Apply(nil) = %d, want 5 unchanged", got)
	}
}

// Sequences of increment/decrement/double must equal the pure fold of
// the same operations over the initial value.
func TestFoldLaw(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		ops     []func() *history.Operation
		want    int
	}{
		{
			name:    "increments",
			initial: 0,
			ops: []func() *history.Operation{
				history.NewIncrement, history.NewIncrement, history.NewIncrement,
			},
			want: 3,
		},
		{
			name:    "mixed",
			initial: 1,
			ops: []func() *history.Operation{
				history.NewIncrement, history.NewDouble, history.NewDecrement,
			},
			want: 3,
		},
		{
			name:    "doubles from negative",
			initial: -2,
			ops: []func() *history.Operation{
				history.NewDouble, history.NewDouble,
			},
			want: -8,
		},
		{
			name:    "decrement below zero",
			initial: 0,
			ops: []func() *history.Operation{
				history.NewDecrement, history.NewDecrement,
			},
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.initial)

			fold := tt.initial
			for _, makeOp := range tt.ops {
				op := makeOp()
				fold = op.Eval(fold)
				if _, err := e.Apply(op); err != nil {
					t.Fatalf("Apply() error: %v", err)
				}
			}

			if e.Result() != tt.want {
				t.Errorf("Result() = %d, want %d", e.Result(), tt.want)
			}
			if e.Result() != fold {
				t.Errorf("Result() = %d, fold = %d; must be equal", e.Result(), fold)
			}
		})
	}
}

// Undo immediately after any non-undo operation restores the exact
// prior value and removes the entry from history.
func TestUndoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	makers := []struct {
		name string
		make func() *history.Operation
	}{
		{"increment", history.NewIncrement},
		{"decrement", history.NewDecrement},
		{"double", history.NewDouble},
		{"random", func() *history.Operation { return history.NewRandomAdd(rng) }},
	}

	for _, m := range makers {
		t.Run(m.name, func(t *testing.T) {
			e := New(37)
			before := e.Result()

			if _, err := e.Apply(m.make()); err != nil {
				t.Fatalf("Apply() error: %v", err)
			}
			depth := e.UndoCount()

			got, err := e.Undo()
			if err != nil {
				t.Fatalf("Undo() error: %v", err)
			}
			if got != before {
				t.Errorf("Undo() = %d, want %d", got, before)
			}
			if e.UndoCount() != depth-1 {
				t.Errorf("UndoCount() = %d, want %d", e.UndoCount(), depth-1)
			}
		})
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	e := New(5)

	got, err := e.Undo()
	if !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if got != 5 {
		t.Errorf("Undo() = %d, want 5 unchanged", got)
	}
	if e.Result() != 5 {
		t.Errorf("Result() = %d, want 5 unchanged", e.Result())
	}
}

// A RandomAdd undo restores the pre-apply value no matter how many
// operations ran in between.
func TestRandomAddUndoAfterInterveningOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	e := New(10)

	before := e.Result()
	if _, err := e.Apply(history.NewRandomAdd(rng)); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := e.Apply(history.NewIncrement()); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}

	// Unwind the increments, then the random add.
	for i := 0; i < 5; i++ {
		if _, err := e.Undo(); err != nil {
			t.Fatalf("Undo() error: %v", err)
		}
	}
	got, err := e.Undo()
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if got != before {
		t.Errorf("Undo() = %d, want %d", got, before)
	}
}

// Scenario from the calculator's contract: initial 1, then
// increment, increment, increment, double, undo, undo.
func TestScenarioSequence(t *testing.T) {
	e := New(1)
	want := []int{2, 3, 4, 8, 4, 3}

	steps := []func() (int, error){
		func() (int, error) { return e.Apply(history.NewIncrement()) },
		func() (int, error) { return e.Apply(history.NewIncrement()) },
		func() (int, error) { return e.Apply(history.NewIncrement()) },
		func() (int, error) { return e.Apply(history.NewDouble()) },
		func() (int, error) { return e.Apply(history.NewUndo()) },
		func() (int, error) { return e.Undo() },
	}

	for i, step := range steps {
		got, err := step()
		if err != nil {
			t.Fatalf("step %d error: %v", i, err)
		}
		if got != want[i] {
			t.Errorf("step %d = %d, want %d", i, got, want[i])
		}
	}
}

func TestUndoNotPushed(t *testing.T) {
	e := New(1)

	if _, err := e.Apply(history.NewIncrement()); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if _, err := e.Apply(history.NewUndo()); err != nil {
		t.Fatalf("Apply(undo) error: %v", err)
	}

	// The undo consumed the only entry and must not have replaced it.
	if e.UndoCount() != 0 {
		t.Errorf("UndoCount() = %d, want 0", e.UndoCount())
	}
	if _, err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestWithMaxHistory(t *testing.T) {
	e := New(0, WithMaxHistory(2))

	for i := 0; i < 4; i++ {
		if _, err := e.Apply(history.NewIncrement()); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}

	if e.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", e.UndoCount())
	}
}

func TestHistoryDescriptions(t *testing.T) {
	e := New(0)
	if _, err := e.Apply(history.NewIncrement()); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if _, err := e.Apply(history.NewDouble()); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	descs := e.HistoryDescriptions()
	if len(descs) != 2 || descs[0] != "increment" || descs[1] != "double" {
		t.Errorf("HistoryDescriptions() = %v, want [increment double]", descs)
	}
}

package dispatcher

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/dshills/revcalc/internal/engine"
	"github.com/dshills/revcalc/internal/engine/history"
)

// Handler executes a single command token against the calculator.
type Handler interface {
	// Execute performs the command and returns its result.
	Execute(ctx *Context) (Result, error)

	// Description returns a human-readable description of the command.
	Description() string
}

// Context carries the state a handler may act on.
type Context struct {
	Engine *engine.Engine
	Out    io.Writer
	Token  string
}

// Result is the outcome of executing one token.
type Result struct {
	// Value is the engine result after the command ran.
	Value int

	// Kind tags which operation variant ran. Meaningless when Quiet
	// is set (help, history, quit produce no result value).
	Kind history.Kind

	// Prior is the result value before the command ran. Only meaningful
	// for applied operations.
	Prior int

	// Quiet suppresses the per-token result line; the handler produced
	// its own output (or none).
	Quiet bool
}

// operationHandler applies one calculator operation kind.
type operationHandler struct {
	desc string
	make func() *history.Operation
}

func (h *operationHandler) Execute(ctx *Context) (Result, error) {
	op := h.make()
	prior := ctx.Engine.Result()
	value, err := ctx.Engine.Apply(op)
	if err != nil {
		return Result{Value: value}, err
	}
	return Result{Value: value, Kind: op.Kind(), Prior: prior}, nil
}

func (h *operationHandler) Description() string { return h.desc }

// undoHandler reverses the most recent operation.
type undoHandler struct{}

func (h *undoHandler) Execute(ctx *Context) (Result, error) {
	value, err := ctx.Engine.Undo()
	if err != nil {
		return Result{Value: value, Kind: history.KindUndo}, err
	}
	return Result{Value: value, Kind: history.KindUndo}, nil
}

func (h *undoHandler) Description() string { return "undo the most recent operation" }

// quitHandler ends the interactive loop.
type quitHandler struct{}

func (h *quitHandler) Execute(*Context) (Result, error) {
	return Result{Quiet: true}, ErrQuit
}

func (h *quitHandler) Description() string { return "exit the calculator" }

// historyHandler lists the operations eligible for undo.
type historyHandler struct{}

func (h *historyHandler) Execute(ctx *Context) (Result, error) {
	descs := ctx.Engine.HistoryDescriptions()
	if len(descs) == 0 {
		fmt.Fprintln(ctx.Out, "History is empty.")
		return Result{Quiet: true}, nil
	}
	for i := len(descs) - 1; i >= 0; i-- {
		fmt.Fprintf(ctx.Out, "%3d. %s\n", len(descs)-i, descs[i])
	}
	return Result{Quiet: true}, nil
}

func (h *historyHandler) Description() string { return "list undoable operations, newest first" }

// helpHandler prints the registered commands.
type helpHandler struct {
	registry *Registry
}

func (h *helpHandler) Execute(ctx *Context) (Result, error) {
	for _, name := range h.registry.Commands() {
		handler, _ := h.registry.Lookup(name)
		fmt.Fprintf(ctx.Out, "  %-10s %s\n", name, handler.Description())
	}
	return Result{Quiet: true}, nil
}

func (h *helpHandler) Description() string { return "show this command list" }

// newRandomHandler builds the random-add handler around a shared rng.
func newRandomHandler(rng *rand.Rand) Handler {
	return &operationHandler{
		desc: "add a random value between 1 and 10",
		make: func() *history.Operation { return history.NewRandomAdd(rng) },
	}
}

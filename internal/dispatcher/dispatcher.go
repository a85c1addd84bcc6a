package dispatcher

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dshills/revcalc/internal/engine"
	"github.com/dshills/revcalc/internal/engine/history"
	"github.com/dshills/revcalc/internal/event"
)

// Dispatcher routes command tokens to handlers and publishes calculator
// activity on the event bus.
type Dispatcher struct {
	registry *Registry
	engine   *engine.Engine
	bus      *event.Bus
	out      io.Writer
	rng      *rand.Rand
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBus sets the event bus to publish on.
func WithBus(bus *event.Bus) Option {
	return func(d *Dispatcher) {
		d.bus = bus
	}
}

// WithOutput sets the writer handlers print to.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithRand sets the random source used by the random command.
func WithRand(rng *rand.Rand) Option {
	return func(d *Dispatcher) {
		d.rng = rng
	}
}

// New creates a dispatcher bound to an engine, with the default command
// set registered.
func New(eng *engine.Engine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		engine:   eng,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		seed := uint64(time.Now().UnixNano())
		d.rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	d.registerDefaults()
	return d
}

// Register adds or replaces the handler for a token.
func (d *Dispatcher) Register(token string, h Handler) {
	d.registry.Register(token, h)
}

// Commands returns the registered token names, sorted.
func (d *Dispatcher) Commands() []string {
	return d.registry.Commands()
}

func (d *Dispatcher) registerDefaults() {
	d.registry.Register("increment", &operationHandler{
		desc: "add one to the result",
		make: history.NewIncrement,
	})
	d.registry.Register("decrement", &operationHandler{
		desc: "subtract one from the result",
		make: history.NewDecrement,
	})
	d.registry.Register("double", &operationHandler{
		desc: "multiply the result by two",
		make: history.NewDouble,
	})
	d.registry.Register("random", newRandomHandler(d.rng))
	d.registry.Register("undo", &undoHandler{})
	d.registry.Register("history", &historyHandler{})
	d.registry.Register("help", &helpHandler{registry: d.registry})
	d.registry.Register("quit", &quitHandler{})
	d.registry.Register("exit", &quitHandler{})
}

// Dispatch executes a single token. The engine is updated before
// Dispatch returns, so a following token sees this one's effect.
func (d *Dispatcher) Dispatch(token string) (Result, error) {
	if d.engine == nil {
		return Result{}, ErrNoEngine
	}

	h, ok := d.registry.Lookup(token)
	if !ok {
		d.publish(event.TopicOpRejected, event.OpRejected{
			Token:  token,
			Reason: "unknown command",
		})
		return Result{Value: d.engine.Result()}, fmt.Errorf("%w: %q", ErrUnknownCommand, token)
	}

	res, err := h.Execute(&Context{Engine: d.engine, Out: d.out, Token: token})
	switch {
	case errors.Is(err, ErrQuit):
		return res, err
	case err != nil:
		d.publish(event.TopicOpRejected, event.OpRejected{
			Token:  token,
			Reason: err.Error(),
		})
		return res, err
	case res.Quiet:
		return res, nil
	case res.Kind == history.KindUndo:
		d.publish(event.TopicOpUndone, event.OpUndone{
			Token: token,
			Value: res.Value,
		})
	default:
		d.publish(event.TopicOpApplied, event.OpApplied{
			Token: token,
			Kind:  res.Kind.String(),
			Prior: res.Prior,
			Value: res.Value,
		})
	}
	return res, nil
}

// BatchResult is the outcome of one token within a batch.
type BatchResult struct {
	Token  string
	Result Result
	Err    error
}

// DispatchBatch executes tokens strictly left to right. A failing token
// is recorded and the batch continues; a quit token ends the batch
// early. The completed batch is published on the bus.
func (d *Dispatcher) DispatchBatch(tokens []string) []BatchResult {
	results := make([]BatchResult, 0, len(tokens))
	for _, token := range tokens {
		res, err := d.Dispatch(token)
		results = append(results, BatchResult{Token: token, Result: res, Err: err})
		if errors.Is(err, ErrQuit) {
			break
		}
	}

	if d.engine != nil {
		d.publish(event.TopicBatchCompleted, event.BatchCompleted{
			Tokens: len(results),
			Value:  d.engine.Result(),
		})
	}
	return results
}

func (d *Dispatcher) publish(topic string, payload any) {
	if d.bus == nil {
		return
	}
	d.bus.Publish(event.New(topic, payload, "dispatcher"))
}

package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/revcalc/internal/config"
	"github.com/dshills/revcalc/internal/config/watcher"
	"github.com/dshills/revcalc/internal/dispatcher"
	"github.com/dshills/revcalc/internal/engine"
	"github.com/dshills/revcalc/internal/event"
	"github.com/dshills/revcalc/internal/input"
	"github.com/dshills/revcalc/internal/session"
)

// Options configures the application.
type Options struct {
	// Initial is the calculator's starting result.
	Initial int

	// ConfigPath is the path to the configuration file. Empty uses
	// defaults plus environment overrides.
	ConfigPath string

	// LogLevel overrides the configured logging level when non-empty.
	LogLevel string

	// Input is where command lines are read from. Defaults to os.Stdin.
	Input io.Reader

	// Output is where results are printed. Defaults to os.Stdout.
	Output io.Writer

	// ErrOutput is where logs are written. Defaults to os.Stderr.
	ErrOutput io.Writer

	// DisableWatcher turns off config file watching.
	DisableWatcher bool
}

// Application is the central coordinator for the calculator. It wires
// the engine, dispatcher, event bus, session transcript, and config
// watcher, and runs the interactive loop.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *Logger

	bus        *event.Bus
	engine     *engine.Engine
	dispatcher *dispatcher.Dispatcher
	session    *session.Session
	watcher    *watcher.Watcher

	prompt  atomic.Value // string
	running atomic.Bool

	in  io.Reader
	out io.Writer

	shutdownOnce sync.Once
}

// New creates an application from the given options.
func New(opts Options) (*Application, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%w: loading config: %v", ErrInitialization, err)
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(level),
		Output: opts.ErrOutput,
		Prefix: "revcalc",
	})

	seed := cfg.Random.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32))

	bus := event.NewBus()
	eng := engine.New(opts.Initial, engine.WithMaxHistory(cfg.History.MaxEntries))
	disp := dispatcher.New(eng,
		dispatcher.WithBus(bus),
		dispatcher.WithOutput(opts.Output),
		dispatcher.WithRand(rng),
	)

	sess := session.New(opts.Initial)
	sess.Attach(bus)

	app := &Application{
		opts:       opts,
		cfg:        cfg,
		logger:     logger,
		bus:        bus,
		engine:     eng,
		dispatcher: disp,
		session:    sess,
		in:         opts.Input,
		out:        opts.Output,
	}
	app.prompt.Store(cfg.Prompt)

	app.subscribeDebugLogging()

	if opts.ConfigPath != "" && !opts.DisableWatcher {
		w, err := watcher.New(opts.ConfigPath, app.reloadConfig)
		if err != nil {
			// A missing config directory is not fatal; hot reload is
			// simply unavailable.
			logger.Warn("config watcher unavailable: %v", err)
		} else {
			app.watcher = w
		}
	}

	return app, nil
}

// subscribeDebugLogging mirrors all bus traffic to the debug log.
func (app *Application) subscribeDebugLogging() {
	log := app.logger.WithComponent("bus")
	app.bus.Subscribe("**", func(ev event.Event) {
		log.Debug("%s %+v", ev.Topic, ev.Payload)
	})
}

// Prompt returns the current prompt string.
func (app *Application) Prompt() string {
	return app.prompt.Load().(string)
}

// Result returns the calculator's current result.
func (app *Application) Result() int {
	return app.engine.Result()
}

// Session returns the run's transcript.
func (app *Application) Session() *session.Session {
	return app.session
}

// Run executes the interactive loop: prompt, read a line, tokenize,
// apply each token in order, print each outcome. It returns ErrQuit
// when the user asks to leave, or nil on end of input.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	scanner := bufio.NewScanner(app.in)
	for {
		fmt.Fprint(app.out, app.Prompt())

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}

		tokens := input.Tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		for _, r := range app.dispatcher.DispatchBatch(tokens) {
			if err := app.report(r); err != nil {
				return err
			}
		}
	}
}

// report prints the outcome of one token. Recoverable errors become
// messages and processing continues; ErrQuit propagates.
func (app *Application) report(r dispatcher.BatchResult) error {
	switch {
	case errors.Is(r.Err, dispatcher.ErrQuit):
		return ErrQuit
	case errors.Is(r.Err, dispatcher.ErrUnknownCommand):
		fmt.Fprintf(app.out, "Unknown command: %s\n", r.Token)
	case errors.Is(r.Err, engine.ErrNothingToUndo):
		fmt.Fprintln(app.out, "No command to undo.")
	case r.Err != nil:
		fmt.Fprintf(app.out, "Error: %v\n", r.Err)
	case r.Result.Quiet:
	default:
		fmt.Fprintf(app.out, "After '%s': %d\n", r.Token, r.Result.Value)
	}
	return nil
}

// reloadConfig re-reads the config file and applies presentation
// settings. Calculator state is never touched.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		return
	}

	app.prompt.Store(cfg.Prompt)
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
	app.bus.Publish(event.New(event.TopicConfigReloaded,
		event.ConfigReloaded{Path: app.opts.ConfigPath}, "app"))
	app.logger.Info("configuration reloaded")
}

// Shutdown releases resources and saves the session transcript when
// autosave is configured. Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Warn("closing config watcher: %v", err)
			}
		}

		app.session.Detach(app.bus)
		if path := app.cfg.Session.Autosave; path != "" {
			if err := app.session.Save(path); err != nil {
				app.logger.Error("saving session: %v", err)
			} else {
				app.logger.Info("session saved to %s", path)
			}
		}

		stats := app.bus.Stats()
		app.logger.Debug("bus stats: published=%d delivered=%d",
			stats.EventsPublished, stats.EventsDelivered)
	})
}

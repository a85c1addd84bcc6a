// Package main is the entry point for the revcalc calculator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dshills/revcalc/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
		os.Exit(0)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("revcalc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return opts, false
		}
	}

	// Exactly one positional argument: the initial value.
	if flag.NArg() != 1 {
		flag.Usage()
		return opts, false
	}
	initial, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: initial value must be an integer, got %q\n\n", flag.Arg(0))
		flag.Usage()
		return opts, false
	}
	opts.Initial = initial

	return opts, true
}

func usage() {
	fmt.Fprintf(os.Stderr, "revcalc - reversible integer calculator\n\n")
	fmt.Fprintf(os.Stderr, "Usage: revcalc [options] <initial-value>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands (comma-separated, one batch per line):\n")
	fmt.Fprintf(os.Stderr, "  increment   add one to the result\n")
	fmt.Fprintf(os.Stderr, "  decrement   subtract one from the result\n")
	fmt.Fprintf(os.Stderr, "  double      multiply the result by two\n")
	fmt.Fprintf(os.Stderr, "  random      add a random value between 1 and 10\n")
	fmt.Fprintf(os.Stderr, "  undo        reverse the most recent operation\n")
	fmt.Fprintf(os.Stderr, "  history     list undoable operations\n")
	fmt.Fprintf(os.Stderr, "  help        show the command list\n")
	fmt.Fprintf(os.Stderr, "  quit        exit\n\n")
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  revcalc 1                   Start at 1\n")
	fmt.Fprintf(os.Stderr, "  revcalc -c calc.toml 0      Start at 0 with a config file\n")
}

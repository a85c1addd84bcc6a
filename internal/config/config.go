// Package config loads and merges calculator configuration from
// defaults, a TOML file, and environment variable overrides, in that
// order of increasing precedence.
package config

import (
	"github.com/dshills/revcalc/internal/config/loader"
)

// Config holds the calculator's runtime settings.
type Config struct {
	// Prompt is printed before each input line.
	Prompt string

	Logging LoggingConfig
	History HistoryConfig
	Random  RandomConfig
	Session SessionConfig
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	// MaxEntries is the undo stack depth; non-positive means default.
	MaxEntries int
}

// RandomConfig seeds the random command.
type RandomConfig struct {
	// Seed seeds the random source. Zero selects a time-based seed.
	Seed uint64
}

// SessionConfig controls the session transcript.
type SessionConfig struct {
	// Autosave is a path the transcript is written to on exit.
	// Empty disables autosave.
	Autosave string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prompt: "> ",
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped
// when path is empty or the file is absent), and environment overrides.
func Load(path string) (Config, error) {
	merged := map[string]any{}

	if path != "" {
		fileCfg, err := loader.NewTOMLLoader(path).Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	envCfg, err := loader.NewEnvLoader().Load()
	if err != nil {
		return Config{}, err
	}
	merged = loader.DeepMerge(merged, envCfg)

	cfg := Default()
	applyMap(&cfg, merged)
	return cfg, nil
}

// applyMap copies recognized keys from a raw configuration map onto cfg.
// Unknown keys are ignored.
func applyMap(cfg *Config, m map[string]any) {
	if v, ok := lookupString(m, "prompt"); ok {
		cfg.Prompt = v
	}
	if v, ok := lookupString(m, "logging", "level"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookupInt(m, "history", "max_entries"); ok {
		cfg.History.MaxEntries = v
	}
	if v, ok := lookupInt(m, "random", "seed"); ok && v >= 0 {
		cfg.Random.Seed = uint64(v)
	}
	if v, ok := lookupString(m, "session", "autosave"); ok {
		cfg.Session.Autosave = v
	}
}

// lookup walks nested maps by key path.
func lookup(m map[string]any, path ...string) (any, bool) {
	var current any = m
	for _, key := range path {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = asMap[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func lookupString(m map[string]any, path ...string) (string, bool) {
	v, ok := lookup(m, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func lookupInt(m map[string]any, path ...string) (int, bool) {
	v, ok := lookup(m, path...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

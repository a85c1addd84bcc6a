package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	mapping map[string]string // env var -> dotted config path
}

// NewEnvLoader creates a loader with the default variable mapping.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{mapping: defaultEnvMapping()}
}

// NewEnvLoaderWithMapping creates a loader with a custom mapping.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"REVCALC_PROMPT":           "prompt",
		"REVCALC_LOG_LEVEL":        "logging.level",
		"REVCALC_HISTORY_MAX":      "history.max_entries",
		"REVCALC_RANDOM_SEED":      "random.seed",
		"REVCALC_SESSION_AUTOSAVE": "session.autosave",
	}
}

// Load reads mapped environment variables into a configuration map.
// Unset variables are skipped; empty values are valid values.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		val, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		setByPath(config, path, parseValue(val))
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// setByPath sets a value in a nested map using a dotted path.
func setByPath(config map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := config

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// parseValue converts an environment string to a typed value.
// Integers and booleans are recognized; everything else stays a string.
func parseValue(val string) any {
	if i, err := strconv.ParseInt(val, 10, 64); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

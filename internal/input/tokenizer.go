// Package input turns raw command lines into command tokens.
//
// A line is one batch: it is trimmed, lower-cased, and split on commas;
// each token is trimmed and empty tokens are dropped. Token order is
// preserved so a batch executes strictly left to right.
package input

import "strings"

// Tokenize splits a raw input line into its command tokens.
// Returns nil for a line with no tokens.
func Tokenize(line string) []string {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return nil
	}

	parts := strings.Split(line, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

package config

import "strings"

// levelAliases maps spellings seen in other tools to slog level names.
var levelAliases = map[string]string{
	"warning": "warn",
	"err":     "error",
	"trace":   "debug",
}

// NormalizeLevel lowercases a log level and maps aliases to slog names.
// Unknown values are returned lowercased so Validate can report them.
func NormalizeLevel(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	if alias, ok := levelAliases[l]; ok {
		return alias
	}

	return l
}

// Package sysutil holds tiny process-level helpers shared by the entrypoint:
// global log level selection and environment string utilities.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// logLevels maps accepted level names (plus common aliases) to zerolog
// levels. "off" and "disabled" silence logging entirely.
var logLevels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"off":      zerolog.Disabled,
	"disabled": zerolog.Disabled,
}

// SetLogLevel configures the global zerolog level from a level name
// (case-insensitive, surrounding whitespace ignored) and returns the level
// actually applied, so startup code can report it. Unknown or empty names
// fall back to info.
func SetLogLevel(lvl string) zerolog.Level {
	l, ok := logLevels[strings.ToLower(strings.TrimSpace(lvl))]
	if !ok {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
	return l
}

// IsTruthy reports whether an environment variable string should be considered true.
// Accepted values (case-insensitive): "1", "true", "yes", "y", "on".
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// FirstNonEmpty returns the first non-empty string from a variadic list.
// If all values are empty, it returns "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

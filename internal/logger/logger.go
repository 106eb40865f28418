package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the component-oriented logging surface shared by every package.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	With(key string, value interface{}) Logger
}

// ParseLevel maps LOG_LEVEL style names onto zerolog levels.
// debugFlag forces debug level when the name is empty or unknown.
func ParseLevel(name string, debugFlag bool) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		if debugFlag {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
}

// Package logger expone el constructor del logger zerolog de la app.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New crea un logger etiquetado con el nombre de la app.
// level acepta debug|info|warn|error (default info).
func New(appName, level string) zerolog.Logger {
	return zerolog.New(os.Stdout).
		Level(parseLevel(level)).
		With().
		Str("app", appName).
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

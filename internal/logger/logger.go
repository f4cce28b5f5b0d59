package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zerolog.Nop()

// DefaultPath returns the log file location under the user config directory,
// falling back to /tmp when that directory is unavailable.
func DefaultPath() string {
	logPath := "/tmp/musify.log"
	configDir, err := os.UserConfigDir()
	if err == nil {
		dir := filepath.Join(configDir, "musify")
		if err := os.MkdirAll(dir, 0755); err == nil {
			logPath = filepath.Join(dir, "musify.log")
		}
	}
	return logPath
}

// Init points Log at the file at logPath. An unknown level falls back to info.
func Init(logPath, level string) (io.Closer, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Log = zerolog.New(file).Level(lvl).With().Timestamp().Caller().Logger()
	Log.Info().Str("path", logPath).Msg("Logger initialized")
	return file, nil
}

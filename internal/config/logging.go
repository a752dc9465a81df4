package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging points the global logger at w, or at the log file when one is
// configured. The returned closer releases the file and is never nil.
func SetupLogging(cfg *Config, w io.Writer) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.LogFile == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// DefaultLogFile is where the editor logs while it owns the terminal
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "langtable.log")
	}
	return filepath.Join(dir, "langtable", "langtable.log")
}

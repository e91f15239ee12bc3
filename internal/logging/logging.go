// Package logging configures the process-wide slog logger. Prompt output is
// captured by the shell via command substitution, so a stray log line on
// stdout or stderr would be rendered into the user's prompt. The default
// sink is therefore discard; records go to a JSON file only when the
// configuration names one.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// discardHandler is a stand-in for slog.DiscardHandler, which requires a
// newer Go toolchain than the one building this module.
var discardHandler slog.Handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})

// File permissions for the log directory and file
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// hostnameFallback is recorded when the hostname cannot be determined.
const hostnameFallback = "unknown"

// Options configures Setup.
type Options struct {
	// Level is the minimum record level written to the file.
	Level slog.Level

	// FilePath receives JSON records. Empty installs the discard logger.
	FilePath string

	// RunID identifies this invocation in every record.
	RunID string
}

// GenerateRunID returns a ULID identifying one invocation. ULIDs are
// lexicographically sortable by creation time, so records from consecutive
// prompts line up chronologically in the log.
func GenerateRunID() string {
	return ulid.Make().String()
}

// Setup installs the process-wide default logger. It returns a cleanup
// function that flushes and closes the log file.
//
// Failure to open the log file installs the discard logger and reports the
// error; the caller may end up logging nothing, but it still prints a
// prompt.
func Setup(opts Options) (func(), error) {
	noop := func() {}

	if opts.FilePath == "" {
		slog.SetDefault(slog.New(discardHandler))
		return noop, nil
	}

	file, err := openLogFile(opts.FilePath)
	if err != nil {
		slog.SetDefault(slog.New(discardHandler))
		return noop, err
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: opts.Level})
	logger := slog.New(handler).With(
		"hostname", hostname(),
		"pid", os.Getpid(),
		"run_id", opts.RunID,
	)
	slog.SetDefault(logger)

	return func() { _ = file.Close() }, nil
}

// openLogFile opens the log file for appending, creating parent
// directories as needed.
func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return file, nil
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return hostnameFallback
	}
	return host
}

// Package logging builds the zerolog logger shared by every tmr command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation settings
const (
	LogsDir       = "logs"
	LogFileName   = "tmr.log"
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
	LogMaxAgeDays = 30
	LogCompress   = true
)

// nopCloser is returned when no log file could be opened
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init creates the logger for a command run. Entries always go to a rotated
// file under home/logs; verbose mode also echoes them to stderr at debug level.
// The returned closer releases the log file and must be called on exit.
//
// When the log file cannot be opened the logger falls back to stderr for
// warnings and errors only.
func Init(home string, verbose bool) (zerolog.Logger, io.Closer) {
	fileWriter, err := createLogFileWriter(home)
	if err != nil {
		logger := New(selectOutput(), verbose)
		if !verbose {
			logger = logger.Level(zerolog.WarnLevel)
		}
		logger.Warn().Err(err).Msg("log file unavailable, logging to stderr")
		return logger, nopCloser{}
	}

	var writer io.Writer = fileWriter
	if verbose {
		writer = zerolog.MultiLevelWriter(selectOutput(), fileWriter)
	}
	return New(writer, verbose), fileWriter
}

// New builds a logger on top of w and installs it as the global zerolog logger
func New(w io.Writer, verbose bool) zerolog.Logger {
	logger := zerolog.New(w).Level(selectLevel(verbose)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// selectLevel determines the log level from the verbose flag
func selectLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// selectOutput returns a console writer on a terminal and raw JSON otherwise
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens home/logs/tmr.log with rotation enabled
func createLogFileWriter(home string) (io.WriteCloser, error) {
	logDir := filepath.Join(home, LogsDir)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
		Compress:   LogCompress,
	}, nil
}

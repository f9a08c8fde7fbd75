// Package logger provides the global zerolog logger for releasekit.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It is a no-op until Init is called so
// that library packages can log unconditionally, including under test.
var Log = zerolog.Nop()

// fileWriter is the rotating file sink, when enabled.
var fileWriter *lumberjack.Logger

// Init initializes the global logger with console output on stderr.
func Init(debug bool) {
	Log = newLogger(consoleWriter(), debug)
}

// InitWithFile initializes the global logger with console output plus a
// rotating file sink at the given path. CI runs use this to keep a build
// log artifact per pipeline run.
func InitWithFile(debug bool, path string) {
	fileWriter = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	Log = newLogger(zerolog.MultiLevelWriter(consoleWriter(), fileWriter), debug)
}

// CloseFile flushes and closes the file sink, if one was opened.
func CloseFile() {
	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Debug logs a debug message.
func Debug() *zerolog.Event { return Log.Debug() }

// Info logs an info message.
func Info() *zerolog.Event { return Log.Info() }

// Warn logs a warning message.
func Warn() *zerolog.Event { return Log.Warn() }

// Error logs an error message.
func Error() *zerolog.Event { return Log.Error() }

package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	base    = newLogger(io.Discard)
	logFile *os.File
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		CallerOffset:    1,
		TimeFormat:      time.RFC3339,
		Prefix:          "wallet",
	})
}

// Init initializes the logger and creates/opens the log file
func Init(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	base.SetOutput(f)
	return nil
}

// RotateLog truncates the log file and keeps writing to it
func RotateLog(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	logFile = f
	base.SetOutput(f)
	return nil
}

// SetOutput redirects log output, mostly useful in tests and for --verbose.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// SetLevel accepts debug, info, warn or error. Unknown levels are ignored.
func SetLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	base.SetLevel(lvl)
}

// Cleanup closes the log file when the application is done using it
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base.SetOutput(io.Discard)
}

func Debug(msg string, keyvals ...interface{}) {
	base.Debug(msg, keyvals...)
}

// Info logs an informational message with key/value pairs
func Info(msg string, keyvals ...interface{}) {
	base.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	base.Warn(msg, keyvals...)
}

// Error logs an error message with key/value pairs
func Error(msg string, keyvals ...interface{}) {
	base.Error(msg, keyvals...)
}

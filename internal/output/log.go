// Package output provides the shared logger for the cmdb libraries.
package output

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. Library code logs degradations at
// Debug/Warn; nothing in the libraries logs at Error or above.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "cmdb",
})

// SetVerbose switches the global logger between Info and Debug level.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(log.DebugLevel)
		return
	}
	Logger.SetLevel(log.InfoLevel)
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

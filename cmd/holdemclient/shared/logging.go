package shared

import (
	"io"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a logger at the named level. Unknown levels fall
// back to warn so a bad config value never silences errors.
func SetupLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

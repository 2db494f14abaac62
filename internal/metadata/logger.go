package metadata

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Verbosity levels accepted on the command line.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelDebug   = "debug"
)

// ParseLevel maps a verbosity name to a logrus level. Only the three
// documented names are accepted.
func ParseLevel(name string) (logrus.Level, error) {
	switch name {
	case LevelError:
		return logrus.ErrorLevel, nil
	case LevelWarning:
		return logrus.WarnLevel, nil
	case LevelDebug:
		return logrus.DebugLevel, nil
	default:
		return logrus.PanicLevel, fmt.Errorf("unknown log level %q (expected %s, %s or %s)", name, LevelError, LevelWarning, LevelDebug)
	}
}

// NewLogger builds the process logger: text output with full timestamps.
func NewLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

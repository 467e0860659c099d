package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	levelInfo  = "info"
	levelError = "error"
	levelDebug = "debug"
)

// One file-backed logger per level, keyed by level name. Nil until
// InitLogger runs; logging before that is a no-op.
var levelLoggers map[string]*log.Logger

// InitLogger opens the per-level, per-day log files under logs/.
func InitLogger() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	day := time.Now().Format("2006-01-02")
	loggers := make(map[string]*log.Logger, 3)
	for _, level := range []string{levelInfo, levelError, levelDebug} {
		file, err := os.OpenFile(
			filepath.Join(logsDir, fmt.Sprintf("%s-%s.log", level, day)),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0644,
		)
		if err != nil {
			return fmt.Errorf("failed to open %s log file: %v", level, err)
		}
		loggers[level] = log.New(file, strings.ToUpper(level)+": ", log.Ldate|log.Ltime|log.Lshortfile)
	}

	levelLoggers = loggers
	return nil
}

func logAt(level, format string, v ...interface{}) {
	if logger, ok := levelLoggers[level]; ok {
		logger.Printf(format, v...)
	}
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	logAt(levelInfo, format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	logAt(levelError, format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	logAt(levelDebug, format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	LogInfo("Request: %s %s from %s - Status: %d - Duration: %v", method, path, ip, status, duration)
}

// LogErrorWithStack logs an error with its stack trace
func LogErrorWithStack(err error, stack []byte) {
	logAt(levelError, "Error: %v\nStack Trace:\n%s", err, stack)
}

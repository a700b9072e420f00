package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.RWMutex
)

// GetLogger returns the process-wide logger, creating a JSON stdout logger on first use.
func GetLogger() *Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		level := "info"
		if os.Getenv("LOG_LEVEL") != "" {
			level = os.Getenv("LOG_LEVEL")
		}
		globalLogger = New(Config{Level: level, Format: "json", Output: "stdout"})
	}
	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *Logger) {
	mu.Lock()
	globalLogger = l
	mu.Unlock()
}

// Info logs msg on the global logger.
func Info(msg string) {
	GetLogger().Info(msg)
}

// WithField adds a field to the global logger.
func WithField(key string, value any) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the global logger.
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}

// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger *zap.SugaredLogger
)

// Init initializes the global logger at the given level ("debug", "info", "warn", "error").
// Logs go to stderr so they never mix with command output on stdout.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	SetLogger(logger.Sugar())
	return nil
}

// SetLogger replaces the global logger.
func SetLogger(logger *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetLogger returns the global SugaredLogger for structured logging
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	logger := globalLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}
	// Fallback logger if Init wasn't called
	return zap.NewNop().Sugar()
}

// Close flushes any buffered logs
func Close() error {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger != nil {
		// Syncing stderr fails on some platforms; there is nothing to flush there.
		_ = globalLogger.Sync()
	}
	return nil
}

// Debug logs a debug message with optional fields
func Debug(message string, fields ...any) {
	GetLogger().Debugw(message, fields...)
}

// Info logs an info message with optional fields
func Info(message string, fields ...any) {
	GetLogger().Infow(message, fields...)
}

// Warn logs a warning message with optional fields
func Warn(message string, fields ...any) {
	GetLogger().Warnw(message, fields...)
}

// Error logs an error message with optional fields
func Error(message string, fields ...any) {
	GetLogger().Errorw(message, fields...)
}

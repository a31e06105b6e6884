package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init initializes the global logger with JSON output.
func Init(appEnv string) error {
	var config zap.Config

	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger = logger.Sugar()
	return nil
}

// GetLogger returns the global SugaredLogger for structured logging.
func GetLogger() *zap.SugaredLogger {
	if globalLogger == nil {
		// Fallback logger if Init wasn't called
		logger, _ := zap.NewProduction()
		globalLogger = logger.Sugar()
	}
	return globalLogger
}

// Close flushes any buffered logs.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Debug logs a debug message with optional fields.
func Debug(message string, fields ...interface{}) {
	GetLogger().Debugw(message, fields...)
}

// Info logs an info message with optional fields.
func Info(message string, fields ...interface{}) {
	GetLogger().Infow(message, fields...)
}

// Warn logs a warning message with optional fields.
func Warn(message string, fields ...interface{}) {
	GetLogger().Warnw(message, fields...)
}

// Error logs an error message with optional fields.
func Error(message string, fields ...interface{}) {
	GetLogger().Errorw(message, fields...)
}

// WithLookup creates a logger scoped to one flight lookup.
func WithLookup(requestID, identifier string) *zap.SugaredLogger {
	return GetLogger().With(
		"request_id", requestID,
		"identifier", identifier,
	)
}

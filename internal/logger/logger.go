// Package logger provides the shared zap sugared logger for the application.
// Level and output are driven by the LOG_LEVEL and ENVIRONMENT variables.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

func initLogger() {
	var (
		zapLogger *zap.Logger
		err       error
	)

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = zapcore.InfoLevel
	}

	if os.Getenv("ENVIRONMENT") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = cfg.Build()
	}

	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	logger = zapLogger.Sugar()
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.SugaredLogger {
	once.Do(initLogger)
	return logger
}

// Close flushes buffered log entries; call before the process exits.
func Close() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

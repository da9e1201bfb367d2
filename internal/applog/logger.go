package applog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process-wide logger and installs it via zap.ReplaceGlobals
// so call sites can use the zap.S() sugar. The returned function flushes
// buffered entries and is meant to be deferred from main.
func Init(environment string) func() {
	var cfg zap.Config

	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build()
	if err != nil {
		// A broken console config should not stop the app from starting
		logger = zap.NewNop()
	}

	zap.ReplaceGlobals(logger)

	return func() {
		_ = logger.Sync()
	}
}

// Environment reads the runtime environment name from PIXL_ENV,
// defaulting to "development"
func Environment() string {
	if env := os.Getenv("PIXL_ENV"); env != "" {
		return env
	}
	return "development"
}

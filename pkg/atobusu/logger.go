package atobusu

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger     *zap.Logger
	globalLoggerMu   sync.RWMutex
	globalLoggerOnce sync.Once
)

// newLogger constructs a structured JSON logger at the given level.
func newLogger(levelStr string) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelStr)))); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(l.String()))
		},
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		config := GetGlobalConfig()
		globalLoggerMu.Lock()
		globalLogger = newLogger(config.LogLevel)
		globalLoggerMu.Unlock()
	})
}

// GetLogger returns the global logger.
func GetLogger() *zap.Logger {
	initGlobalLogger()
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the global logger.
func SetLogger(logger *zap.Logger) {
	globalLoggerOnce.Do(func() {})
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// UpdateLoggerFromConfig rebuilds the global logger from the current
// global configuration.
func UpdateLoggerFromConfig() {
	config := GetGlobalConfig()
	SetLogger(newLogger(config.LogLevel))
}

// debugEnabled reports whether debug-level tracing is on, so hot paths
// can skip building debug fields entirely.
func debugEnabled() bool {
	return GetLogger().Core().Enabled(zapcore.DebugLevel)
}

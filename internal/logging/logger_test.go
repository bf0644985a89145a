package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observed returns a SafeLogger that records entries at level and above
func observed(level zapcore.Level) (*SafeLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return New(zap.New(core)), logs
}

// restoreGlobal puts the package logger back after a test replaces it
func restoreGlobal(t *testing.T) {
	t.Helper()
	previous := Logger
	t.Cleanup(func() { Logger = previous })
}

func TestGlobalLoggerIsUsableBeforeInit(t *testing.T) {
	require.NotNil(t, Logger)
	Logger.Info("registry starting")
	assert.NoError(t, Logger.Sync())
}

func TestInitLogger_LevelFromEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		debugOn bool
		infoOn  bool
	}{
		{name: "unset keeps info", level: "", debugOn: false, infoOn: true},
		{name: "debug", level: "debug", debugOn: true, infoOn: true},
		{name: "warn", level: "warn", debugOn: false, infoOn: false},
		{name: "unknown level keeps info", level: "verbose", debugOn: false, infoOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreGlobal(t)
			t.Setenv("LOG_LEVEL", tt.level)

			require.NoError(t, InitLogger())
			require.NotNil(t, Logger.logger)

			assert.Equal(t, tt.debugOn, Logger.logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.infoOn, Logger.logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestSafeLogger_RecordsEntriesWithFields(t *testing.T) {
	logger, logs := observed(zapcore.DebugLevel)

	logger.Debug("verdict cached", zap.Bool("is_used", false))
	logger.Info("email registered", zap.String("email", "a****@uni.edu.br"))
	logger.Warn("bulk reset completed", zap.String("scope", "all"))
	logger.Error("failed to register email", zap.String("email", "a****@uni.edu.br"))

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	assert.Equal(t, "email registered", entries[1].Message)
	assert.Equal(t, "a****@uni.edu.br", entries[1].ContextMap()["email"])
	assert.Equal(t, "all", entries[2].ContextMap()["scope"])
}

func TestSafeLogger_RespectsLevel(t *testing.T) {
	logger, logs := observed(zapcore.WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestSafeLogger_WithAndNamed(t *testing.T) {
	logger, logs := observed(zapcore.InfoLevel)

	logger.Named("email").With(zap.String("store", "memory")).Info("email checked")

	entries := logs.FilterMessage("email checked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "email", entries[0].LoggerName)
	assert.Equal(t, "memory", entries[0].ContextMap()["store"])

	// With does not leak fields into the parent
	logger.Info("plain")
	assert.NotContains(t, logs.FilterMessage("plain").All()[0].ContextMap(), "store")
}

func TestSafeLogger_NilReceivers(t *testing.T) {
	loggers := map[string]*SafeLogger{
		"nil pointer":    nil,
		"nil zap logger": {},
	}

	for name, logger := range loggers {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				logger.Debug("d")
				logger.Info("i")
				logger.Warn("w")
				logger.Error("e")
				logger.Named("email").Info("named")
				assert.NoError(t, logger.Sync())
			})
		})
	}

	var nilLogger *SafeLogger
	assert.Nil(t, nilLogger.With(zap.String("k", "v")))

	empty := &SafeLogger{}
	assert.Same(t, empty, empty.With(zap.String("k", "v")))
}

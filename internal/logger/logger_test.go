package logger_test

import (
	"testing"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	app := &config.AppConfig{Name: "iManage", Environment: "development"}

	log, err := logger.NewLogger(&config.LoggingConfig{Level: "debug", Format: "console"}, app)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	// Unknown levels fall back to info
	log, err = logger.NewLogger(&config.LoggingConfig{Level: "verbose", Format: "json"}, app)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestWithRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	logger.WithRequest(zap.New(core), "GET", "/api/quotes", "req-7").Info("handled")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", ctx["method"])
	assert.Equal(t, "/api/quotes", ctx["path"])
	assert.Equal(t, "req-7", ctx["request_id"])
}

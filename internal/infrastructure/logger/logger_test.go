package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roommates/core/internal/infrastructure/config"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		l, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("console format", func(t *testing.T) {
		l, err := New(config.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
		assert.Error(t, err)
	})
}

func TestLogger_LogHTTPRequest(t *testing.T) {
	l, logs := newObserved()

	l.LogHTTPRequest("GET", "/roommate", "curl", "127.0.0.1", 200, 1.5, nil)
	l.LogHTTPRequest("POST", "/roommate", "curl", "127.0.0.1", 500, 2.5, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "HTTP request", entries[0].Message)
	assert.Equal(t, "HTTP request failed", entries[1].Message)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestLogger_WithComponent(t *testing.T) {
	l, logs := newObserved()

	l.WithComponent("store").WithError(errors.New("disk full")).Warn("write")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "store", fields["component"])
	assert.Equal(t, "disk full", fields["error"])
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf, Service: "blog-api"})
	log.Info().Str("user_id", "u1").Msg("user registered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "blog-api", entry["service"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "user registered", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Options{Output: &buf, Service: "blog-api"}), "audit")
	log.Warn().Msg("queue full")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, "blog-api", entry["service"])
}

func TestLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":  zerolog.TraceLevel,
		"DEBUG":  zerolog.DebugLevel,
		" info ": zerolog.InfoLevel,
		"warn":   zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"bogus":  zerolog.InfoLevel,
		"":       zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, Level(in), "Level(%q)", in)
	}
}

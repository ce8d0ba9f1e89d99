package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Info().Str("engine", "postgresql").Int("port", 5432).Msg("connected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connected", entry["message"])
	assert.Equal(t, "postgresql", entry["engine"])
	assert.Equal(t, float64(5432), entry["port"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerLevelFiltersLowerEvents(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("also hidden")

	assert.Zero(t, buf.Len())
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("nonsense", &buf)

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestWithFieldsAttachesToEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf).WithFields(map[string]any{"conn": "local"})

	log.Warn().Msg("slow query")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "local", entry["conn"])
	assert.Equal(t, "warn", entry["level"])
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_WritesFlatJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelDebug})

	log.Info("lesson completed", LearnerID("learner-1"), ScorePercent(85))

	entry := logLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "lesson completed", entry["message"])
	assert.Equal(t, "learner-1", entry["learner_id"])
	assert.Equal(t, float64(85), entry["score_percent"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Debug("noise")
	log.Info("noise")
	assert.Zero(t, buf.Len())

	log.Warn("signal")
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo}).With(Language("es"))

	log.Info("language started")

	entry := logLine(t, &buf)
	assert.Equal(t, "es", entry["language"])
}

func TestLogger_ErrField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo})

	log.Error("refill failed", Err(errors.New("hearts already full")))

	entry := logLine(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "hearts already full", entry["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestNewNop_DiscardsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error("dropped")
	})
}

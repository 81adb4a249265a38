package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_JSONOutput(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	l := NewSlogWithWriter(&buf, InfoLevel, false)

	l.Info("write command", "cmd", "DV 1,0,1.5")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "write command", rec["msg"])
	assert.Equal(t, "DV 1,0,1.5", rec["cmd"])
	assert.Contains(t, rec, "ts")
	assert.NotContains(t, rec, "time")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	l := NewSlogWithWriter(&buf, WarnLevel, false)

	l.Debug("dropped")
	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.NotZero(t, buf.Len())
	assert.Equal(t, WarnLevel, l.Level())

	buf.Reset()
	l.SetLevel(DebugLevel)
	assert.Equal(t, DebugLevel, l.Level())
	l.Debug("kept")
	assert.NotZero(t, buf.Len())
}

func TestSlogLogger_WithSharesLevel(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	parent := NewSlogWithWriter(&buf, ErrorLevel, false)
	child := parent.With("slot", 1)

	child.Info("dropped")
	assert.Zero(t, buf.Len())

	parent.SetLevel(InfoLevel)
	child.Info("measured", "value", 1e-6)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.EqualValues(t, 1, rec["slot"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		ok    bool
	}{
		{"debug", DebugLevel, true},
		{"", InfoLevel, true},
		{"warning", WarnLevel, true},
		{"ERROR", ErrorLevel, true},
		{"verbose", InfoLevel, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.name)
		assert.Equal(t, tt.level, level, tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
	}
	assert.Equal(t, "warn", WarnLevel.String())
}

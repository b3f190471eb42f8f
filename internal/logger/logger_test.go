package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/internal/config"
)

func TestNewWritesJSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Environment: "production",
		Logging:     config.LoggingConfig{Level: "warn", Format: "text"},
	}

	log := NewWithWriter(cfg, &buf)
	log.Info("dropped")
	log.Warn("kept", slog.Int("doctor_id", 3))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "medibook", entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.EqualValues(t, 3, entry["doctor_id"])
}

func TestNewUsesTextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Environment: "development",
		Logging:     config.LoggingConfig{Level: "debug", Format: "text"},
	}

	NewWithWriter(cfg, &buf).Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=medibook")
}

func TestNewAlsoWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medibook.log")
	cfg := &config.Config{
		Environment: "production",
		Logging: config.LoggingConfig{
			Level:         "info",
			File:          path,
			FileMaxSizeMB: 1,
		},
	}

	var console bytes.Buffer
	NewWithWriter(cfg, &console).Info("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, console.String(), "to both")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

package adapter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" Error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSetupLogger_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kinoart.log")

	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "url", "http://x")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line expected")
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "http://x", entry["url"])
}

func TestSetupLogger_Stderr(t *testing.T) {
	logger, closeLog, err := SetupLogger(&LoggingConfig{File: "-"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeLog())
}

func TestSetupLogger_BadPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, closeLog, err := SetupLogger(&LoggingConfig{File: filepath.Join(file, "sub", "x.log")})
	assert.Error(t, err)
	assert.NoError(t, closeLog())
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Error("ignored") })
}

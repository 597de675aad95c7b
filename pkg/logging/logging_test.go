package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "logs", "run.log")

			SetupLogger(tt.verbosity, logPath)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	SetupLogger(0, logPath)

	logger := GetLogger("test-component")
	logger.Warn().Str("preset", "a.jslot").Msg("something odd")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"component":"test-component"`))
	assert.True(t, strings.Contains(string(data), `"preset":"a.jslot"`))
}

func TestDefaultLogFilePath(t *testing.T) {
	got := DefaultLogFilePath()
	assert.Equal(t, "presetcheck.log", filepath.Base(got))
	assert.Equal(t, "presetcheck", filepath.Base(filepath.Dir(got)))
}

func TestLogOperationStart(t *testing.T) {
	done := LogOperationStart(GetLogger("test"), "scan")
	assert.NotPanics(t, done)
}

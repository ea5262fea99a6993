package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "production",
			config: &LoggerConfig{
				ServiceName: "test-service",
				Env:         "prod",
				Level:       "info",
				TimeField:   "timestamp",
				Fields:      map[string]any{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "wrong env",
			config:      &LoggerConfig{Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "invalid level",
			config:      &LoggerConfig{Env: "prod", Level: "loud"},
			expectError: true,
		},
		{
			name:      "staging warn",
			config:    &LoggerConfig{Env: "staging", Level: "warn", TimeFormat: "unix"},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "dev info console only",
			config:    &LoggerConfig{Env: "dev", Level: "info"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "prod error with caller",
			config:    &LoggerConfig{Env: "prod", Level: "error", WithCaller: true},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.config)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, zerolog.GlobalLevel())
			assert.Equal(t, tc.wantLevel, l.GetLevel())
		})
	}
}

func TestSetDefaults(t *testing.T) {
	prod := &LoggerConfig{}
	prod.setDefaults()
	assert.Equal(t, "prod", prod.Env)
	assert.Equal(t, "info", prod.Level)
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "ts", prod.TimeField)
	assert.True(t, prod.Stacktrace)
	assert.False(t, prod.WithCaller)
	assert.Equal(t, "diary-stats-service", prod.ServiceName)
	assert.NotNil(t, prod.Fields)

	dev := &LoggerConfig{Env: "dev"}
	dev.setDefaults()
	assert.Equal(t, "debug", dev.Level)
	assert.Equal(t, "console", dev.Format)
	assert.True(t, dev.WithCaller)
}

func TestTimeFieldFormat(t *testing.T) {
	assert.Equal(t, zerolog.TimeFormatUnix, timeFieldFormat("unix"))
	assert.Equal(t, zerolog.TimeFormatUnixMs, timeFieldFormat("unix_ms"))
	assert.Equal(t, "2006-01-02T15:04:05Z07:00", timeFieldFormat("rfc3339"))
}

func TestNew_DevDebugWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := New(&LoggerConfig{ServiceName: "integration-test", Env: "dev", Level: "debug"})
	require.NoError(t, err)

	_, statErr := os.Stat(DebugLogPath)
	assert.NoError(t, statErr)
}

func TestStackHook_HonoursMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Hook(stackHook{min: zerolog.ErrorLevel})

	log.Warn().Msg("quiet")
	assert.NotContains(t, buf.String(), `"stacktrace"`)

	buf.Reset()
	log.Error().Msg("loud")
	assert.Contains(t, buf.String(), `"stacktrace"`)
	assert.Contains(t, buf.String(), "runtime/debug.Stack")
}

func TestNew_RejectsUnknownStacktraceLevel(t *testing.T) {
	_, err := New(&LoggerConfig{Level: "info", Stacktrace: true, StacktraceMinLevel: "loud"})
	require.Error(t, err)
}

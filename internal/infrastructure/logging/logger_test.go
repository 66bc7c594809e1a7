package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
		err  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.Error(t, err)
}

func TestNewWritesJSONWithService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Component("hub").Info("desktop created", zap.String("desktop_id", "desk_1"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"service":"webdesk"`)
	assert.Contains(t, out, `"logger":"hub"`)
	assert.Contains(t, out, `"desktop_id":"desk_1"`)
	assert.NotContains(t, out, "hidden")
}

func TestSetLevel(t *testing.T) {
	logger, err := New(Config{Level: "warn", OutputPaths: []string{filepath.Join(t.TempDir(), "x.log")}})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, logger.Level())

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, logger.Level())
	assert.Error(t, logger.SetLevel("nope"))
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l.Logger)
	l.Info("discarded")
	assert.NotNil(t, NewDefault())
}

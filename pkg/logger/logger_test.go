package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		wantLevel  LogLevel
		wantDebug  bool
		wantInfo   bool
		wantOutput []string
		absent     []string
	}{
		{
			name:       "default level is debug",
			level:      "",
			wantLevel:  DEBUG,
			wantDebug:  true,
			wantInfo:   true,
			wantOutput: []string{"debug message", "info message"},
			absent:     []string{"trace message"},
		},
		{
			name:       "info level suppresses debug",
			level:      "info",
			wantLevel:  INFO,
			wantDebug:  false,
			wantInfo:   true,
			wantOutput: []string{"info message", "warn message"},
			absent:     []string{"debug message"},
		},
		{
			name:       "error level suppresses warn",
			level:      "ERROR",
			wantLevel:  ERROR,
			wantOutput: []string{"error message"},
			absent:     []string{"warn message", "info message"},
		},
		{
			name:       "unknown level falls back to debug",
			level:      "verbose",
			wantLevel:  DEBUG,
			wantDebug:  true,
			wantInfo:   true,
			wantOutput: []string{"debug message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ConfigureWithWriter(tt.level, &buf)
			t.Cleanup(func() { ConfigureWithWriter("", &bytes.Buffer{}) })

			assert.Equal(t, tt.wantLevel, GetCurrentLevel())
			assert.Equal(t, tt.wantDebug, IsDebugEnabled())
			assert.Equal(t, tt.wantInfo, IsInfoEnabled())

			Tracef("trace %s", "message")
			Debugf("debug %s", "message")
			Infoln("info message")
			Warnf("warn %s", "message")
			Errorf("error %s", "message")

			out := buf.String()
			for _, s := range tt.wantOutput {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestConfigure_ReplacesLogFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")
	t.Cleanup(func() { ConfigureWithWriter("", &bytes.Buffer{}) })

	Configure("info", first)
	firstWriter := fileWriter
	require.NotNil(t, firstWriter)
	Infoln("before reconfigure")

	Configure("info", second)
	assert.NotSame(t, firstWriter, fileWriter)
	Infoln("after reconfigure")

	firstLog, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(firstLog), "before reconfigure")
	assert.NotContains(t, string(firstLog), "after reconfigure")

	secondLog, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(secondLog), "after reconfigure")

	ConfigureWithWriter("info", &bytes.Buffer{})
	assert.Nil(t, fileWriter)
}

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"":         zapcore.InfoLevel,
		"bogus":    zapcore.InfoLevel,
	}

	for level, expected := range tests {
		require.Equal(t, expected, parseLevel(level), level)
	}
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(WarnLevel, buf)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	l.Errorf("failed, %v", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 2)
	require.Equal(t, "WARN\tshown 2", lines[0])
	require.Equal(t, "ERROR\tfailed, boom", lines[1])
}

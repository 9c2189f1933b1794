package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a zap SugaredLogger writing plain console lines.
type Logger struct {
	*zap.SugaredLogger
}

// parseLevel maps 'level' to a zap level. Unknown levels log at info.
func parseLevel(level string) zapcore.Level {

	l, err := zapcore.ParseLevel(level)

	if err != nil {
		return zapcore.InfoLevel
	}

	return l
}

// New returns a Logger that writes messages at 'level' and above to 'wr'.
func New(level string, wr io.Writer) *Logger {

	enc_cfg := zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc_cfg),
		zapcore.Lock(zapcore.AddSync(wr)),
		parseLevel(level),
	)

	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}

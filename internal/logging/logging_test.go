package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewHonoursLevel(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := New("error", format)
		if err != nil {
			t.Fatalf("new %s: %v", format, err)
		}
		if logger.Core().Enabled(zapcore.WarnLevel) {
			t.Fatalf("%s logger should drop warn entries", format)
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Fatalf("%s logger should keep error entries", format)
		}
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		log, err := New(in)
		if err != nil {
			t.Fatalf("New(%q): %v", in, err)
		}
		if !log.Core().Enabled(want) {
			t.Fatalf("New(%q) must enable %v", in, want)
		}
		if want > zapcore.DebugLevel && log.Core().Enabled(want-1) {
			t.Fatalf("New(%q) must not enable %v", in, want-1)
		}
	}
}

func TestNew_UnknownLevelRejected(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Fatal("unknown level must be rejected")
	}
	if _, err := New(""); err == nil {
		t.Fatal("empty level must be rejected")
	}
}

//go:build !noebiten

package toolkit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTextLoggerWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := TextLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	logger.Warn("careful")
	logger.Error("failed", "code", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	for _, want := range []string{"msg=shown key=value", "level=WARN msg=careful", "level=ERROR msg=failed code=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerConstructors(t *testing.T) {
	loggers := []Logger{DefaultLogger(), DebugLogger(), NopLogger(), NewSlogAdapter(nil)}
	for _, l := range loggers {
		if l == nil {
			t.Fatal("logger constructor returned nil")
		}
	}
	NopLogger().Error("discarded", "k", 1)
}

package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSharedHelpers(t *testing.T) {
	t.Run("NewLogger writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain 'hello', got %q", buf.String())
		}
	})

	t.Run("NewLogger defaults writer to stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("WithLogger attaches key values", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "job", "abc123")
		child.Info("tick")

		if !strings.Contains(buf.String(), "abc123") {
			t.Errorf("expected child logger output to carry job key, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters below threshold", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("quiet")

		if strings.Contains(buf.String(), "quiet") {
			t.Errorf("expected info line to be filtered, got %q", buf.String())
		}
	})

	t.Run("GenerateID returns unique values", func(t *testing.T) {
		a, b := GenerateID(), GenerateID()
		if a == "" || a == b {
			t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
		}
	})

	t.Run("MarshalJSON pretty prints", func(t *testing.T) {
		data, err := MarshalJSON(map[string]int{"total": 3}, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), "\n") {
			t.Error("expected indented output")
		}
	})
}

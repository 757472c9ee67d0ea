package logger

import (
	"bytes"
	"os"
	"testing"
)

func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose mode enabled")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose mode disabled")
	}
}

func TestDebugSuppressedWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestOutputFormats(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("d %s", "x")
	Info("i %s", "y")
	Warn("w %s", "z")
	Section("Pipeline")

	out := buf.String()
	for _, want := range []string{"[DEBUG] d x", "[INFO] i y", "[WARN] w z", "=== Pipeline ==="} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

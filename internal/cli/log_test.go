package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	p := newProgress(logger)
	p.done("Scanned 42 packages")

	out := buf.String()
	if !strings.Contains(out, "Scanned 42 packages") {
		t.Errorf("output missing message: %q", out)
	}
	// The elapsed duration is appended in parentheses
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("output missing duration: %q", out)
	}
}

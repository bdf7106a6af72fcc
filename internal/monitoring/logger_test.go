package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var captured string
	SetLogger(func(format string, v ...interface{}) {
		captured = fmt.Sprintf(format, v...)
	})

	Logf("skipping figure %s: %s", "empty_scatter", "no plottable data")
	if captured != "skipping figure empty_scatter: no plottable data" {
		t.Errorf("unexpected log output: %q", captured)
	}
}

func TestSetLoggerNilMutes(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	Logf("muted %d", 1)
}

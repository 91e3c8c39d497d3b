package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestProgressPrinterLifecycle(t *testing.T) {
	printer := newProgressPrinter(0, "suite")
	if printer.total != 1 {
		t.Fatalf("expected total to be clamped to 1, got %d", printer.total)
	}

	output := captureStdout(t, func() {
		printer.Start()
		printer.Record("ok", 0.5)
		printer.Record("error", 1.0)
		printer.Record("skipped", 0.0)
		time.Sleep(350 * time.Millisecond) // allow ticker to tick at least once
		printer.Stop()
		time.Sleep(50 * time.Millisecond) // ensure loop goroutine exits
	})

	if !strings.Contains(output, "Progress: 3/3") {
		t.Fatalf("expected summary progress, got %q", output)
	}
	if !strings.Contains(output, "OK:1") || !strings.Contains(output, "Fail:1") || !strings.Contains(output, "Skip:1") {
		t.Fatalf("expected status counts in output, got %q", output)
	}
	if !strings.Contains(output, "Avg:0.50s") {
		t.Fatalf("expected average duration in output, got %q", output)
	}
}

func TestProgressPrinterStopIsIdempotent(t *testing.T) {
	printer := newProgressPrinter(2, "suite")

	_ = captureStdout(t, func() {
		printer.Start()
		printer.Record("ok", 0.1)
		printer.Stop()
		printer.Stop()
	})
}

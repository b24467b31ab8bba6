package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner(context.Background(), "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not mark the spinner cancelled")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerDrawsOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "Building...")
	s.out = &buf
	s.enabled = false
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("disabled spinner wrote %q", buf.String())
	}

	buf.Reset()
	s = newSpinner(context.Background(), "Building...")
	s.out = &buf
	s.enabled = true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Update("Observing...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	out := buf.String()
	if !strings.Contains(out, "Building...") || !strings.Contains(out, "Observing...") {
		t.Errorf("spinner output = %q, want both messages", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	out := captureOutput(t)

	s := newSpinner(context.Background(), "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinner(context.Background(), "Testing error...")
	s.Start()
	s.StopWithError("Failed!")

	if !strings.Contains(out.String(), "Done!") || !strings.Contains(out.String(), "Failed!") {
		t.Errorf("output = %q", out.String())
	}
}

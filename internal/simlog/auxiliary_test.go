package simlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sgino209/uarch-simtb/internal/kernel"
)

type fixedClock kernel.Time

func (c fixedClock) Now() kernel.Time { return kernel.Time(c) }

func TestAuxiliary_MessageFormat(t *testing.T) {
	var buf bytes.Buffer
	a := New(fixedClock(12.5), &buf, false)

	a.Message("CPU", "hello")

	got := strings.TrimSpace(buf.String())
	want := "[12.50 ns] [CPU] hello"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAuxiliary_DebugSuppressedWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	a := New(fixedClock(0), &buf, false)

	a.Debug("CPU", "should not appear")

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestAuxiliary_DebugEmittedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	a := New(fixedClock(3), &buf, true)

	a.Debug("PCIE", "burst started")

	got := strings.TrimSpace(buf.String())
	want := "[3.00 ns] [PCIE] burst started"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAuxiliary_ErrorReturnsFatal(t *testing.T) {
	var buf bytes.Buffer
	a := New(fixedClock(1), &buf, false)

	err := a.Error("fabric", "unknown target")
	if err == nil {
		t.Fatal("expected a non-nil error")
	}
	if !errors.Is(err, kernel.ErrFatal) {
		t.Fatal("expected the error to wrap kernel.ErrFatal")
	}
}

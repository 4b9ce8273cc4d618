package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_DefaultTestbenchSucceeds(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-duration", "200"}, &out)
	if code != 0 {
		t.Fatalf("run() = %d, want 0; output:\n%s", code, out.String())
	}
}

func TestRun_RejectsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-not_a_flag"}, &out)
	if code != 2 {
		t.Fatalf("run() = %d, want 2 for a CLI parse error", code)
	}
}

func TestRun_HelpExitsZero(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-h"}, &out)
	if code != 0 {
		t.Fatalf("run() = %d, want 0 for -h", code)
	}
}

func TestRun_DebugEnablesDebugLines(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-duration", "50", "-debug_en"}, &out)
	if code != 0 {
		t.Fatalf("run() = %d, want 0; output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "Created with params") {
		t.Fatalf("expected debug-level construction logs in output, got:\n%s", out.String())
	}
}

package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestCSVReporter_WritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	r := NewCSVReporter(&buf)

	r.Record(Sample{Series: "link_state", At: 10, Value: 2})
	r.Record(Sample{Series: "buffer_fullness", At: 10, Value: 3})

	if err := r.Close(); err != nil {
		t.Fatalf("Close() returned %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d: %v", len(lines), lines)
	}
	if lines[0] != "series,time_ns,value" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "link_state,10.00,2" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestNopReporter_DiscardsSilently(t *testing.T) {
	var r NopReporter
	r.Record(Sample{Series: "x", At: 1, Value: 1})
	if err := r.Close(); err != nil {
		t.Fatalf("Close() returned %v", err)
	}
}

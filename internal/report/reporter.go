package report

import "github.com/sgino209/uarch-simtb/internal/kernel"

// Sample is one (series, time, value) observation, matching one append to
// one of link_sim.py's Link-instance arrays (link_state, buffer_fullness,
// consumer_bw, ...).
type Sample struct {
	Series string
	At     kernel.Time
	Value  float64
}

// Reporter is the sink every sampled series in internal/linkcore writes
// through; internal/fabriccore does not use it. A Reporter never blocks the
// scheduler: Record must be
// safe to call from inside an event callback.
type Reporter interface {
	Record(s Sample)
	// Close flushes any buffered output. Called once, after Run returns.
	Close() error
}

// NopReporter discards every sample; it is the zero-cost default so a
// scenario test doesn't need to wire up a CSV sink just to run.
type NopReporter struct{}

func (NopReporter) Record(Sample) {}
func (NopReporter) Close() error  { return nil }

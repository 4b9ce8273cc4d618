package linkcore

import (
	"bytes"
	"math"
	"testing"

	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/report"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

func newTestAux(sch *kernel.Scheduler) *simlog.Auxiliary {
	return simlog.New(sch, &bytes.Buffer{}, true)
}

func TestNewLink_RejectsZeroFrequency(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	params := DefaultLinkParams()
	params.FreqGHz = 0

	if _, err := NewLink("Link", params, false, aux, NewStats(report.NopReporter{})); err == nil {
		t.Fatal("expected an error for FreqGHz <= 0")
	}
}

func TestNewLink_RejectsZeroBufferSize(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	params := DefaultLinkParams()
	params.BufferSize = 0

	if _, err := NewLink("Link", params, false, aux, NewStats(report.NopReporter{})); err == nil {
		t.Fatal("expected an error for BufferSize <= 0")
	}
}

func TestLink_IdleEntersHighPerfOnFirstItem(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	stats := NewStats(report.NopReporter{})

	params := DefaultLinkParams()
	params.FSMDelayCyc = 3
	params.FSMHighPerfMode = true

	link, err := NewLink("Link", params, false, aux, stats)
	if err != nil {
		t.Fatal(err)
	}
	link.Start(sch)
	link.Enqueue(sch, 1, func() {})

	sch.Run(2) // executes the decision cycle at t=1
	if link.State() != StateIdle {
		t.Fatalf("state = %s after the decision cycle, want still IDLE (not yet applied)", link.State())
	}

	sch.Run(5)
	if link.State() != State4Pack {
		t.Fatalf("state = %s after fsm_delay_cyc elapsed, want 4PACK", link.State())
	}
}

func TestLink_IdleEntersLowPerfWithoutHighPerfMode(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	stats := NewStats(report.NopReporter{})

	params := DefaultLinkParams()
	params.FSMDelayCyc = 1
	params.FSMHighPerfMode = false

	link, err := NewLink("Link", params, false, aux, stats)
	if err != nil {
		t.Fatal(err)
	}
	link.Start(sch)
	link.Enqueue(sch, 1, func() {})

	sch.Run(3)
	if link.State() != State1Pack {
		t.Fatalf("state = %s, want 1PACK (highperf disabled)", link.State())
	}
}

func TestLink_DowngradeAfterSustainedConsumerIdle(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	stats := NewStats(report.NopReporter{})

	params := DefaultLinkParams()
	params.FSMDelayCyc = 2
	params.AvgBWCyc[ScopeShort][State4Pack] = 10
	params.AvgBWCyc[ScopeLong][State4Pack] = 10
	params.AvgBWTrns[ScopeShort][State4Pack] = 10
	params.AvgBWTrns[ScopeLong][State4Pack] = 10

	link, err := NewLink("Link", params, false, aux, stats)
	if err != nil {
		t.Fatal(err)
	}
	link.state = State4Pack
	link.resetAvgBWWindow(sch, ScopeShort)
	link.resetAvgBWWindow(sch, ScopeLong)
	link.Start(sch)

	sch.Run(2) // executes the decision cycle at t=1
	if link.State() != State4Pack {
		t.Fatalf("state = %s on the decision cycle, want still 4PACK (not yet applied)", link.State())
	}

	sch.Run(4)
	if link.State() != State2Pack {
		t.Fatalf("state = %s after fsm_delay_cyc elapsed, want 2PACK", link.State())
	}
}

func TestLink_BypassNeverRunsFSM(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	stats := NewStats(report.NopReporter{})

	link, err := NewLink("Link_bypass", DefaultLinkParams(), true, aux, stats)
	if err != nil {
		t.Fatal(err)
	}
	link.Start(sch)
	link.Enqueue(sch, 1, func() {})

	sch.Run(1000)
	if link.State() != StateIdle {
		t.Fatalf("bypass link state = %s, want IDLE (the FSM never runs)", link.State())
	}
	if stats.cycles != 0 {
		t.Fatalf("bypass link recorded %d FSM cycles, want 0", stats.cycles)
	}
}

func TestLink_CanDequeueRateByState(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)
	stats := NewStats(report.NopReporter{})

	params := DefaultLinkParams()
	link, err := NewLink("Link", params, false, aux, stats)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		state State
		gbps  float64
	}{
		{State1Pack, params.AvgBW1Gbps},
		{State2Pack, params.AvgBW2Gbps},
		{State4Pack, params.AvgBW4Gbps},
		{StateIdle, params.AvgBW4Gbps},
	}
	for _, c := range cases {
		link.state = c.state
		want := (1000.0 / 8.0) / c.gbps
		got := float64(link.CanDequeue())
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("CanDequeue() at state %s = %v, want %v", c.state, got, want)
		}
	}
}

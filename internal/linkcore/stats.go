package linkcore

import (
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/report"
)

// Stats accumulates the per-cycle and per-dequeue observations
// link_sim.py collected into link_state/buffer_fullness/consumer_bw arrays
// for its end-of-run matplotlib section. The per-cycle and per-dequeue
// samples also stream to a report.Reporter as they are recorded (transition
// counts are only accumulated), so a long run never
// needs to hold the full history in memory just to produce a Summary.
type Stats struct {
	reporter report.Reporter

	cycles           int
	stateCycles      map[State]int
	transitionCounts map[string]int

	fullnessSum   int64
	fullnessCount int

	consumerQuota int
	consumerBWSum float64
	consumerBWN   int
}

// NewStats builds a Stats sink writing samples to r (report.NopReporter{}
// is a valid, zero-cost choice).
func NewStats(r report.Reporter) *Stats {
	return &Stats{
		reporter:         r,
		stateCycles:      make(map[State]int),
		transitionCounts: make(map[string]int),
	}
}

// recordCycle is link_sim.py.cycle's unconditional
// "self.link_state.append(self.state); self.buffer_fullness.append(len(self.store.items))",
// gated by "if not self.dummy" at the call site (a dummy/bypass link
// carries no FSM state worth tracing).
func (s *Stats) recordCycle(name string, at kernel.Time, state State, fullness int) {
	s.cycles++
	s.stateCycles[state]++
	s.fullnessSum += int64(fullness)
	s.fullnessCount++
	s.reporter.Record(report.Sample{Series: name + ".link_state", At: at, Value: float64(stateOrdinal(state))})
	s.reporter.Record(report.Sample{Series: name + ".buffer_fullness", At: at, Value: float64(fullness)})
}

// recordTransition is the conditional append to link_state that
// link_sim.py.cycle performs only "if transition" — i.e. only on the cycle
// a new pending update is decided, not on the cycle it is applied and never
// on a steady-state cycle.
func (s *Stats) recordTransition(transition string) {
	s.transitionCounts[transition]++
}

// recordDequeue is link_sim.py.consumer's mark_rate call: one instantaneous
// rate sample per completed dequeue.
func (s *Stats) recordDequeue(name string, at kernel.Time, rateGbps float64) {
	s.consumerQuota++
	s.consumerBWSum += rateGbps
	s.consumerBWN++
	s.reporter.Record(report.Sample{Series: name + ".consumer_bw_gbps", At: at, Value: rateGbps})
}

func stateOrdinal(s State) int {
	switch s {
	case StateIdle:
		return 0
	case State1Pack:
		return 1
	case State2Pack:
		return 2
	case State4Pack:
		return 4
	default:
		return -1
	}
}

// meanFullness returns the average buffer occupancy observed across every
// recorded cycle, matching link_sim.py's "np.mean(link.buffer_fullness)".
func (s *Stats) meanFullness() float64 {
	if s.fullnessCount == 0 {
		return 0
	}
	return float64(s.fullnessSum) / float64(s.fullnessCount)
}

// meanConsumerBW returns the average instantaneous dequeue rate,
// link_sim.py's "np.mean(link.consumer_bw)".
func (s *Stats) meanConsumerBW() float64 {
	if s.consumerBWN == 0 {
		return 0
	}
	return s.consumerBWSum / float64(s.consumerBWN)
}

package linkcore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// statePowerWeight is link_sim.py's per-state "Normalized Power" weight:
// wider pack modes cost proportionally more.
var statePowerWeight = map[State]int{
	StateIdle:  0,
	State1Pack: 1,
	State2Pack: 2,
	State4Pack: 4,
}

// transitionPowerWeight is link_sim.py's per-transition weight
// (fsm_delay_cyc * pack-count of the destination state, for the four
// upscale transitions listed). Transitions absent here — the upscale
// 1PACK_to_4PACK (reachable in high-performance mode after downgrading to
// 1PACK) and the downgrades 1PACK_to_IDLE, 2PACK_to_1PACK, 4PACK_to_2PACK —
// contribute zero extra power.
var transitionPowerWeight = map[string]int{
	"IDLE_to_4PACK":  4,
	"IDLE_to_1PACK":  1,
	"1PACK_to_2PACK": 2,
	"2PACK_to_4PACK": 4,
}

// Summary is the port of link_sim.py's end-of-run print/plot section,
// minus the plot: every number it would have rendered to a histogram is
// computed here instead and handed to simlog for the run's log output.
type Summary struct {
	Name               string
	Cycles             int
	MeanFullness       float64
	MeanConsumerBWGbps float64
	ConsumerQuota      int
	ProducerMeanBWGbps float64
	StateCycleCounts   map[State]int
	TransitionCounts   map[string]int
	NormalizedPower    float64
}

// ComputeSummary derives a Summary from stats, the link's configured
// parameters (for FSMDelayCyc) and the producer's parameters (for the
// demanded-bandwidth figure).
func ComputeSummary(name string, stats *Stats, linkParams LinkParams, producerParams ProducerParams) Summary {
	producerBW := 0.0
	if producerParams.IdlePsMean > 0 {
		producerBW = (1000.0 / 8.0) / producerParams.IdlePsMean * producerParams.Utilization
	}
	return Summary{
		Name:               name,
		Cycles:             stats.cycles,
		MeanFullness:       stats.meanFullness(),
		MeanConsumerBWGbps: stats.meanConsumerBW(),
		ConsumerQuota:      stats.consumerQuota,
		ProducerMeanBWGbps: producerBW,
		StateCycleCounts:   cloneStateCounts(stats.stateCycles),
		TransitionCounts:   cloneTransitionCounts(stats.transitionCounts),
		NormalizedPower:    normalizedPower(stats, linkParams.FSMDelayCyc),
	}
}

func normalizedPower(stats *Stats, fsmDelayCyc int) float64 {
	var power, powerTime float64
	for s, n := range stats.stateCycles {
		power += float64(statePowerWeight[s] * n)
		powerTime += float64(n)
	}
	for t, n := range stats.transitionCounts {
		power += float64(transitionPowerWeight[t] * fsmDelayCyc * n)
		powerTime += float64(fsmDelayCyc * n)
	}
	if powerTime == 0 {
		return 0
	}
	return power / powerTime
}

func cloneStateCounts(m map[State]int) map[State]int {
	out := make(map[State]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTransitionCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Log writes the summary through aux, one line per figure, replacing
// link_sim.py's print()+plt.show() ending.
func (s Summary) Log(aux *simlog.Auxiliary) {
	aux.Message(s.Name, fmt.Sprintf("cycles=%d mean_fullness=%.2f", s.Cycles, s.MeanFullness))
	aux.Message(s.Name, fmt.Sprintf("producer_mean_bw_gbps=%.3f consumer_mean_bw_gbps=%.3f consumer_quota=%d",
		s.ProducerMeanBWGbps, s.MeanConsumerBWGbps, s.ConsumerQuota))
	for _, state := range [4]State{StateIdle, State1Pack, State2Pack, State4Pack} {
		aux.Message(s.Name, fmt.Sprintf("state_cycles[%s]=%d", state, s.StateCycleCounts[state]))
	}
	for t, n := range s.TransitionCounts {
		aux.Message(s.Name, fmt.Sprintf("transitions[%s]=%d", t, n))
	}
	aux.Message(s.Name, fmt.Sprintf("normalized_power=%.4f", s.NormalizedPower))
}

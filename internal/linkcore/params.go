package linkcore

import "github.com/sgino209/uarch-simtb/internal/kernel"

// Scope distinguishes the two downgrade-evidence windows link_sim.py's
// Link tracks in parallel: a short window reacts quickly, a long window
// requires sustained idleness before corroborating it.
type Scope string

const (
	ScopeShort Scope = "short"
	ScopeLong  Scope = "long"
)

// DataAvlParams is one entry of link_sim.py's data_avl_trns_num/
// data_avl_cyc pair (keyed "avl1" or "avl2" at the call site): the buffer
// must hold at least TrnsNum items for Cyc consecutive cycles before the
// corresponding upscale-evidence condition latches.
type DataAvlParams struct {
	TrnsNum int
	Cyc     int
}

// LinkParams is the port of link_sim.py's main()'s link_params dict.
type LinkParams struct {
	FreqGHz float64

	BufferSize int

	AvgBW1Gbps float64
	AvgBW2Gbps float64
	AvgBW4Gbps float64

	// AvgBWTrns[scope][state] and AvgBWCyc[scope][state] are only ever
	// indexed by the three non-IDLE states (1PACK, 2PACK, 4PACK) — IDLE's
	// downgrade evidence is not evaluated, mirroring link_sim.py.cycle's
	// "if self.state != 'IDLE'" guard around the whole downgrade block.
	AvgBWTrns map[Scope]map[State]int
	AvgBWCyc  map[Scope]map[State]int

	// DataAvl is keyed "avl1" and "avl2", matching the CLI's
	// --data_avl_1_* / --data_avl_2_* flag pairs.
	DataAvl map[string]DataAvlParams

	FSMDelayCyc     int
	FSMHighPerfMode bool
}

// DefaultLinkParams returns link_sim.py's main() defaults.
func DefaultLinkParams() LinkParams {
	return LinkParams{
		FreqGHz:    1000,
		BufferSize: 50,
		AvgBW1Gbps: 64.0 / 4.0,
		AvgBW2Gbps: 64.0 / 2.0,
		AvgBW4Gbps: 64.0 / 1.0,
		AvgBWTrns: map[Scope]map[State]int{
			ScopeShort: {State1Pack: 4, State2Pack: 4, State4Pack: 4},
			ScopeLong:  {State1Pack: 10, State2Pack: 10, State4Pack: 10},
		},
		AvgBWCyc: map[Scope]map[State]int{
			ScopeShort: {State1Pack: 4, State2Pack: 15, State4Pack: 25},
			ScopeLong:  {State1Pack: 60, State2Pack: 60, State4Pack: 60},
		},
		DataAvl: map[string]DataAvlParams{
			"avl1": {TrnsNum: 5, Cyc: 15},
			"avl2": {TrnsNum: 20, Cyc: 2},
		},
		FSMDelayCyc:     35,
		FSMHighPerfMode: true,
	}
}

// CycStep returns the per-cycle simulated-time step, in picoseconds:
// 1000/FreqGHz, not truncated to an integer.
func (p LinkParams) CycStep() kernel.Duration {
	return kernel.Duration(1000.0 / p.FreqGHz)
}

// ProducerParams is the port of link_sim.py's main()'s producer_params
// dict.
type ProducerParams struct {
	IdlePsMean  float64
	IdlePsStd   float64
	Window      int
	Utilization float64
}

// DefaultProducerParams returns link_sim.py's main() defaults.
func DefaultProducerParams() ProducerParams {
	return ProducerParams{
		IdlePsMean:  4,
		IdlePsStd:   0.05,
		Window:      1200,
		Utilization: 0.7,
	}
}

// RunMode selects which of the gated/bypass link pair main()'s run_mode_t
// enum runs.
type RunMode int

const (
	RunModeBoth      RunMode = iota // dual_mode: gated and bypass side by side
	RunModeBypass                   // dummy_mode: bypass only
	RunModeNonBypass                // func_mode: gated only
)

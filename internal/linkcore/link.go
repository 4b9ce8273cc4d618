package linkcore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Link is the port of link_sim.py's Link class: a bounded buffer gated by
// a four-state pack-width FSM. Every cycle it gathers upscale evidence
// (sustained buffer occupancy) and downgrade evidence (sustained consumer
// idleness), decides at most one pending transition, and applies it
// fsm_delay_cyc cycles later.
type Link struct {
	name   string
	aux    *simlog.Auxiliary
	params LinkParams
	dummy  bool

	cycStep kernel.Duration
	buffer  *kernel.Store[uint64]
	stats   *Stats

	state State

	dataAvlCnt  map[string]int
	dataAvlCond map[string]bool

	avgBWCond     map[Scope]bool
	avgBWList     map[Scope][]int
	avgBWWinStart map[Scope]kernel.Time

	fsmPending      bool
	fsmPendingAt    kernel.Time
	fsmPendingState State

	hasLastDequeue bool
	lastDequeueAt  kernel.Time

	enqueueWhileIdle bool
}

// NewLink constructs a Link. dummy marks the bypass/reference link of a
// DualRun, which never evaluates the FSM and whose Consumer dequeues
// without waiting on CanDequeue (spec.md §4.8 "Bypass mode").
func NewLink(name string, p LinkParams, dummy bool, aux *simlog.Auxiliary, stats *Stats) (*Link, error) {
	if err := validateLinkParams(name, p); err != nil {
		return nil, kernel.Fatal(aux.Error(name, err.Error()))
	}
	l := &Link{
		name:          name,
		aux:           aux,
		params:        p,
		dummy:         dummy,
		cycStep:       p.CycStep(),
		buffer:        kernel.NewStore[uint64](p.BufferSize),
		stats:         stats,
		state:         StateIdle,
		dataAvlCnt:    map[string]int{"avl1": 0, "avl2": 0},
		dataAvlCond:   map[string]bool{"avl1": false, "avl2": false},
		avgBWCond:     map[Scope]bool{ScopeShort: false, ScopeLong: false},
		avgBWList:     map[Scope][]int{},
		avgBWWinStart: map[Scope]kernel.Time{ScopeShort: 0, ScopeLong: 0},
	}
	aux.Debug(l.name, fmt.Sprintf("Created with params: %+v", p))
	return l, nil
}

// State returns the link's current pack-width state.
func (l *Link) State() State { return l.state }

// Len returns the number of items currently resident in the buffer.
func (l *Link) Len() int { return l.buffer.Len() }

// Start begins the link's recurring FSM cycle (link_sim.py's main loop
// calling env.process(link.cycle(...)), here a self-rescheduling tick
// rather than a generator).
func (l *Link) Start(sch *kernel.Scheduler) {
	if l.dummy {
		// A bypass link never runs the FSM; its state stays IDLE forever,
		// and Consumer.tick skips CanDequeue() for it entirely.
		return
	}
	kernel.Recurring(sch, l.cycStep, l.cycle)
}

// Enqueue admits v into the buffer, suspending the caller (via resume)
// under backpressure exactly as Store.Put does. enqueue_while_idle latches
// once the item is actually resident and the link is (still) IDLE,
// matching link_sim.py.enqueue's post-put state check.
func (l *Link) Enqueue(sch *kernel.Scheduler, v uint64, resume func()) {
	l.buffer.Put(sch, v, func() {
		if l.state == StateIdle {
			l.enqueueWhileIdle = true
		}
		resume()
	})
}

// CanDequeue returns the per-byte inverse-rate timeout for the link's
// current state (spec.md §4.8 "Dequeue gating"). IDLE uses the 4PACK rate,
// matching can_dequeue()'s default branch.
func (l *Link) CanDequeue() kernel.Duration {
	gbps := l.params.AvgBW4Gbps
	switch l.state {
	case State1Pack:
		gbps = l.params.AvgBW1Gbps
	case State2Pack:
		gbps = l.params.AvgBW2Gbps
	}
	if gbps <= 0 {
		return kernel.Duration(1)
	}
	return kernel.Duration((1000.0 / 8.0) / gbps)
}

// Dequeue retrieves the head item, invoking onItem once it is available.
// Its callback stamps the link's last-dequeue cycle, consulted by the
// downgrade-evidence window.
func (l *Link) Dequeue(sch *kernel.Scheduler, onItem func(uint64)) {
	l.buffer.Get(sch, func(v uint64) {
		l.hasLastDequeue = true
		l.lastDequeueAt = sch.Now()
		onItem(v)
	})
}

// cycle is link_sim.py.cycle's body: upscale evidence, downgrade evidence,
// pending-transition application or new-transition decision, then the
// per-cycle stats sample. Gathering and applying happen in that order so a
// transition decided this cycle is based on evidence gathered this cycle,
// matching the original's single top-to-bottom pass.
func (l *Link) cycle(sch *kernel.Scheduler) {
	now := sch.Now()

	upscale := l.upscaleEvidence()
	downgrade := l.downgradeEvidence(sch)

	var transition string
	switch {
	case l.fsmPending && l.fsmPendingAt <= now:
		newState := l.fsmPendingState
		l.fsmPending = false
		l.aux.Debug(l.name, fmt.Sprintf("FSM transition applied: %s_to_%s", l.state, newState))
		l.state = newState
		l.resetAvgBWWindow(sch, ScopeShort)
		l.resetAvgBWWindow(sch, ScopeLong)
	case !l.fsmPending:
		if ns, ok := nextState(l.state, l.params.FSMHighPerfMode, l.buffer.Len() > 0 || l.enqueueWhileIdle, upscale, downgrade); ok {
			if l.state == StateIdle {
				l.enqueueWhileIdle = false
			}
			l.fsmPending = true
			l.fsmPendingAt = now.Add(kernel.Duration(l.params.FSMDelayCyc))
			l.fsmPendingState = ns
			transition = string(l.state) + "_to_" + string(ns)
			l.aux.Debug(l.name, fmt.Sprintf("FSM scheduled %s -> %s, applies at %.2f", l.state, ns, float64(l.fsmPendingAt)))
		}
	}

	if transition != "" {
		l.stats.recordTransition(transition)
	}
	l.stats.recordCycle(l.name, now, l.state, l.buffer.Len())
}

// upscaleEvidence implements spec.md §4.8's "Upscale evidence" paragraph.
func (l *Link) upscaleEvidence() bool {
	upscale := false
	for _, k := range [2]string{"avl1", "avl2"} {
		dap := l.params.DataAvl[k]
		if l.state != State4Pack {
			if l.buffer.Len() >= dap.TrnsNum {
				l.dataAvlCnt[k]++
			} else {
				l.dataAvlCnt[k] = 0
			}
			if l.dataAvlCnt[k] >= dap.Cyc {
				l.dataAvlCond[k] = true
				l.dataAvlCnt[k] = 0
			}
		}
		if l.dataAvlCond[k] {
			upscale = true
		}
	}
	return upscale
}

// downgradeEvidence implements spec.md §4.8's "Downgrade evidence"
// paragraph. It is only meaningful once the link has left IDLE — IDLE has
// no avg_bw_trns/avg_bw_cyc entry, mirroring link_sim.py.cycle's guard.
func (l *Link) downgradeEvidence(sch *kernel.Scheduler) bool {
	if l.state == StateIdle {
		return false
	}
	now := sch.Now()
	for _, s := range [2]Scope{ScopeShort, ScopeLong} {
		winCyc := int(now.Sub(l.avgBWWinStart[s]))
		cyc := l.params.AvgBWCyc[s][l.state]
		if winCyc >= cyc {
			l.resetAvgBWWindow(sch, s)
			continue
		}
		bit := 0
		if l.hasLastDequeue && l.lastDequeueAt == now {
			bit = 1
		}
		l.appendWindowBit(s, winCyc, bit)
		l.avgBWCond[s] = sumInts(l.avgBWList[s]) < l.params.AvgBWTrns[s][l.state]
	}
	return l.avgBWCond[ScopeShort] && l.avgBWCond[ScopeLong] && !l.hasPendingUpscaleSignal()
}

// hasPendingUpscaleSignal mirrors spec.md §4.8's "downgrade = ... ∧
// ¬upscale": downgrade evidence alone never overrides a simultaneous
// upscale signal. upscaleEvidence has already run by the time this is
// consulted (cycle calls it first), so re-reading dataAvlCond is
// sufficient without re-running the evidence loop.
func (l *Link) hasPendingUpscaleSignal() bool {
	return l.dataAvlCond["avl1"] || l.dataAvlCond["avl2"]
}

// resetAvgBWWindow is link_sim.py.init_avg_bw: restarts the window at the
// current cycle, logs the just-finished window's average bandwidth for
// visibility, and reinitializes the new window to all-ones (so a state
// freshly entered is not immediately judged as under target).
func (l *Link) resetAvgBWWindow(sch *kernel.Scheduler, s Scope) {
	if prev := l.avgBWList[s]; len(prev) > 0 {
		gbps := (1000.0 / 8.0) * float64(sumInts(prev)) / float64(len(prev)*int(l.cycStep))
		l.aux.Debug(l.name, fmt.Sprintf("avg_bw[%s] window closed: %.3f Gbps", s, gbps))
	}
	l.avgBWWinStart[s] = sch.Now()
	l.avgBWCond[s] = false
	l.hasLastDequeue = false
	if l.state == StateIdle {
		l.avgBWList[s] = nil
		return
	}
	cyc := l.params.AvgBWCyc[s][l.state]
	window := make([]int, cyc)
	for i := range window {
		window[i] = 1
	}
	l.avgBWList[s] = window
}

// appendWindowBit writes bit at winCyc. resetAvgBWWindow pre-fills the
// window to its full length, so overwriting an existing slot is the usual
// path; winCyc equal to the window's length appends, and a winCyc further
// ahead grows the slice with zeros to fit.
func (l *Link) appendWindowBit(s Scope, winCyc, bit int) {
	w := l.avgBWList[s]
	switch {
	case winCyc == len(w):
		l.avgBWList[s] = append(w, bit)
	case winCyc >= 0 && winCyc < len(w):
		w[winCyc] = bit
	default:
		for len(w) <= winCyc {
			w = append(w, 0)
		}
		w[winCyc] = bit
		l.avgBWList[s] = w
	}
}

func sumInts(xs []int) int {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return sum
}

// validateLinkParams mirrors internal/fabriccore.NewArbiter's validation
// convention, catching a zero-rate/zero-frequency misconfiguration before
// it silently divides by zero deep inside cycle.
func validateLinkParams(name string, p LinkParams) error {
	if p.FreqGHz <= 0 {
		return &kernel.ConfigError{Component: name, Field: "FreqGHz", Message: "must be > 0"}
	}
	if p.BufferSize <= 0 {
		return &kernel.ConfigError{Component: name, Field: "BufferSize", Message: "must be > 0"}
	}
	return nil
}

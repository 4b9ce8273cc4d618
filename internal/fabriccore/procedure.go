package fabriccore

import (
	"fmt"

	"github.com/joeycumines/go-catrate"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Procedure is the port of Initiator_procedure.py: a bandwidth generator
// that bursts BURST_LENGTH beats of up to BURST_SIZE bytes, throttled by
// an outstanding-request credit limit and a moving bandwidth estimate,
// then idles for a uniform inter-burst gap.
type Procedure struct {
	name   string
	aux    *simlog.Auxiliary
	params config.ProcedureParams
	clk    kernel.Duration

	queue *Queue

	// initiator is the owning Initiator's registry name, carried in every
	// Request's Src so the Fabric can route the ACK back to it.
	initiator string

	outstanding  int
	beat         int
	burstStart   kernel.Time
	payloadBytes int

	// limiter is an optional, opt-in wall-clock observability gate: unlike
	// the deterministic THR_IN_MBPS check below (computed from simulated
	// time and enforced every beat), go-catrate's Limiter reads real
	// system time internally, so it cannot be used to gate simulated
	// behavior without breaking the Determinism property spec.md §9
	// requires. It is wired here purely to flag, via a debug log, enqueue
	// bursts that would also trip a real-time rate limit — useful when
	// driving this simulator's event stream into a live system for replay
	// testing, never part of the simulation's own pass/fail logic.
	limiter *catrate.Limiter
}

// NewProcedure constructs a Procedure. limiter may be nil.
func NewProcedure(name string, p config.ProcedureParams, clk kernel.Duration, aux *simlog.Auxiliary, limiter *catrate.Limiter) *Procedure {
	proc := &Procedure{
		name:    name,
		aux:     aux,
		params:  p,
		clk:     clk,
		limiter: limiter,
	}
	proc.initiator = name
	aux.Debug(proc.name, fmt.Sprintf("Created with params: %+v", p))
	return proc
}

// BindQueue attaches the Queue this Procedure sends requests into,
// mirroring Initiator_procedure.py.bind_queue.
func (p *Procedure) BindQueue(q *Queue) { p.queue = q }

// Start schedules the first beat.
func (p *Procedure) Start(sch *kernel.Scheduler) {
	sch.Schedule(p.clk, p.tick)
}

func (p *Procedure) tick(sch *kernel.Scheduler) {
	if p.beat == 0 {
		p.payloadBytes = 0
		p.burstStart = sch.Now()
	}

	p.runBeat(sch)

	p.beat++
	if p.beat < p.params.BurstLength {
		sch.Schedule(p.clk, p.tick)
		return
	}

	p.beat = 0
	gap := kernel.Duration(sch.RNG().UniformInt(p.params.InterBursts[0], p.params.InterBursts[1]))
	sch.Schedule(gap, p.tick)
}

func (p *Procedure) runBeat(sch *kernel.Scheduler) {
	if p.outstanding >= p.params.Outstanding {
		p.aux.Debug(p.name, fmt.Sprintf("Stalled: reached maximum outstanding allocation (%d)", p.outstanding))
		return
	}

	bw := p.averageBandwidth(sch.Now())
	if bw >= p.params.ThrInMbps {
		p.aux.Debug(p.name, fmt.Sprintf("Stalled: reached maximum BW allocation (%.02fMBPS)", bw))
		return
	}

	dest := kernel.Choice(sch.RNG(), p.params.TargetOptions)
	p.sendRequest(sch, dest)
}

// averageBandwidth computes 1000*payload_bytes/(now-burst_start) MBps,
// using bytes actually enqueued this burst rather than bytes granted (the
// "cleaner definition" spec.md §9 allows as an alternative to the
// original's Grant-driven accounting — see DESIGN.md).
func (p *Procedure) averageBandwidth(now kernel.Time) float64 {
	elapsed := now.Sub(p.burstStart)
	if elapsed <= 0 {
		return 0
	}
	return 1000.0 * float64(p.payloadBytes) / float64(elapsed)
}

func (p *Procedure) sendRequest(sch *kernel.Scheduler, destination string) {
	p.aux.Debug(p.name, fmt.Sprintf("Request sent (outstanding: %d out of %d)", p.outstanding+1, p.params.Outstanding))

	req := Request{
		Operation: p.params.Direction,
		Src:       SourceRef{Initiator: p.initiator, Queue: p.params.Queue},
		Dst:       destination,
		Size:      p.params.BurstSize,
		AddrGen:   p.params.AddressGen,
		Timestamp: sch.Now(),
	}

	if p.queue.Enqueue(req) == "OK" {
		p.outstanding++
		p.payloadBytes += p.params.BurstSize
		if p.limiter != nil {
			// Allow's own "now" is time.Now(), not sch.Now(): this check
			// runs against real wall-clock elapsed time regardless of how
			// fast or slow the simulation is actually advancing.
			if _, ok := p.limiter.Allow(p.name); !ok {
				p.aux.Debug(p.name, "real-time rate observer: burst exceeds configured wall-clock rate")
			}
		}
	}
}

// HandleInterrupt implements kernel.Handler. The only cause a Procedure
// ever receives is Grant; anything else is fatal (spec.md §4.3 "Unknown
// interrupt -> fatal").
func (p *Procedure) HandleInterrupt(sch *kernel.Scheduler, cause kernel.Cause) {
	switch cause.(type) {
	case Grant:
		p.outstanding--
		p.aux.Debug(p.name, fmt.Sprintf("Grant received (outstanding: %d out of %d)", p.outstanding, p.params.Outstanding))
	default:
		sch.Abort(p.aux.Error(p.name, fmt.Sprintf("Unknown interrupt: %v", cause)))
	}
}

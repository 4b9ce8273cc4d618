package fabriccore

import (
	"fmt"
	"sort"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Fabric is the port of Fabric.py: the router between Initiators and
// Targets. It ticks every clock to drive the Arbiter's current grant out to
// initiator sockets, and handles four interrupts that, together, carry one
// request from an initiator's queue to a target and its acknowledgement
// back: InitiatorDequeue, SocketGranted, MessageForTarget, AckFromTarget.
type Fabric struct {
	name string
	aux  *simlog.Auxiliary
	clk  kernel.Duration

	self kernel.ActorID

	// queues indexes every initiator's queues by (initiator name, queue
	// name), mirroring Fabric.py's self.queues[initiator_name][queue_name].
	queues map[string]map[string]*Queue
	// queueNames is queues' keys pre-sorted, for deterministic dequeue
	// ordering on a SocketGranted (Fabric.py relies on Python dict
	// insertion order for this iteration; Go map order is randomized, so
	// this is recorded explicitly at construction time instead).
	queueNames map[string][]string

	sockets map[string]kernel.ActorID // by socket name
	targets map[string]kernel.ActorID // by target name

	arbiter *Arbiter
}

// NewFabric constructs a Fabric. Its own ActorID is not known yet at this
// point (the scheduler only assigns one once the Fabric itself is passed to
// Spawn as a Handler), so callers must follow construction with SetSelf
// once that ID comes back.
func NewFabric(name string, p config.FabricParams, aux *simlog.Auxiliary) *Fabric {
	clk := kernel.Duration(1000.0 / p.FrequencyMHz)
	f := &Fabric{
		name:       "Fabric_" + name,
		aux:        aux,
		clk:        clk,
		queues:     make(map[string]map[string]*Queue),
		queueNames: make(map[string][]string),
		sockets:    make(map[string]kernel.ActorID),
		targets:    make(map[string]kernel.ActorID),
	}
	aux.Debug(f.name, fmt.Sprintf("Created with params: %+v", p))
	return f
}

// SetSelf records the ActorID this Fabric was registered under, for
// embedding in DeliverToTarget causes so Targets can address their
// acknowledgement back without holding a direct reference (spec.md §9
// "Cyclic references").
func (f *Fabric) SetSelf(id kernel.ActorID) { f.self = id }

// BindSocket registers a socket's ActorID under its own name.
func (f *Fabric) BindSocket(name string, id kernel.ActorID) { f.sockets[name] = id }

// BindTarget registers a target's ActorID under its own name.
func (f *Fabric) BindTarget(name string, id kernel.ActorID) { f.targets[name] = id }

// BindInitiatorQueues registers every queue belonging to initiator, so a
// SocketGranted for that initiator can dequeue each of them in turn.
func (f *Fabric) BindInitiatorQueues(initiator string, queues map[string]*Queue) {
	f.queues[initiator] = queues
	names := make([]string, 0, len(queues))
	for n := range queues {
		names = append(names, n)
	}
	sort.Strings(names)
	f.queueNames[initiator] = names
}

// BindArbiter attaches the Arbiter whose current grant drives initiator
// socket SetGrant calls each tick.
func (f *Fabric) BindArbiter(a *Arbiter) { f.arbiter = a }

// Start schedules the fabric's recurring grant-distribution tick.
func (f *Fabric) Start(sch *kernel.Scheduler) {
	kernel.Recurring(sch, f.clk, f.tick)
}

func (f *Fabric) tick(sch *kernel.Scheduler) {
	granted := f.arbiter.GrantedInitiator()
	for name, id := range f.sockets {
		// setGrant stands in for Fabric.py.run's direct socket.set_grant()
		// call: Sockets receive it through their Handler instead, since
		// the Fabric only ever holds a socket's ActorID (spec.md §9).
		sch.Interrupt(id, setGrant{granted: name == granted})
	}
}

// setGrant is an internal cause (not exported: only Fabric ever sends it)
// carrying the Arbiter's per-tick decision to every socket, standing in for
// Fabric.py.run's direct `socket.set_grant(...)` call.
type setGrant struct {
	kernel.CauseBase
	granted bool
}

// HandleInterrupt implements kernel.Handler for the four request-path
// causes Fabric.py.run's except branch switches on.
func (f *Fabric) HandleInterrupt(sch *kernel.Scheduler, cause kernel.Cause) {
	switch c := cause.(type) {
	case InitiatorDequeue:
		f.aux.Debug(f.name, fmt.Sprintf("Messaged received in Fabric: %+v", c.Req))
		dst, ok := f.sockets[c.Req.Dst]
		if !ok {
			sch.Abort(f.aux.Error(f.name, fmt.Sprintf("Invalid destination socket %q", c.Req.Dst)))
			return
		}
		sch.Interrupt(dst, MessageForTarget{Req: c.Req})

	case SocketGranted:
		for _, queueName := range f.queueNames[c.Initiator] {
			f.aux.Debug(f.name, fmt.Sprintf("Dequeue from %s", queueName))
			q := f.queues[c.Initiator][queueName]
			q.Dequeue(sch, f.self)
		}

	case MessageForTarget:
		f.aux.Debug(f.name, "Passing the message to Target socket")
		tgt, ok := f.targets[c.Req.Dst]
		if !ok {
			sch.Abort(f.aux.Error(f.name, fmt.Sprintf("Invalid destination target %q", c.Req.Dst)))
			return
		}
		sch.Interrupt(tgt, DeliverToTarget{Req: c.Req, FabricID: f.self})

	case AckFromTarget:
		f.aux.Debug(f.name, fmt.Sprintf("ACK received from Target %q", c.Target))
		init, ok := sch.Lookup(c.Initiator)
		if !ok {
			sch.Abort(f.aux.Error(f.name, fmt.Sprintf("Invalid initiator %q", c.Initiator)))
			return
		}
		sch.Interrupt(init, c)

	default:
		sch.Abort(f.aux.Error(f.name, fmt.Sprintf("Invalid interrupt %v", cause)))
	}
}

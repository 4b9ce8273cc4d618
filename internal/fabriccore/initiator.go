package fabriccore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Initiator is the port of Initiator_process.py: the composition of one or
// more Procedures (bandwidth generators) over one or more Queues, plus a
// periodic fullness report and the handler for ACK_FROM_TARGET.
type Initiator struct {
	name string
	aux  *simlog.Auxiliary
	clk  kernel.Duration

	procedures map[string]*Procedure
	queues     map[string]*Queue
}

// NewInitiator constructs an Initiator with no procedures or queues bound
// yet; callers add them with AddProcedure/AddQueue and finish wiring with
// Wire.
func NewInitiator(name string, p config.InitiatorParams, aux *simlog.Auxiliary) *Initiator {
	i := &Initiator{
		name:       "Initiator_" + name,
		aux:        aux,
		clk:        kernel.Duration(1000.0 / p.FrequencyMHz),
		procedures: make(map[string]*Procedure),
		queues:     make(map[string]*Queue),
	}
	aux.Debug(i.name, fmt.Sprintf("Created with params: %+v", p))
	return i
}

// AddProcedure registers a constructed Procedure under its configuration
// name (Initiator_process.py's self.procedures[procedure_name]).
func (i *Initiator) AddProcedure(name string, p *Procedure) { i.procedures[name] = p }

// AddQueue registers a constructed Queue under its configuration name.
func (i *Initiator) AddQueue(name string, q *Queue) { i.queues[name] = q }

// Queues returns the Initiator's queues, for Fabric.BindInitiatorQueues
// (Initiator_process.py.get_queues).
func (i *Initiator) Queues() map[string]*Queue { return i.queues }

// Wire binds every procedure to its configured queue, both directions:
// the procedure learns which Queue to enqueue into, and the queue learns
// which ActorID to Grant. procedureIDs must carry an ActorID for every key
// also present in i.procedures (the scheduler registration for each
// Procedure, done by the caller before Wire since Spawn needs the
// *Procedure as a kernel.Handler first).
//
// The Grant-routing key is deliberately the procedure's configured queue
// name, not the procedure's own name — see Queue.BindProcedure's comment
// for why this diverges from Initiator_process.py's literal
// queue.bind_procedure(procedure_name, ...) call.
func (i *Initiator) Wire(params map[string]config.ProcedureParams, procedureIDs map[string]kernel.ActorID) {
	for name, pp := range params {
		proc := i.procedures[name]
		q := i.queues[pp.Queue]
		proc.BindQueue(q)
		q.BindProcedure(pp.Queue, procedureIDs[name])
	}
}

// Start schedules every bound procedure's first tick and this initiator's
// own recurring fullness-report tick.
func (i *Initiator) Start(sch *kernel.Scheduler) {
	for _, p := range i.procedures {
		p.Start(sch)
	}
	kernel.Recurring(sch, i.clk, i.tick)
}

func (i *Initiator) tick(sch *kernel.Scheduler) {
	for name, q := range i.queues {
		i.aux.Debug(i.name, fmt.Sprintf("Queue %q fullness: %d / %d", name, q.Fullness(), q.Capacity()))
	}
}

// HandleInterrupt implements kernel.Handler. Only AckFromTarget ever
// reaches an Initiator (Procedures have their own Handler for Grant).
func (i *Initiator) HandleInterrupt(sch *kernel.Scheduler, cause kernel.Cause) {
	switch c := cause.(type) {
	case AckFromTarget:
		i.aux.Debug(i.name, fmt.Sprintf("ACK received from %s", c.Target))
	default:
		sch.Abort(i.aux.Error(i.name, fmt.Sprintf("Unknown interrupt: %v", cause)))
	}
}

package fabriccore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Target is the port of Target_process.py: a single-tick actor (SRAM, ROM,
// etc.) that, on delivery, immediately acknowledges back through the
// Fabric ActorID carried on the DeliverToTarget cause.
type Target struct {
	name string
	aux  *simlog.Auxiliary
	clk  kernel.Duration
}

// NewTarget constructs a Target.
func NewTarget(name string, p config.TargetParams, aux *simlog.Auxiliary) *Target {
	t := &Target{
		name: "Target_" + name,
		aux:  aux,
		clk:  kernel.Duration(1000.0 / p.FrequencyMHz),
	}
	aux.Debug(t.name, fmt.Sprintf("Created with params: %+v", p))
	return t
}

// Start schedules the target's recurring (otherwise empty) tick, matching
// Target_process.py.run's bare `yield self.env.timeout(self.clk_ns)` loop
// body.
func (t *Target) Start(sch *kernel.Scheduler) {
	kernel.Recurring(sch, t.clk, func(*kernel.Scheduler) {})
}

// HandleInterrupt implements kernel.Handler.
func (t *Target) HandleInterrupt(sch *kernel.Scheduler, cause kernel.Cause) {
	switch c := cause.(type) {
	case DeliverToTarget:
		t.aux.Debug(t.name, fmt.Sprintf("Message Received: %+v", c.Req))
		sch.Interrupt(c.FabricID, AckFromTarget{Target: t.name, Initiator: c.Req.Src.Initiator})
	default:
		sch.Abort(t.aux.Error(t.name, fmt.Sprintf("Unknown interrupt: %v", cause)))
	}
}

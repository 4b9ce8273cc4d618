package fabriccore

import (
	"fmt"
	"sort"

	"github.com/joeycumines/go-catrate"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Testbench is the composition root replacing main.py's hand-assembled tb
// dict: it builds every Initiator, Target, Socket, the Arbiter and the
// Fabric from a config.Testbench, wires them together through the
// scheduler's registry, and schedules their recurring ticks.
type Testbench struct {
	sch *kernel.Scheduler
	aux *simlog.Auxiliary

	Initiators map[string]*Initiator
	Targets    map[string]*Target
	Sockets    map[string]*Socket
	Arbiter    *Arbiter
	Fabric     *Fabric
}

// Build constructs and wires a complete Testbench. limiter, if non-nil, is
// threaded into every Procedure as the optional real-time observability
// gate described in procedure.go; pass nil to skip it entirely.
func Build(sch *kernel.Scheduler, cfg config.Testbench, aux *simlog.Auxiliary, limiter *catrate.Limiter) (*Testbench, error) {
	tb := &Testbench{
		sch:        sch,
		aux:        aux,
		Initiators: make(map[string]*Initiator),
		Targets:    make(map[string]*Target),
		Sockets:    make(map[string]*Socket),
	}

	fabricClk := kernel.Duration(1000.0 / cfg.Fabric.FrequencyMHz)

	tb.Fabric = NewFabric("main", cfg.Fabric, aux)
	fabricID, err := sch.Spawn("Fabric_main", tb.Fabric)
	if err != nil {
		return nil, err
	}
	tb.Fabric.SetSelf(fabricID)

	for name, tp := range cfg.Targets {
		target := NewTarget(name, tp, aux)
		id, err := sch.Spawn(target.name, target)
		if err != nil {
			return nil, err
		}
		tb.Targets[name] = target
		tb.Fabric.BindTarget(name, id)
	}

	for name, ip := range cfg.Initiators {
		initClk := kernel.Duration(1000.0 / ip.FrequencyMHz)
		initiator := NewInitiator(name, ip, aux)

		for qName, qp := range ip.Queues {
			q := NewQueue(fmt.Sprintf("%s_%s", name, qName), qp, aux)
			initiator.AddQueue(qName, q)
		}

		procedureIDs := make(map[string]kernel.ActorID, len(ip.Procedures))
		for pName, pp := range ip.Procedures {
			proc := NewProcedure(fmt.Sprintf("%s_%s", name, pName), pp, initClk, aux, limiter)
			proc.initiator = name
			initiator.AddProcedure(pName, proc)
			id, err := sch.Spawn(fmt.Sprintf("Procedure_%s_%s", name, pName), proc)
			if err != nil {
				return nil, err
			}
			procedureIDs[pName] = id
		}
		initiator.Wire(ip.Procedures, procedureIDs)

		if _, err := sch.Spawn(name, initiator); err != nil {
			return nil, err
		}
		tb.Initiators[name] = initiator
		tb.Fabric.BindInitiatorQueues(name, initiator.Queues())
	}

	for sName, sp := range cfg.Fabric.Sockets {
		socket := NewSocket(sName, sp, fabricClk, fabricID, aux)
		id, err := sch.Spawn(socket.name, socket)
		if err != nil {
			return nil, err
		}
		tb.Sockets[sName] = socket
		tb.Fabric.BindSocket(sName, id)
	}

	initiatorNames := make([]string, 0, len(cfg.Initiators))
	for name := range cfg.Initiators {
		initiatorNames = append(initiatorNames, name)
	}
	sort.Strings(initiatorNames)

	arbiter, err := NewArbiter(cfg.Fabric.Arbiter, fabricClk, initiatorNames, sch.RNG(), aux)
	if err != nil {
		return nil, err
	}
	tb.Arbiter = arbiter
	tb.Fabric.BindArbiter(arbiter)

	return tb, nil
}

// Start schedules every actor's recurring behavior. Call once, after
// Build, before sch.Run.
func (tb *Testbench) Start(sch *kernel.Scheduler) {
	tb.Fabric.Start(sch)
	tb.Arbiter.Start(sch)
	for _, s := range tb.Sockets {
		s.Start(sch)
	}
	for _, t := range tb.Targets {
		t.Start(sch)
	}
	for _, i := range tb.Initiators {
		i.Start(sch)
	}
}


package fabriccore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Arbiter is the port of Fabric_arbiter.py: a round-robin rotation over
// the testbench's initiators, one slot every SlotLength, starting at
// either the first initiator or a random one.
type Arbiter struct {
	name       string
	aux        *simlog.Auxiliary
	params     config.ArbiterParams
	clk        kernel.Duration
	initiators []string
	granted    int
}

// NewArbiter constructs an Arbiter. initiators must be given in a stable,
// deterministic order (map iteration in Go is randomized, so callers must
// sort the testbench's initiator names before passing them here — unlike
// Python's dict, which the original relied on preserving insertion order).
// clk is the fabric's own per-cycle duration (1000/FREQUENCY_MHZ, the same
// value NewSocket takes): SlotLength is a count of fabric cycles, not a
// duration in its own right (spec.md's worked example: SLOT_LENGTH=5,
// FREQUENCY_MHZ=200 rotates every 5 ticks of 5 ns, i.e. every 25 ns).
func NewArbiter(p config.ArbiterParams, clk kernel.Duration, initiators []string, rng *kernel.RNG, aux *simlog.Auxiliary) (*Arbiter, error) {
	a := &Arbiter{
		name:       "Fabric_arbiter",
		aux:        aux,
		params:     p,
		clk:        clk,
		initiators: initiators,
	}
	aux.Debug(a.name, fmt.Sprintf("Created with params: %+v", p))

	switch p.StartAt {
	case config.StartAtFirst:
		a.granted = 0
	case config.StartAtRandom:
		a.granted = rng.IntN(len(initiators))
	default:
		return nil, kernel.Fatal(aux.Error(a.name, fmt.Sprintf("Invalid START_AT value: %q", p.StartAt)))
	}

	return a, nil
}

// GrantedInitiator returns the name of the initiator currently holding the
// grant.
func (a *Arbiter) GrantedInitiator() string {
	return a.initiators[a.granted]
}

// Start schedules the arbiter's recurring rotation.
func (a *Arbiter) Start(sch *kernel.Scheduler) {
	kernel.Recurring(sch, a.params.SlotLength*a.clk, a.tick)
}

func (a *Arbiter) tick(sch *kernel.Scheduler) {
	a.aux.Debug(a.name, fmt.Sprintf("Slot #%s (%d out of %d) granted",
		a.GrantedInitiator(), a.granted, len(a.initiators)))
	a.granted = (a.granted + 1) % len(a.initiators)
}

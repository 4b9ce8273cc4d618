package config

import "github.com/sgino209/uarch-simtb/internal/kernel"

// DefaultTestbench reproduces main.py's inline CPU/PCIE initiators against
// SRAM/ROM targets, connected through a single DATA fabric — the
// reference configuration every fabriccore scenario test and
// cmd/fabricsim's default run is built from.
func DefaultTestbench() Testbench {
	return Testbench{
		Global: GlobalParams{
			DebugLevel:             false,
			SimulationTimeInCycles: 100000,
		},
		Fabric: FabricParams{
			FrequencyMHz: 1000,
			Sockets: map[string]SocketParams{
				"CPU":  {InitTgt: InitTgtInitiator},
				"PCIE": {InitTgt: InitTgtInitiator},
				"SRAM": {InitTgt: InitTgtTarget},
				"ROM":  {InitTgt: InitTgtTarget},
			},
			Arbiter: ArbiterParams{
				StartAt:    StartAtFirst,
				SlotLength: 10,
			},
		},
		Initiators: map[string]InitiatorParams{
			"CPU": {
				FrequencyMHz: 1000,
				Procedures: map[string]ProcedureParams{
					"MAIN": {
						Queue:         "Q0",
						Direction:     DirectionRead,
						BurstSize:     64,
						BurstLength:   4,
						Outstanding:   8,
						InterBursts:   [2]int{0, 20},
						ThrInMbps:     4000,
						TargetOptions: []string{"SRAM", "ROM"},
					},
				},
				Queues: map[string]QueueParams{
					"Q0": {Depth: 16, Width: 64},
				},
			},
			"PCIE": {
				FrequencyMHz: 500,
				Procedures: map[string]ProcedureParams{
					"MAIN": {
						Queue:         "Q0",
						Direction:     DirectionWrite,
						BurstSize:     32,
						BurstLength:   8,
						Outstanding:   4,
						InterBursts:   [2]int{0, 40},
						ThrInMbps:     1000,
						TargetOptions: []string{"SRAM"},
					},
				},
				Queues: map[string]QueueParams{
					"Q0": {Depth: 8, Width: 32},
				},
			},
		},
		Targets: map[string]TargetParams{
			"SRAM": {FrequencyMHz: 1000},
			"ROM":  {FrequencyMHz: 1000},
		},
	}
}

// Validate checks every invariant spec.md §7 calls out as a fatal
// configuration error and returns the first violation found as a
// *kernel.ConfigError, or nil if tb is well-formed.
func (tb Testbench) Validate() error {
	if tb.Global.SimulationTimeInCycles <= 0 {
		return &kernel.ConfigError{Component: "global", Field: "SimulationTimeInCycles", Message: "must be > 0"}
	}
	if tb.Fabric.FrequencyMHz <= 0 {
		return &kernel.ConfigError{Component: "fabric", Field: "FrequencyMHz", Message: "must be > 0"}
	}
	switch tb.Fabric.Arbiter.StartAt {
	case StartAtFirst, StartAtRandom:
	default:
		return &kernel.ConfigError{Component: "fabric.arbiter", Field: "StartAt", Message: "invalid value: " + string(tb.Fabric.Arbiter.StartAt)}
	}
	if tb.Fabric.Arbiter.SlotLength <= 0 {
		return &kernel.ConfigError{Component: "fabric.arbiter", Field: "SlotLength", Message: "must be > 0"}
	}
	for name, s := range tb.Fabric.Sockets {
		switch s.InitTgt {
		case InitTgtInitiator, InitTgtTarget:
		default:
			return &kernel.ConfigError{Component: "fabric.socket." + name, Field: "InitTgt", Message: "invalid value: " + string(s.InitTgt)}
		}
	}
	for name, init := range tb.Initiators {
		if init.FrequencyMHz <= 0 {
			return &kernel.ConfigError{Component: "initiator." + name, Field: "FrequencyMHz", Message: "must be > 0"}
		}
		for qname, q := range init.Queues {
			if q.Depth <= 0 {
				return &kernel.ConfigError{Component: "initiator." + name + ".queue." + qname, Field: "Depth", Message: "must be > 0"}
			}
			if q.Width <= 0 {
				return &kernel.ConfigError{Component: "initiator." + name + ".queue." + qname, Field: "Width", Message: "must be > 0"}
			}
		}
		for pname, p := range init.Procedures {
			if _, ok := init.Queues[p.Queue]; !ok {
				return &kernel.ConfigError{Component: "initiator." + name + ".procedure." + pname, Field: "Queue", Message: "references unknown queue " + p.Queue}
			}
			if p.BurstSize <= 0 {
				return &kernel.ConfigError{Component: "initiator." + name + ".procedure." + pname, Field: "BurstSize", Message: "must be > 0"}
			}
			if p.Outstanding <= 0 {
				return &kernel.ConfigError{Component: "initiator." + name + ".procedure." + pname, Field: "Outstanding", Message: "must be > 0"}
			}
			if p.InterBursts[1] < p.InterBursts[0] {
				return &kernel.ConfigError{Component: "initiator." + name + ".procedure." + pname, Field: "InterBursts", Message: "hi must be >= lo"}
			}
			if len(p.TargetOptions) == 0 {
				return &kernel.ConfigError{Component: "initiator." + name + ".procedure." + pname, Field: "TargetOptions", Message: "must name at least one target"}
			}
		}
	}
	for name, tgt := range tb.Targets {
		if tgt.FrequencyMHz <= 0 {
			return &kernel.ConfigError{Component: "target." + name, Field: "FrequencyMHz", Message: "must be > 0"}
		}
	}
	return nil
}

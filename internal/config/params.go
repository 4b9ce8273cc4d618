package config

import "github.com/sgino209/uarch-simtb/internal/kernel"

// GlobalParams is the port of include.py's global_params dict.
type GlobalParams struct {
	DebugLevel             bool
	SimulationTimeInCycles kernel.Time
}

// StartAt selects the arbiter's initial grant, mirroring
// Fabric_arbiter.py's self.params['START_AT'].
type StartAt string

const (
	StartAtFirst  StartAt = "FIRST"
	StartAtRandom StartAt = "RANDOM"
)

// ArbiterParams is the port of fabric_params['ARBITER'].
type ArbiterParams struct {
	StartAt    StartAt
	SlotLength kernel.Duration
}

// InitTgt distinguishes an initiator-facing socket from a target-facing
// one, mirroring Fabric_socket.py's self.params['INIT_TGT'].
type InitTgt string

const (
	InitTgtInitiator InitTgt = "initiator"
	InitTgtTarget    InitTgt = "target"
)

// SocketParams is the port of one entry of fabric_params['SOCKETS'].
type SocketParams struct {
	InitTgt InitTgt
}

// FabricParams is the port of include.py's fabric_params.
type FabricParams struct {
	FrequencyMHz float64
	Sockets      map[string]SocketParams
	Arbiter      ArbiterParams
}

// Direction is the port of Initiator_procedure.py's
// self.params['DIRECTION'] ('RD' or 'WR').
type Direction string

const (
	DirectionRead  Direction = "RD"
	DirectionWrite Direction = "WR"
)

// AddressGen selects how a procedure picks request addresses; ported from
// Initiator_procedure.py's self.params['ADDRESS_GEN'] (the exact generator
// schemes are a fabriccore concern, this just carries the selector).
type AddressGen string

// ProcedureParams is the port of one entry of
// initiators_params[name]['PROCEDURES'].
type ProcedureParams struct {
	Queue         string
	Direction     Direction
	BurstSize     int
	BurstLength   int
	Outstanding   int
	InterBursts   [2]int // [lo, hi] for the randint(0, INTER_BURSTS) gap, see spec.md §9
	ThrInMbps     float64
	AddressGen    AddressGen
	TargetOptions []string // destinations send_request may choose.choice() between
}

// QueueParams is the port of one entry of
// initiators_params[name]['QUEUES'], and of Initiator_queue.py's
// self.depth/self.width.
type QueueParams struct {
	Depth int
	Width int
}

// InitiatorParams is the port of one entry of include.py's
// initiators_params.
type InitiatorParams struct {
	FrequencyMHz float64
	Procedures   map[string]ProcedureParams
	Queues       map[string]QueueParams
}

// TargetParams is the port of one entry of include.py's targets_params.
type TargetParams struct {
	FrequencyMHz float64
}

// Testbench bundles every F-core configuration dictionary needed to build
// a fabriccore.Testbench, mirroring main.py's hand-assembled tb dict (minus
// the ENV/AUX entries, which are runtime, not configuration).
type Testbench struct {
	Global     GlobalParams
	Fabric     FabricParams
	Initiators map[string]InitiatorParams
	Targets    map[string]TargetParams
}

package fabriccore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

func minimalTestbenchConfig() config.Testbench {
	return config.Testbench{
		Global: config.GlobalParams{SimulationTimeInCycles: 2000},
		Fabric: config.FabricParams{
			FrequencyMHz: 1000,
			Sockets: map[string]config.SocketParams{
				"CPU":  {InitTgt: config.InitTgtInitiator},
				"SRAM": {InitTgt: config.InitTgtTarget},
			},
			Arbiter: config.ArbiterParams{StartAt: config.StartAtFirst, SlotLength: 5},
		},
		Initiators: map[string]config.InitiatorParams{
			"CPU": {
				FrequencyMHz: 1000,
				Queues: map[string]config.QueueParams{
					"rdq": {Depth: 8, Width: 64},
				},
				Procedures: map[string]config.ProcedureParams{
					"rd": {
						Queue:         "rdq",
						Direction:     config.DirectionRead,
						BurstSize:     64,
						BurstLength:   2,
						Outstanding:   4,
						InterBursts:   [2]int{5, 5},
						ThrInMbps:     1e9,
						TargetOptions: []string{"SRAM"},
					},
				},
			},
		},
		Targets: map[string]config.TargetParams{
			"SRAM": {FrequencyMHz: 1000},
		},
	}
}

func TestTestbench_EndToEndRequestReachesTargetAndAcks(t *testing.T) {
	sch := kernel.NewScheduler(kernel.WithSeed(1))
	var buf bytes.Buffer
	aux := simlog.New(sch, &buf, true)

	tb, err := Build(sch, minimalTestbenchConfig(), aux, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tb.Start(sch)

	sch.Run(200)

	if sch.Err() != nil {
		t.Fatalf("sch.Err() = %v, want nil", sch.Err())
	}

	log := buf.String()
	if !strings.Contains(log, "Message Received") {
		t.Fatalf("target never logged a received message; log:\n%s", log)
	}
	if !strings.Contains(log, "ACK received from") {
		t.Fatalf("initiator never logged an ACK; log:\n%s", log)
	}
}

func TestTestbench_QueueOverflowDoesNotAbort(t *testing.T) {
	cfg := minimalTestbenchConfig()
	rd := cfg.Initiators["CPU"].Procedures["rd"]
	// Two 256-byte requests fill the 8*64=512-byte queue; with Outstanding=4
	// and no inter-burst gap the procedure enqueues faster than the fabric's
	// one-request-per-tick dequeue, so a third request overflows.
	rd.BurstSize = 256
	rd.InterBursts = [2]int{0, 0}
	cfg.Initiators["CPU"].Procedures["rd"] = rd

	sch := kernel.NewScheduler(kernel.WithSeed(1))
	aux := simlog.New(sch, &bytes.Buffer{}, true)

	tb, err := Build(sch, cfg, aux, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tb.Start(sch)

	sch.Run(500)

	if sch.Err() != nil {
		t.Fatalf("sch.Err() = %v, want nil (overflow is counted, not fatal)", sch.Err())
	}
	if got := tb.Initiators["CPU"].Queues()["rdq"].Overflows(); got == 0 {
		t.Fatal("queue never overflowed; the scenario does not exercise overflow")
	}
}


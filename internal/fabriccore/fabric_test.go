package fabriccore

import (
	"testing"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
)

func TestFabric_SocketGrantedDequeuesEveryBoundQueue(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)

	f := NewFabric("main", config.FabricParams{FrequencyMHz: 1000}, aux)
	fabricID, _ := sch.Spawn("Fabric_main", f)
	f.SetSelf(fabricID)

	q1 := NewQueue("CPU_a", config.QueueParams{Depth: 4, Width: 64}, aux)
	q2 := NewQueue("CPU_b", config.QueueParams{Depth: 4, Width: 64}, aux)
	q1.Enqueue(Request{Size: 8, Src: SourceRef{Initiator: "CPU", Queue: "a"}, Dst: "SRAM"})
	q2.Enqueue(Request{Size: 8, Src: SourceRef{Initiator: "CPU", Queue: "b"}, Dst: "SRAM"})
	f.BindInitiatorQueues("CPU", map[string]*Queue{"a": q1, "b": q2})

	sockID, _ := sch.Spawn("Fabric_socket_SRAM", handlerFunc(func(s *kernel.Scheduler, c kernel.Cause) {}))
	f.BindSocket("SRAM", sockID)

	f.HandleInterrupt(sch, SocketGranted{Initiator: "CPU"})

	if len(q1.items) != 0 || len(q2.items) != 0 {
		t.Fatalf("expected both queues drained, got q1=%d q2=%d", len(q1.items), len(q2.items))
	}
}

func TestFabric_InitiatorDequeueForwardsToDestinationSocket(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)

	f := NewFabric("main", config.FabricParams{FrequencyMHz: 1000}, aux)
	fabricID, _ := sch.Spawn("Fabric_main", f)
	f.SetSelf(fabricID)

	var got kernel.Cause
	sockID, _ := sch.Spawn("Fabric_socket_SRAM", handlerFunc(func(s *kernel.Scheduler, c kernel.Cause) { got = c }))
	f.BindSocket("SRAM", sockID)

	req := Request{Dst: "SRAM"}
	f.HandleInterrupt(sch, InitiatorDequeue{Req: req})
	sch.Run(1)

	if _, ok := got.(MessageForTarget); !ok {
		t.Fatalf("socket received %T, want MessageForTarget", got)
	}
}

func TestFabric_InitiatorDequeueToUnknownSocketIsFatal(t *testing.T) {
	sch := kernel.NewScheduler()
	f := NewFabric("main", config.FabricParams{FrequencyMHz: 1000}, newTestAux(sch))
	fabricID, _ := sch.Spawn("Fabric_main", f)
	f.SetSelf(fabricID)

	f.HandleInterrupt(sch, InitiatorDequeue{Req: Request{Dst: "NOPE"}})

	if sch.Err() == nil {
		t.Fatal("expected sch.Err() to be set for an unknown destination socket")
	}
}

func TestFabric_AckFromTargetRelaysToInitiator(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)

	f := NewFabric("main", config.FabricParams{FrequencyMHz: 1000}, aux)
	fabricID, _ := sch.Spawn("Fabric_main", f)
	f.SetSelf(fabricID)

	var got kernel.Cause
	sch.Spawn("CPU", handlerFunc(func(s *kernel.Scheduler, c kernel.Cause) { got = c }))

	f.HandleInterrupt(sch, AckFromTarget{Target: "Target_SRAM", Initiator: "CPU"})
	sch.Run(1)

	if _, ok := got.(AckFromTarget); !ok {
		t.Fatalf("initiator received %T, want AckFromTarget", got)
	}
}

package fabriccore

import (
	"testing"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
)

func TestSocket_TargetStartsGranted(t *testing.T) {
	sch := kernel.NewScheduler()
	s := NewSocket("SRAM", config.SocketParams{InitTgt: config.InitTgtTarget}, 1, 0, newTestAux(sch))
	if !s.granted {
		t.Fatal("a target socket must start granted")
	}
}

func TestSocket_InitiatorStartsUngranted(t *testing.T) {
	sch := kernel.NewScheduler()
	s := NewSocket("CPU", config.SocketParams{InitTgt: config.InitTgtInitiator}, 1, 0, newTestAux(sch))
	if s.granted {
		t.Fatal("an initiator socket must start ungranted")
	}
}

func TestSocket_TickRaisesSocketGrantedOnlyWhenInitiatorAndGranted(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)

	var got kernel.Cause
	fabricID, _ := sch.Spawn("fabric", handlerFunc(func(s *kernel.Scheduler, c kernel.Cause) { got = c }))

	s := NewSocket("CPU", config.SocketParams{InitTgt: config.InitTgtInitiator}, 1, fabricID, aux)
	s.SetGrant(true)
	s.Start(sch)

	sch.Run(2)

	sg, ok := got.(SocketGranted)
	if !ok {
		t.Fatalf("fabric received %T, want SocketGranted", got)
	}
	if sg.Initiator != "CPU" {
		t.Fatalf("SocketGranted.Initiator = %q, want CPU", sg.Initiator)
	}
}

func TestSocket_InitiatorReceivingMessageForTargetIsFatal(t *testing.T) {
	sch := kernel.NewScheduler()
	s := NewSocket("CPU", config.SocketParams{InitTgt: config.InitTgtInitiator}, 1, 0, newTestAux(sch))

	s.HandleInterrupt(sch, MessageForTarget{})

	if sch.Err() == nil {
		t.Fatal("an initiator socket receiving MessageForTarget must abort the scheduler")
	}
}

func TestSocket_TargetForwardsMessageForTargetToFabric(t *testing.T) {
	sch := kernel.NewScheduler()
	aux := newTestAux(sch)

	var got kernel.Cause
	fabricID, _ := sch.Spawn("fabric", handlerFunc(func(s *kernel.Scheduler, c kernel.Cause) { got = c }))

	s := NewSocket("SRAM", config.SocketParams{InitTgt: config.InitTgtTarget}, 1, fabricID, aux)
	req := Request{Dst: "SRAM"}
	s.HandleInterrupt(sch, MessageForTarget{Req: req})
	sch.Run(1)

	mft, ok := got.(MessageForTarget)
	if !ok {
		t.Fatalf("fabric received %T, want MessageForTarget", got)
	}
	if mft.Req.Dst != "SRAM" {
		t.Fatalf("forwarded request Dst = %q, want SRAM", mft.Req.Dst)
	}
}

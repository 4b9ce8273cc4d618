package fabriccore

import (
	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
)

// SourceRef identifies a Request's origin, mirroring
// Initiator_procedure.py.send_request's two-element `src` list.
type SourceRef struct {
	Initiator string
	Queue     string
}

// Request is the Go port of the dict built by
// Initiator_procedure.py.send_request.
type Request struct {
	Operation config.Direction
	Src       SourceRef
	Dst       string
	Size      int
	AddrGen   config.AddressGen
	Timestamp kernel.Time
}

package linkcore

import (
	"fmt"
	"math"

	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Producer is the port of link_sim.py's producer process: a square-wave
// burst generator that falls back to a normal-distribution idle time
// outside its duty-cycle window, enqueueing a monotonic message id after
// every idle period.
type Producer struct {
	name   string
	aux    *simlog.Auxiliary
	params ProducerParams
	link   *Link

	nextMsg uint64
}

// NewProducer builds a Producer that feeds link.
func NewProducer(name string, p ProducerParams, link *Link, aux *simlog.Auxiliary) *Producer {
	return &Producer{name: name, aux: aux, params: p, link: link}
}

// Start schedules the producer's first idle period.
func (p *Producer) Start(sch *kernel.Scheduler) {
	p.tick(sch)
}

func (p *Producer) tick(sch *kernel.Scheduler) {
	sch.Schedule(p.idleDuration(sch), func(sch *kernel.Scheduler) {
		msg := p.nextMsg
		p.nextMsg++
		p.aux.Debug(p.name, fmt.Sprintf("enqueue msg=%d", msg))
		p.link.Enqueue(sch, msg, func() { p.tick(sch) })
	})
}

// idleDuration is spec.md §4.9's producer idle-time rule: a square wave of
// period Window with duty cycle Utilization, falling back to
// N(IdlePsMean, IdlePsStd) outside the window (or whenever Window <= 0).
func (p *Producer) idleDuration(sch *kernel.Scheduler) kernel.Duration {
	if p.params.Window > 0 {
		window := float64(p.params.Window)
		pos := math.Mod(float64(sch.Now()), window)
		if pos < 0 {
			pos += window
		}
		if pos >= p.params.Utilization*window {
			idle := (1 - p.params.Utilization) * window
			return kernel.Duration(math.Max(1, idle))
		}
	}
	idle := sch.RNG().Normal(p.params.IdlePsMean, p.params.IdlePsStd)
	return kernel.Duration(math.Max(1, idle))
}

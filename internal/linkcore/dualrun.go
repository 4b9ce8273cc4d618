package linkcore

import (
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/report"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Run is one constructed link/producer/consumer chain plus its Stats
// accumulator, ready to Start and, after the scheduler runs, to summarize.
type Run struct {
	Link     *Link
	Producer *Producer
	Consumer *Consumer
	Stats    *Stats
}

// Start begins every process in the chain.
func (r *Run) Start(sch *kernel.Scheduler) {
	r.Link.Start(sch)
	r.Producer.Start(sch)
	r.Consumer.Start(sch)
}

// Summary computes this run's end-of-run figures.
func (r *Run) Summary(linkParams LinkParams, producerParams ProducerParams) Summary {
	return ComputeSummary(r.Link.name, r.Stats, linkParams, producerParams)
}

// buildRun wires one Link/Producer/Consumer/Stats quadruple, the unit
// DualRun replicates once (NonBypass, Bypass) or twice (Both).
func buildRun(name string, lp LinkParams, pp ProducerParams, dummy bool, aux *simlog.Auxiliary, reporter report.Reporter) (*Run, error) {
	stats := NewStats(reporter)
	link, err := NewLink(name, lp, dummy, aux, stats)
	if err != nil {
		return nil, err
	}
	producer := NewProducer(name+"_producer", pp, link, aux)
	consumer := NewConsumer(name+"_consumer", link, stats, aux)
	return &Run{Link: link, Producer: producer, Consumer: consumer, Stats: stats}, nil
}

// DualRun builds the link(s) implied by mode, grounded on link_sim.py's
// main()'s run_mode_t dispatch: Both builds a gated link and a bypass
// (dummy) link side by side sharing the same producer parameters, so the
// bypass run's consumer throughput is a reference curve for the gated
// run's FSM-throttled one; Bypass and NonBypass each build a single link.
func DualRun(mode RunMode, lp LinkParams, pp ProducerParams, aux *simlog.Auxiliary, reporter report.Reporter) ([]*Run, error) {
	var runs []*Run

	buildAndAppend := func(name string, dummy bool) error {
		r, err := buildRun(name, lp, pp, dummy, aux, reporter)
		if err != nil {
			return err
		}
		runs = append(runs, r)
		return nil
	}

	switch mode {
	case RunModeBoth:
		if err := buildAndAppend("Link", false); err != nil {
			return nil, err
		}
		if err := buildAndAppend("Link_bypass", true); err != nil {
			return nil, err
		}
	case RunModeBypass:
		if err := buildAndAppend("Link_bypass", true); err != nil {
			return nil, err
		}
	case RunModeNonBypass:
		if err := buildAndAppend("Link", false); err != nil {
			return nil, err
		}
	default:
		return nil, kernel.Fatal(aux.Error("DualRun", "unknown run mode"))
	}

	return runs, nil
}

// Start begins every run's processes.
func Start(sch *kernel.Scheduler, runs []*Run) {
	for _, r := range runs {
		r.Start(sch)
	}
}

// Command fabricsim runs the F-core fabric/socket/arbiter testbench: the
// Go port of main.py, which wires a fixed CPU/PCIE/SRAM/ROM testbench and
// lets it run to a fixed simulated duration. Its command line has only a
// seed, a verbosity switch and an override for that duration.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/fabriccore"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("fabricsim", flag.ContinueOnError)
	seed := fs.Uint64("seed", 1, "deterministic RNG seed")
	debug := fs.Bool("debug_en", false, "enable debug-level log lines")
	duration := fs.Int64("duration", 0, "override SIMULATION_TIME_IN_CYCLES (0 keeps the default testbench's value)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg := config.DefaultTestbench()
	cfg.Global.DebugLevel = *debug
	if *duration > 0 {
		cfg.Global.SimulationTimeInCycles = kernel.Time(*duration)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	sch := kernel.NewScheduler(kernel.WithSeed(*seed))
	aux := simlog.New(sch, out, cfg.Global.DebugLevel)

	tb, err := fabriccore.Build(sch, cfg, aux, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	tb.Start(sch)

	sch.Run(cfg.Global.SimulationTimeInCycles)
	if err := sch.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

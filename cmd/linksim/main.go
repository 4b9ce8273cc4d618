// Command linksim runs the L-core link/producer/consumer simulation: the
// Go port of link_sim.py's main(argv), reproducing its getopt-style flag
// surface with cobra/pflag instead.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/linkcore"
	"github.com/sgino209/uarch-simtb/internal/report"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}

type linkFlags struct {
	simDurationNs  int64
	debugEn        bool
	plotsEn        bool
	runMode        int
	seed           uint64
	producerIdlePs string
	producerBurst  string
	freqGHz        float64
	bufferSize     int
	avgBW1Gbps     float64
	avgBW2Gbps     float64
	avgBW4Gbps     float64
	avgBWTrnsShort string
	avgBWTrnsLong  string
	avgBWCycShort  string
	avgBWCycLong   string
	dataAvl1Trns   int
	dataAvl2Trns   int
	dataAvl1Cyc    int
	dataAvl2Cyc    int
	fsmDelayCyc    int
	fsmHighPerf    bool
}

// newRootCmd matches spec.md §6's exact L-core CLI: cobra's RunE/SilenceUsage
// convention is what gives main() its "exit code 2 on parse error" for free
// (a non-nil error from Execute never reaches the usage text twice).
func newRootCmd() *cobra.Command {
	var fl linkFlags

	cmd := &cobra.Command{
		Use:           "linksim",
		Short:         "runs the gated/bypass link FSM simulation",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkSim(fl, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Int64VarP(&fl.simDurationNs, "s", "s", 1_000_000, "simulation duration, in nanoseconds")
	f.BoolVar(&fl.debugEn, "debug_en", false, "enable debug-level log lines")
	f.BoolVar(&fl.plotsEn, "plots_en", false, "write link_result.csv instead of discarding sampled series")
	f.IntVar(&fl.runMode, "run_mode", 0, "0=Both, 1=Bypass, 2=NonBypass")
	f.Uint64Var(&fl.seed, "seed", 1, "deterministic RNG seed")
	f.StringVar(&fl.producerIdlePs, "producer_idle_ps", "4;0.05", "mean;std of the producer's idle time, in picoseconds")
	f.StringVar(&fl.producerBurst, "producer_burst", "1200;0.7", "window;utilization of the producer's square-wave burst")
	f.Float64Var(&fl.freqGHz, "freq_ghz", 1000, "link clock frequency, in GHz")
	f.IntVar(&fl.bufferSize, "buffer_size", 50, "link buffer capacity, in items")
	f.Float64Var(&fl.avgBW1Gbps, "avg_bw_1_gbps", 16, "1PACK state bandwidth, in Gbps")
	f.Float64Var(&fl.avgBW2Gbps, "avg_bw_2_gbps", 32, "2PACK state bandwidth, in Gbps")
	f.Float64Var(&fl.avgBW4Gbps, "avg_bw_4_gbps", 64, "4PACK state bandwidth, in Gbps")
	f.StringVar(&fl.avgBWTrnsShort, "avg_bw_trns_short", "4;4;4", "v1;v2;v4 short-window transaction-count thresholds")
	f.StringVar(&fl.avgBWTrnsLong, "avg_bw_trns_long", "10;10;10", "v1;v2;v4 long-window transaction-count thresholds")
	f.StringVar(&fl.avgBWCycShort, "avg_bw_cyc_short", "4;15;25", "v1;v2;v4 short-window cycle thresholds")
	f.StringVar(&fl.avgBWCycLong, "avg_bw_cyc_long", "60;60;60", "v1;v2;v4 long-window cycle thresholds")
	f.IntVar(&fl.dataAvl1Trns, "data_avl_1_trns_num", 5, "avl1 upscale-evidence transaction count")
	f.IntVar(&fl.dataAvl2Trns, "data_avl_2_trns_num", 20, "avl2 upscale-evidence transaction count")
	f.IntVar(&fl.dataAvl1Cyc, "data_avl_1_cyc", 15, "avl1 upscale-evidence cycle span")
	f.IntVar(&fl.dataAvl2Cyc, "data_avl_2_cyc", 2, "avl2 upscale-evidence cycle span")
	f.IntVar(&fl.fsmDelayCyc, "fsm_delay_cyc", 35, "cycles a decided transition waits before it applies")
	f.BoolVar(&fl.fsmHighPerf, "fsm_highperf_mode", true, "allow IDLE to jump straight to 4PACK on first data")

	return cmd
}

func runLinkSim(fl linkFlags, out io.Writer) error {
	mode, err := runModeFromInt(fl.runMode)
	if err != nil {
		return err
	}

	idleMean, idleStd, err := parsePair("producer_idle_ps", fl.producerIdlePs)
	if err != nil {
		return err
	}
	burstWindow, burstUtil, err := parsePair("producer_burst", fl.producerBurst)
	if err != nil {
		return err
	}
	trnsShort, err := parseTriplet("avg_bw_trns_short", fl.avgBWTrnsShort)
	if err != nil {
		return err
	}
	trnsLong, err := parseTriplet("avg_bw_trns_long", fl.avgBWTrnsLong)
	if err != nil {
		return err
	}
	cycShort, err := parseTriplet("avg_bw_cyc_short", fl.avgBWCycShort)
	if err != nil {
		return err
	}
	cycLong, err := parseTriplet("avg_bw_cyc_long", fl.avgBWCycLong)
	if err != nil {
		return err
	}

	lp := linkcore.DefaultLinkParams()
	lp.FreqGHz = fl.freqGHz
	lp.BufferSize = fl.bufferSize
	lp.AvgBW1Gbps = fl.avgBW1Gbps
	lp.AvgBW2Gbps = fl.avgBW2Gbps
	lp.AvgBW4Gbps = fl.avgBW4Gbps
	lp.AvgBWTrns[linkcore.ScopeShort] = triplet(trnsShort)
	lp.AvgBWTrns[linkcore.ScopeLong] = triplet(trnsLong)
	lp.AvgBWCyc[linkcore.ScopeShort] = triplet(cycShort)
	lp.AvgBWCyc[linkcore.ScopeLong] = triplet(cycLong)
	lp.DataAvl["avl1"] = linkcore.DataAvlParams{TrnsNum: fl.dataAvl1Trns, Cyc: fl.dataAvl1Cyc}
	lp.DataAvl["avl2"] = linkcore.DataAvlParams{TrnsNum: fl.dataAvl2Trns, Cyc: fl.dataAvl2Cyc}
	lp.FSMDelayCyc = fl.fsmDelayCyc
	lp.FSMHighPerfMode = fl.fsmHighPerf

	pp := linkcore.ProducerParams{
		IdlePsMean:  idleMean,
		IdlePsStd:   idleStd,
		Window:      int(burstWindow),
		Utilization: burstUtil,
	}

	var reporter report.Reporter = report.NopReporter{}
	if fl.plotsEn {
		csvFile, err := os.Create("link_result.csv")
		if err != nil {
			return err
		}
		defer csvFile.Close()
		csvReporter := report.NewCSVReporter(csvFile)
		defer csvReporter.Close()
		reporter = csvReporter
	}

	sch := kernel.NewScheduler(kernel.WithSeed(fl.seed))
	aux := simlog.New(sch, out, fl.debugEn)

	runs, err := linkcore.DualRun(mode, lp, pp, aux, reporter)
	if err != nil {
		return err
	}
	linkcore.Start(sch, runs)

	sch.Run(kernel.Time(fl.simDurationNs))
	if err := sch.Err(); err != nil {
		return err
	}

	for _, r := range runs {
		r.Summary(lp, pp).Log(aux)
	}
	return nil
}

func runModeFromInt(v int) (linkcore.RunMode, error) {
	switch v {
	case 0:
		return linkcore.RunModeBoth, nil
	case 1:
		return linkcore.RunModeBypass, nil
	case 2:
		return linkcore.RunModeNonBypass, nil
	default:
		return 0, fmt.Errorf("run_mode must be 0, 1 or 2, got %d", v)
	}
}

func parsePair(flagName, raw string) (a, b float64, err error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("--%s must be \"a;b\", got %q", flagName, raw)
	}
	if a, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, fmt.Errorf("--%s: %w", flagName, err)
	}
	if b, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, fmt.Errorf("--%s: %w", flagName, err)
	}
	return a, b, nil
}

func parseTriplet(flagName, raw string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(raw, ";")
	if len(parts) != 3 {
		return out, fmt.Errorf("--%s must be \"v1;v2;v4\", got %q", flagName, raw)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, fmt.Errorf("--%s: %w", flagName, err)
		}
		out[i] = n
	}
	return out, nil
}

// triplet turns a [3]int (v1, v2, v4) into the map[State]int AvgBWTrns/
// AvgBWCyc entries key off, matching spec.md §6's "v1;v2;v4" ordering
// (1PACK, 2PACK, 4PACK).
func triplet(v [3]int) map[linkcore.State]int {
	return map[linkcore.State]int{
		linkcore.State1Pack: v[0],
		linkcore.State2Pack: v[1],
		linkcore.State4Pack: v[2],
	}
}

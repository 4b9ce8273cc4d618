package simlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/izerolog"
	"github.com/rs/zerolog"

	"github.com/sgino209/uarch-simtb/internal/kernel"
)

// clock is the minimal time source Auxiliary needs — satisfied by
// *kernel.Scheduler, and by anything else that can report simulated time
// (kept as an interface so internal/simlog has no import-cycle back to
// kernel beyond what it already needs for Fatal/errors).
type clock interface {
	Now() kernel.Time
}

// Auxiliary is the Go equivalent of original_source/Auxiliary.py: every
// domain component logs through an *Auxiliary rather than fmt.Println, so
// the "[<now> ns] [<tag>] <msg>" line format (part of the test oracle, per
// spec.md §6) is produced in exactly one place.
type Auxiliary struct {
	clock   clock
	verbose bool
	log     *logiface.Logger[*izerolog.Event]
}

// New builds an Auxiliary that writes to w (os.Stdout in production,
// a bytes.Buffer in tests). verbose gates Debug the same way
// Auxiliary.py's constructor verbose flag gates debug().
func New(sch clock, w io.Writer, verbose bool) *Auxiliary {
	if w == nil {
		w = os.Stdout
	}
	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       true,
		PartsOrder:    []string{zerolog.MessageFieldName},
		FormatMessage: func(i any) string { return fmt.Sprint(i) },
	})
	return &Auxiliary{
		clock:   sch,
		verbose: verbose,
		log:     izerolog.L.New(izerolog.L.WithZerolog(zl), izerolog.L.WithLevel(izerolog.L.LevelTrace())),
	}
}

func (a *Auxiliary) line(tag, msg string) string {
	return fmt.Sprintf("[%.02f ns] [%s] %s", float64(a.clock.Now()), tag, msg)
}

// Debug prints only when verbose is set, matching Auxiliary.py.debug.
func (a *Auxiliary) Debug(tag, msg string) {
	if !a.verbose {
		return
	}
	a.log.Debug().Log(a.line(tag, msg))
}

// Message always prints, matching Auxiliary.py.message.
func (a *Auxiliary) Message(tag, msg string) {
	a.log.Info().Log(a.line(tag, msg))
}

// bannerRule is the 70 "=" banner original_source/Auxiliary.py.timestamp
// prints before and after its line.
const bannerRule = "======================================================================"

// Timestamp prints msg framed by a 70-"=" banner, with a wall-clock
// timestamp appended, matching Auxiliary.py.timestamp.
func (a *Auxiliary) Timestamp(tag, msg string) {
	wall := time.Now().Format("2006-01-02 15:04:05")
	a.log.Info().Log(bannerRule)
	a.log.Info().Log(fmt.Sprintf("[%.02f ns] [%s] %s - at %s", float64(a.clock.Now()), tag, msg, wall))
	a.log.Info().Log(bannerRule)
}

// Error logs a fatal condition and returns it wrapped as kernel.Fatal,
// replacing Auxiliary.py.error's sys.exit(): a library must not
// unilaterally terminate its host process, so the caller is expected to
// propagate the returned error up to the run loop.
func (a *Auxiliary) Error(tag, msg string) error {
	cause := fmt.Errorf("%s: %s", tag, msg)
	a.log.Err().Err(cause).Log(fmt.Sprintf("[%.02f ns] [ERROR] %s: %s", float64(a.clock.Now()), tag, msg))
	return kernel.Fatal(cause)
}

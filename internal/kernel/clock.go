package kernel

// Time is a monotonic simulated-time instant. Its unit (nanoseconds for the
// fabric model, picoseconds for the link model) is a convention of the
// caller, not of the kernel: the scheduler only ever compares and adds Time
// values.
type Time float64

// Duration is an interval between two Time instants, in the same unit.
type Duration float64

// Add returns t advanced by d.
func (t Time) Add(d Duration) Time {
	return t + Time(d)
}

// Sub returns the Duration between t and earlier.
func (t Time) Sub(earlier Time) Duration {
	return Duration(t - earlier)
}

package linkcore

// State is one of the link's four pack-width modes.
type State string

const (
	StateIdle  State = "IDLE"
	State1Pack State = "1PACK"
	State2Pack State = "2PACK"
	State4Pack State = "4PACK"
)

// nextState implements spec.md §4.8's transition table. It returns the
// state to move to and whether any transition applies at all; IDLE's entry
// condition ("buffer non-empty or enqueue_while_idle") is independent of
// upscale/downgrade evidence, which is only evaluated once the link is
// already running in some pack mode.
func nextState(current State, highPerf, bufferHasData, upscale, downgrade bool) (State, bool) {
	switch current {
	case StateIdle:
		if bufferHasData {
			if highPerf {
				return State4Pack, true
			}
			return State1Pack, true
		}
	case State1Pack:
		switch {
		case upscale:
			if highPerf {
				return State4Pack, true
			}
			return State2Pack, true
		case downgrade:
			return StateIdle, true
		}
	case State2Pack:
		switch {
		case upscale:
			return State4Pack, true
		case downgrade:
			return State1Pack, true
		}
	case State4Pack:
		if downgrade {
			return State2Pack, true
		}
	}
	return "", false
}

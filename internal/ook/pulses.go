package ook

// Timing defines the duration of a single chip at each level, in the time
// units of the replay device (microseconds for Flipper RAW files).
type Timing struct {
	OneLen  int // Duration of a high chip
	ZeroLen int // Duration of a low chip
}

// Run is a stretch of consecutive chips at the same level
type Run struct {
	Level    Chip
	Duration int
}

// Signed returns the run in the alternating-sign convention: positive for
// high, negative for low.
func (r Run) Signed() int {
	if r.Level == High {
		return r.Duration
	}
	return -r.Duration
}

// PulseList is a run-length encoded square wave. Positive values are high
// durations, negative values are low durations and signs strictly alternate.
type PulseList []int

// Duration returns the sum of absolute values of all entries
func (p PulseList) Duration() int {
	var total int
	for _, v := range p {
		if v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

// Alternating reports whether the signs of consecutive entries alternate
func (p PulseList) Alternating() bool {
	for i := 1; i < len(p); i++ {
		if (p[i] > 0) == (p[i-1] > 0) {
			return false
		}
	}
	return true
}

// Runs merges consecutive chips of the same level into runs
func Runs(chips ChipSequence, timing Timing) []Run {
	if len(chips) == 0 {
		return nil
	}

	runs := make([]Run, 0, len(chips)/2+1)
	current := Run{Level: chips[0]}
	for _, chip := range chips {
		if chip != current.Level {
			runs = append(runs, current)
			current = Run{Level: chip}
		}

		if chip == High {
			current.Duration += timing.OneLen
		} else {
			current.Duration += timing.ZeroLen
		}
	}

	return append(runs, current)
}

// EncodePulses collapses the chip sequence into a PulseList. When the
// sequence ends on a high chip a synthetic low entry of timing.ZeroLen is
// appended, since the transmitter must be left idle. An empty sequence
// yields a single zero entry.
func EncodePulses(chips ChipSequence, timing Timing) PulseList {
	if len(chips) == 0 {
		return PulseList{0}
	}

	runs := Runs(chips, timing)

	pulses := make(PulseList, 0, len(runs)+1)
	for _, r := range runs {
		pulses = append(pulses, r.Signed())
	}

	if chips[len(chips)-1] == High {
		pulses = append(pulses, -timing.ZeroLen)
	}

	return pulses
}

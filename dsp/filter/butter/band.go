package butter

// Band is the response type of a Butterworth design.
type Band int

const (
	// Lowpass passes frequencies below the high cutoff.
	Lowpass Band = iota + 1
	// Highpass passes frequencies above the low cutoff.
	Highpass
	// Bandpass passes frequencies between the low and high cutoffs.
	Bandpass
)

func (b Band) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return "unknown"
	}
}

// bandFor derives the band from which cutoffs are present.
func bandFor(hasLow, hasHigh bool) (Band, bool) {
	switch {
	case hasLow && hasHigh:
		return Bandpass, true
	case hasHigh:
		return Lowpass, true
	case hasLow:
		return Highpass, true
	default:
		return 0, false
	}
}

// Length returns the number of b (and a) coefficients a design of this band
// and order has.
func (b Band) Length(order int) int {
	if b == Bandpass {
		return 2*order + 1
	}

	return order + 1
}

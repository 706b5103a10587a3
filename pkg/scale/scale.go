// Package scale provides a reversible affine mapping between two 1-D
// coordinate systems, e.g. simulation units and screen pixels.
//
// A Linear scale keeps four independent endpoints (input near/far,
// output near/far) and maintains the derived slope and offset for both
// conversion directions. Every setter that would collapse a range to
// zero width is a silent no-op, so callers never have to guard against
// division by zero and a misconfigured call can never break an already
// valid mapping.
package scale

// Linear maps values between an input range and an output range.
type Linear struct {
	inNear, inFar   float64
	outNear, outFar float64

	// derived transforms, recomputed on every successful setter
	outSlope, outOffset float64
	inSlope, inOffset   float64
}

// NewLinear creates a scale mapping [inNear, inFar] onto [outNear, outFar].
// A degenerate pair (near == far on either side) falls back to the unit
// mapping [0,1] -> [0,1] for that side.
func NewLinear(inNear, inFar, outNear, outFar float64) *Linear {
	l := &Linear{inNear: 0, inFar: 1, outNear: 0, outFar: 1}
	if inNear != inFar {
		l.inNear, l.inFar = inNear, inFar
	}
	if outNear != outFar {
		l.outNear, l.outFar = outNear, outFar
	}
	l.recompute()
	return l
}

func (l *Linear) recompute() {
	l.outSlope = (l.outFar - l.outNear) / (l.inFar - l.inNear)
	l.outOffset = l.outNear - l.outSlope*l.inNear
	l.inSlope = (l.inFar - l.inNear) / (l.outFar - l.outNear)
	l.inOffset = l.inNear - l.inSlope*l.outNear
}

// SetInputRange replaces both input endpoints. No-op if near == far.
func (l *Linear) SetInputRange(near, far float64) {
	if near == far {
		return
	}
	l.inNear, l.inFar = near, far
	l.recompute()
}

// SetOutputRange replaces both output endpoints. No-op if near == far.
func (l *Linear) SetOutputRange(near, far float64) {
	if near == far {
		return
	}
	l.outNear, l.outFar = near, far
	l.recompute()
}

// SetRanges replaces all four endpoints atomically. No-op if either
// pair is degenerate.
func (l *Linear) SetRanges(inNear, inFar, outNear, outFar float64) {
	if inNear == inFar || outNear == outFar {
		return
	}
	l.inNear, l.inFar = inNear, inFar
	l.outNear, l.outFar = outNear, outFar
	l.recompute()
}

// InputNear returns the near input endpoint.
func (l *Linear) InputNear() float64 { return l.inNear }

// InputFar returns the far input endpoint.
func (l *Linear) InputFar() float64 { return l.inFar }

// OutputNear returns the near output endpoint.
func (l *Linear) OutputNear() float64 { return l.outNear }

// OutputFar returns the far output endpoint.
func (l *Linear) OutputFar() float64 { return l.outFar }

// SetInputNear sets the near input endpoint. Setting it equal to the
// far endpoint pushes the far endpoint to the old near value instead of
// collapsing the range.
func (l *Linear) SetInputNear(v float64) {
	if v == l.inFar {
		l.inFar = l.inNear
	}
	l.inNear = v
	l.recompute()
}

// SetInputFar sets the far input endpoint, pushing the near endpoint to
// the old far value if the range would collapse.
func (l *Linear) SetInputFar(v float64) {
	if v == l.inNear {
		l.inNear = l.inFar
	}
	l.inFar = v
	l.recompute()
}

// SetOutputNear sets the near output endpoint, pushing the far endpoint
// to the old near value if the range would collapse.
func (l *Linear) SetOutputNear(v float64) {
	if v == l.outFar {
		l.outFar = l.outNear
	}
	l.outNear = v
	l.recompute()
}

// SetOutputFar sets the far output endpoint, pushing the near endpoint
// to the old far value if the range would collapse.
func (l *Linear) SetOutputFar(v float64) {
	if v == l.outNear {
		l.outNear = l.outFar
	}
	l.outFar = v
	l.recompute()
}

// InputSpread returns the signed width of the input range.
func (l *Linear) InputSpread() float64 { return l.inFar - l.inNear }

// OutputSpread returns the signed width of the output range.
func (l *Linear) OutputSpread() float64 { return l.outFar - l.outNear }

// ToOutput converts an input-space value to output space.
func (l *Linear) ToOutput(v float64) float64 { return l.outSlope*v + l.outOffset }

// ToInput converts an output-space value to input space.
func (l *Linear) ToInput(v float64) float64 { return l.inSlope*v + l.inOffset }

// ToOutputSpan converts an input-space distance to output space,
// applying the slope without the offset.
func (l *Linear) ToOutputSpan(v float64) float64 { return l.outSlope * v }

// ToInputSpan converts an output-space distance to input space.
func (l *Linear) ToInputSpan(v float64) float64 { return l.inSlope * v }

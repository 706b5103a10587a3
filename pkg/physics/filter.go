package physics

// Lowpass is a single-pole IIR smoothing filter.
//
// The filter tracks its input with exponential lag controlled by Alpha
// (0 = frozen, 1 = passthrough). The first update after construction or
// Reset latches the input directly so the filter starts with no lag.
type Lowpass struct {
	alpha    float64
	value    float64
	firstRun bool
}

// NewLowpass creates a filter with the given coefficient.
func NewLowpass(alpha float64) *Lowpass {
	return &Lowpass{alpha: alpha, firstRun: true}
}

// Alpha returns the current filter coefficient.
func (f *Lowpass) Alpha() float64 { return f.alpha }

// SetAlpha updates the filter coefficient. It may be changed between
// updates without disturbing the filter state.
func (f *Lowpass) SetAlpha(alpha float64) { f.alpha = alpha }

// Update feeds x into the filter and returns the smoothed value.
// On the first call (or the first call after Reset) the filter latches
// x and returns it exactly.
func (f *Lowpass) Update(x float64) float64 {
	if f.firstRun {
		f.value = x
		f.firstRun = false
		return x
	}
	f.value += f.alpha * (x - f.value)
	return f.value
}

// Value returns the last output without advancing the filter.
func (f *Lowpass) Value() float64 { return f.value }

// Reset re-arms the filter so the next Update latches its input.
func (f *Lowpass) Reset() { f.firstRun = true }

// Sync forces the filter state to x so it reports exactly x with no lag.
func (f *Lowpass) Sync(x float64) {
	f.value = x
	f.firstRun = false
}

// CalculateAlpha derives a filter coefficient from a sampling interval dt
// (seconds) and a desired cutoff frequency in hertz.
func CalculateAlpha(dt, cutoffHz float64) float64 {
	return dt / (dt + 1/cutoffHz)
}

package firdesign

import "github.com/tphakala/simd/f64"

// CoefficientTable is the immutable result of one design run: the filter
// taps plus the normalized band annotation they were designed for. Tables
// have no identity beyond their content; regenerating from the same
// specification reproduces the table bit for bit.
type CoefficientTable struct {
	// Coefficients are the filter taps in convolution order.
	Coefficients []float64

	// PassBand and StopBand are the originating band edges divided by
	// the sample rate (0.5 is Nyquist).
	PassBand [2]float64
	StopBand [2]float64
}

// Len returns the number of taps.
func (t *CoefficientTable) Len() int { return len(t.Coefficients) }

// DCGain returns the sum of the taps, the filter's gain at zero frequency.
func (t *CoefficientTable) DCGain() float64 {
	return f64.Sum(t.Coefficients)
}

// Energy returns the total impulse-response energy, the sum of squared taps.
func (t *CoefficientTable) Energy() float64 {
	return f64.DotProductUnsafe(t.Coefficients, t.Coefficients)
}

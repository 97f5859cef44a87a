package firdesign

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec indicates a Specification that violates the band-edge or
// tap-count constraints. It is detected before any numeric work begins and
// aborts the design with no partial result.
var ErrInvalidSpec = errors.New("invalid filter specification")

// Specification declares the desired frequency response of an anti-aliasing
// filter: one passband, one stopband, and a don't-care transition between
// them. All frequencies are in the same unit as SampleRate.
type Specification struct {
	// NumTaps is the length of the designed linear-phase filter.
	// Odd lengths give type I filters; even lengths give type II,
	// which force zero gain at Nyquist.
	NumTaps int

	// BandEdges are the four band boundaries [f0, f1, f2, f3] with
	// 0 <= f0 <= f1 < f2 <= f3 <= SampleRate/2. [f0, f1] is the
	// passband, [f2, f3] the stopband.
	BandEdges [numBandEdges]float64

	// BandGains are the target gains for the passband and stopband,
	// typically 1 and 0.
	BandGains [numBands]float64

	// BandWeights weight the approximation error per band. A larger
	// weight buys a tighter ripple in that band at the expense of the
	// other.
	BandWeights [numBands]float64

	// SampleRate is the rate the filter will run at, in Hz.
	SampleRate float64
}

// Validate checks the specification invariants. Violations are
// configuration errors, not numeric ones: they are reported before any
// design work starts.
func (s *Specification) Validate() error {
	if s.NumTaps < minNumTaps {
		return fmt.Errorf("%w: %d taps (minimum %d)", ErrInvalidSpec, s.NumTaps, minNumTaps)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g must be positive", ErrInvalidSpec, s.SampleRate)
	}

	nyquist := s.SampleRate / 2
	e := s.BandEdges
	if e[0] < 0 || e[1] < e[0] || e[2] <= e[1] || e[3] < e[2] || e[3] > nyquist {
		return fmt.Errorf("%w: band edges %v must satisfy 0 <= f0 <= f1 < f2 <= f3 <= %g",
			ErrInvalidSpec, e, nyquist)
	}

	for i, g := range s.BandGains {
		if g < 0 {
			return fmt.Errorf("%w: band %d gain %g must be non-negative", ErrInvalidSpec, i, g)
		}
	}
	for i, w := range s.BandWeights {
		if w <= 0 {
			return fmt.Errorf("%w: band %d weight %g must be positive", ErrInvalidSpec, i, w)
		}
	}
	return nil
}

// NormalizedEdges returns the band edges divided by the sample rate, in
// cycles-per-sample units where 0.5 is Nyquist.
func (s *Specification) NormalizedEdges() [numBandEdges]float64 {
	var out [numBandEdges]float64
	for i, e := range s.BandEdges {
		out[i] = e / s.SampleRate
	}
	return out
}

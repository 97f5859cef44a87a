package firdesign

import (
	"fmt"

	"github.com/tphakala/go-fir-designer/internal/minphase"
	"github.com/tphakala/go-fir-designer/internal/remez"
)

// ErrNotConverged indicates the equiripple exchange exhausted its iteration
// budget without a stable solution. The design is aborted rather than
// returning a best-effort filter whose magnitude response is wrong.
var ErrNotConverged = remez.ErrNotConverged

// Options tunes the design pipeline. The zero value selects defaults that
// suit typical anti-aliasing filters.
type Options struct {
	// MaxIterations bounds the Remez exchange loop. Zero selects the
	// designer's default.
	MaxIterations int

	// GridDensity controls the fineness of the approximation grid.
	// Zero selects the designer's default.
	GridDensity int

	// NFFT is the FFT size used by the minimum-phase conversion. It
	// bounds how closely the converted filter's magnitude tracks the
	// linear-phase original. Zero selects a power of two derived from
	// the filter length.
	NFFT int
}

// DesignLinearPhase produces the equiripple linear-phase filter satisfying
// the specification. The returned taps are exactly symmetric.
func DesignLinearPhase(spec Specification, opts Options) (*CoefficientTable, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	edges := spec.NormalizedEdges()
	coeffs, err := remez.Design(remez.Params{
		NumTaps: spec.NumTaps,
		Bands: []remez.Band{
			{LowEdge: edges[0], HighEdge: edges[1], Gain: spec.BandGains[0], Weight: spec.BandWeights[0]},
			{LowEdge: edges[2], HighEdge: edges[3], Gain: spec.BandGains[1], Weight: spec.BandWeights[1]},
		},
		GridDensity:   opts.GridDensity,
		MaxIterations: opts.MaxIterations,
	})
	if err != nil {
		return nil, fmt.Errorf("equiripple design: %w", err)
	}

	return &CoefficientTable{
		Coefficients: coeffs,
		PassBand:     [2]float64{edges[0], edges[1]},
		StopBand:     [2]float64{edges[2], edges[3]},
	}, nil
}

// Design runs the full pipeline: equiripple linear-phase design followed by
// minimum-phase conversion. The result keeps the linear-phase filter's
// magnitude response within the FFT resolution's error bound while
// concentrating the impulse response energy causally, which is what the
// oversampled real-time path wants from its anti-aliasing filters.
func Design(spec Specification, opts Options) (*CoefficientTable, error) {
	linear, err := DesignLinearPhase(spec, opts)
	if err != nil {
		return nil, err
	}

	minimum, err := minphase.Convert(linear.Coefficients, minphase.Options{NFFT: opts.NFFT})
	if err != nil {
		return nil, fmt.Errorf("minimum-phase conversion: %w", err)
	}

	return &CoefficientTable{
		Coefficients: minimum,
		PassBand:     linear.PassBand,
		StopBand:     linear.StopBand,
	}, nil
}

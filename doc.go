// Package firdesign synthesizes minimum-phase FIR anti-aliasing filters for
// oversampled real-time audio processors.
//
// The design pipeline is an offline, single-threaded batch computation:
//
//	Specification -> equiripple design -> minimum-phase conversion -> CoefficientTable
//
// A [Specification] declares the desired response as a passband, a stopband,
// per-band gains and error weights, and a tap count. [DesignLinearPhase]
// runs the Parks-McClellan exchange to produce the best weighted equiripple
// linear-phase filter for that target, and [Design] additionally converts it
// to the minimum-phase filter with the same magnitude response, trading the
// symmetric group delay for energy concentrated at the front of the impulse
// response. The resulting [CoefficientTable] is serialized to Go source by
// cmd/generate-filters and compiled into the real-time engine.
//
// # Determinism
//
// Correctness here is reproducibility rather than throughput: the same
// specification always yields the same table, and the generated source text
// is byte-identical across runs, so regenerated artifacts diff cleanly.
// Failure modes are explicit. An invalid specification is rejected with
// [ErrInvalidSpec] before any numeric work, and an exchange that fails to
// stabilize within its iteration budget aborts with [ErrNotConverged]
// instead of emitting a non-equiripple filter.
//
// # Quick start
//
//	table, err := firdesign.Design(firdesign.Specification{
//	    NumTaps:     127,
//	    BandEdges:   [4]float64{0, 17850, 23025, 46050},
//	    BandGains:   [2]float64{1, 0},
//	    BandWeights: [2]float64{0.01, 1000},
//	    SampleRate:  92100,
//	}, firdesign.Options{MaxIterations: 2000, NFFT: 5096})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Runtime side
//
// The delay subpackage provides the real-time primitives the consumers of
// these tables are built from: a fixed-capacity ring buffer with
// relative-delay taps and a single-tap fixed delay line, both allocation-
// and lock-free.
package firdesign

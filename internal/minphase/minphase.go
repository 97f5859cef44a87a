// Package minphase converts linear-phase FIR filters into minimum-phase
// equivalents with the same magnitude response.
//
// The conversion works entirely in the frequency domain: the filter's
// magnitude spectrum is floored away from zero, its log is folded through the
// discrete Hilbert transform to obtain the unique minimum-phase spectrum for
// that magnitude, and the result is inverse-transformed and truncated back to
// the filter length. Accuracy is limited by the FFT size: a larger transform
// reduces the cepstral aliasing that perturbs the reconstructed magnitude.
package minphase

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Conversion constants.
const (
	// Shortest filter worth converting
	minFilterLength = 2

	// Near-zero magnitude bins are clamped to this fraction of the
	// spectral peak before the log. Deep stopband nulls otherwise drive
	// the log toward minus infinity and spray aliasing over the whole
	// cepstrum. The floor is far below audio-relevant dynamic range
	// (-200 dB) and applied identically on every run.
	magnitudeFloorRatio = 1e-10

	// The default FFT size targets a frequency resolution of 1% of the
	// filter's transition scale, matching common practice for
	// homomorphic filtering.
	defaultResolution = 0.01
)

// Conversion errors.
var (
	// ErrInvalidFilter indicates an input the conversion has no defined
	// result for: a filter shorter than two taps, or one with no energy.
	ErrInvalidFilter = errors.New("minimum-phase conversion needs a non-trivial filter")

	// ErrInvalidFFTSize indicates an explicit FFT size smaller than the filter.
	ErrInvalidFFTSize = errors.New("minimum-phase FFT size too small")
)

// Options tunes the conversion.
type Options struct {
	// NFFT is the transform size. Zero selects DefaultNFFT(len(h)).
	// Values below len(h) are rejected.
	NFFT int
}

// DefaultNFFT returns the default transform size for a filter of length n:
// the next power of two at or above 2*(n-1)/0.01.
func DefaultNFFT(n int) int {
	target := 2 * float64(n-1) / defaultResolution
	nfft := 1
	for float64(nfft) < target {
		nfft *= 2
	}
	return nfft
}

// Convert returns the minimum-phase filter whose magnitude response matches
// that of the linear-phase filter h, up to the FFT resolution and the
// documented magnitude floor. The result has the same length as h with its
// energy moved toward the front of the impulse response.
func Convert(h []float64, opts Options) ([]float64, error) {
	n := len(h)
	if n < minFilterLength {
		return nil, fmt.Errorf("%w: filter of length %d", ErrInvalidFilter, n)
	}
	nfft := opts.NFFT
	if nfft == 0 {
		nfft = DefaultNFFT(n)
	}
	if nfft < n {
		return nil, fmt.Errorf("%w: %d for a %d-tap filter", ErrInvalidFFTSize, nfft, n)
	}

	fft := fourier.NewCmplxFFT(nfft)
	scale := 1 / float64(nfft)

	// Magnitude spectrum of the zero-padded filter.
	buf := make([]complex128, nfft)
	for i, v := range h {
		buf[i] = complex(v, 0)
	}
	spectrum := fft.Coefficients(nil, buf)

	magnitude := make([]float64, nfft)
	peak := 0.0
	for j, c := range spectrum {
		magnitude[j] = cmplx.Abs(c)
		if magnitude[j] > peak {
			peak = magnitude[j]
		}
	}
	if peak == 0 {
		return nil, fmt.Errorf("%w: filter has no energy", ErrInvalidFilter)
	}

	// Floor the stopband nulls, then take the log.
	floor := magnitudeFloorRatio * peak
	logMag := make([]complex128, nfft)
	for j := range magnitude {
		if magnitude[j] < floor {
			magnitude[j] = floor
		}
		logMag[j] = complex(math.Log(magnitude[j]), 0)
	}

	// Real cepstrum of the log magnitude. Gonum's inverse transform is
	// unnormalized, so scale by 1/nfft explicitly.
	cepstrum := fft.Sequence(nil, logMag)
	for j := range cepstrum {
		cepstrum[j] *= complex(scale, 0)
	}

	// Discrete Hilbert transform of the log magnitude: flip the sign of
	// the anticausal half of the cepstrum, zero DC and Nyquist, and
	// transform back. The imaginary part of the result is the
	// minimum-phase spectral phase for this magnitude.
	mid := nfft / 2
	for j := range cepstrum {
		switch {
		case j == 0 || j == mid:
			cepstrum[j] = 0
		case j > mid:
			cepstrum[j] = -cepstrum[j]
		}
	}
	phase := fft.Coefficients(nil, cepstrum)

	// Rebuild the complex spectrum from magnitude and minimum phase.
	rotation := make([]complex128, nfft)
	magC := make([]complex128, nfft)
	for j := range rotation {
		rotation[j] = cmplx.Exp(phase[j])
		magC[j] = complex(magnitude[j], 0)
	}
	minSpectrum := make([]complex128, nfft)
	c128.Mul(minSpectrum, magC, rotation)

	// Back to the time domain; the significant energy sits in the first
	// len(h) samples, the rest is cepstral-aliasing residue.
	impulse := fft.Sequence(nil, minSpectrum)
	out := make([]float64, n)
	for i := range out {
		out[i] = real(impulse[i]) * scale
	}
	return out, nil
}

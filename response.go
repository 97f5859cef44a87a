package firdesign

import "math"

// Response holds a filter's sampled frequency response between DC and
// Nyquist.
type Response struct {
	// Frequencies are normalized (0 to 0.5, cycles per sample).
	Frequencies []float64

	// Magnitude is the linear-scale magnitude at each frequency.
	Magnitude []float64

	// Phase is the response phase in radians at each frequency.
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of the taps at numPoints
// frequencies from DC to Nyquist. A non-positive numPoints selects the
// default resolution.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) Response {
	if numPoints < 2 {
		numPoints = defaultResponsePoints
	}

	r := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range r.Frequencies {
		freq := 0.5 * float64(k) / float64(numPoints-1)
		r.Frequencies[k] = freq

		omega := 2 * math.Pi * freq
		var re, im float64
		for n, h := range coeffs {
			angle := omega * float64(n)
			re += h * math.Cos(angle)
			im -= h * math.Sin(angle)
		}
		r.Magnitude[k] = math.Hypot(re, im)
		r.Phase[k] = math.Atan2(im, re)
	}
	return r
}

// MagnitudeDB converts a linear magnitude to decibels, flooring near-zero
// values so silent stopbands stay finite.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < dbMagnitudeFloor {
		magnitude = dbMagnitudeFloor
	}
	return dbMultiplier * math.Log10(magnitude)
}

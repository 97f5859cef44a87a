package firdesign

// Specification shape
const (
	numBands     = 2 // passband, stopband
	numBandEdges = 4 // two edges per band

	// Minimum usable filter length
	minNumTaps = 3
)

// Frequency response evaluation
const (
	// Default number of response points between DC and Nyquist
	defaultResponsePoints = 512

	// Magnitude floor for dB conversion, avoids log(0)
	dbMagnitudeFloor = 1e-10

	// 20*log10 for magnitude quantities
	dbMultiplier = 20.0
)

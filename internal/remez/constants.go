package remez

// Design constants
const (
	// Minimum usable filter length
	minNumTaps = 3

	// Default density of the frequency grid relative to the number of
	// cosine basis functions
	defaultGridDensity = 16

	// Default Remez exchange iteration budget
	defaultMaxIterations = 25

	// Relative spread between the largest and smallest extremal error
	// magnitude at which the ripple is considered uniform
	rippleUniformityTolerance = 1e-6

	// Nyquist in cycles-per-sample units
	nyquistFrequency = 0.5
)

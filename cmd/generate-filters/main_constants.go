package main

// Tool identity written into the generated-file marker
const toolName = "generate-filters"

// Default package name for the generated source
const defaultPackageName = "coefficients"

// Built-in bank: the decimation lowpasses of the oversampled processing
// chain. Weights trade a loose passband ripple for a deep stopband, since
// aliasing products are far more audible than fractional-dB passband tilt.
const (
	// 2x-to-1x decimator, designed at the 2x internal rate
	lp2xTo1xTaps       = 127
	lp2xTo1xSampleRate = 92100.0
	lp2xTo1xPassHigh   = 17850.0
	lp2xTo1xStopLow    = 23025.0

	// 4x-to-2x decimator, designed in normalized units
	lp4xTo2xTaps       = 63
	lp4xTo2xSampleRate = 2.0
	lp4xTo2xPassHigh   = 0.25
	lp4xTo2xStopLow    = 0.5

	// Shared design budget
	passbandWeight = 0.01
	stopbandWeight = 1000.0
	bankMaxIter    = 2000
	bankNFFT       = 5096
	passbandGain   = 1.0
	stopbandGain   = 0.0
	bankLowestEdge = 0.0
)

package remez

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fir-designer/internal/testutil"
)

const (
	// Reference lowpass used across tests: moderate order, balanced
	// weights, comfortable transition band.
	testTaps        = 33
	testPassEdge    = 0.2
	testStopEdge    = 0.3
	testMaxIter     = 100
	testGridDensity = 16

	// The grid maximum only approximates the true band ripple, so the
	// equiripple comparison across bands allows a modest spread.
	rippleMatchTolerance = 0.05

	// Response probing
	probePoints = 2048
)

func lowpassParams(numTaps int, wPass, wStop float64) Params {
	return Params{
		NumTaps: numTaps,
		Bands: []Band{
			{LowEdge: 0, HighEdge: testPassEdge, Gain: 1, Weight: wPass},
			{LowEdge: testStopEdge, HighEdge: 0.5, Gain: 0, Weight: wStop},
		},
		MaxIterations: testMaxIter,
	}
}

// amplitudeResponse evaluates the zero-phase amplitude of a symmetric filter
// at the given normalized frequency.
func amplitudeResponse(h []float64, f float64) float64 {
	omega := 2 * math.Pi * f
	center := float64(len(h)-1) / 2
	var re, im float64
	for n, v := range h {
		re += v * math.Cos(omega*float64(n))
		im -= v * math.Sin(omega*float64(n))
	}
	// rotate out the linear phase
	return re*math.Cos(omega*center) - im*math.Sin(omega*center)
}

// bandRipple returns the maximum weighted deviation from the target gain
// over a dense sweep of one band.
func bandRipple(h []float64, low, high, gain, weight float64) float64 {
	maxDev := 0.0
	for i := 0; i <= probePoints; i++ {
		f := low + (high-low)*float64(i)/float64(probePoints)
		dev := weight * math.Abs(amplitudeResponse(h, f)-gain)
		if dev > maxDev {
			maxDev = dev
		}
	}
	return maxDev
}

// TestDesign_SymmetryExact verifies the taps are exactly symmetric, for
// both odd (type I) and even (type II) lengths.
func TestDesign_SymmetryExact(t *testing.T) {
	for _, numTaps := range []int{testTaps, 32} {
		h, err := Design(lowpassParams(numTaps, 1, 1))
		require.NoError(t, err, "numTaps=%d", numTaps)
		require.Len(t, h, numTaps)

		testutil.AssertNoNaNOrInf(t, h)
		testutil.AssertSymmetric(t, h, testutil.SymmetryTolerance)
	}
}

// TestDesign_Deterministic verifies two identical runs agree within 1e-12.
func TestDesign_Deterministic(t *testing.T) {
	h1, err := Design(lowpassParams(testTaps, 1, 1))
	require.NoError(t, err)
	h2, err := Design(lowpassParams(testTaps, 1, 1))
	require.NoError(t, err)

	testutil.AssertMaxDelta(t, h1, h2, testutil.DeterminismTolerance)
}

// TestDesign_EquirippleProperty verifies the weighted ripple is balanced
// across bands, with equal and with strongly skewed weights.
func TestDesign_EquirippleProperty(t *testing.T) {
	tests := []struct {
		name  string
		wPass float64
		wStop float64
	}{
		{"equal_weights", 1, 1},
		{"stopband_heavy", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Design(lowpassParams(testTaps, tt.wPass, tt.wStop))
			require.NoError(t, err)

			passRipple := bandRipple(h, 0, testPassEdge, 1, tt.wPass)
			stopRipple := bandRipple(h, testStopEdge, 0.5, 0, tt.wStop)

			require.Greater(t, passRipple, 0.0)
			spread := math.Abs(passRipple-stopRipple) / math.Max(passRipple, stopRipple)
			assert.Less(t, spread, rippleMatchTolerance,
				"weighted ripples differ: pass=%g stop=%g", passRipple, stopRipple)
		})
	}
}

// TestDesign_PassbandAndStopbandTargets verifies the response actually
// approximates the piecewise-constant target.
func TestDesign_PassbandAndStopbandTargets(t *testing.T) {
	h, err := Design(lowpassParams(testTaps, 1, 1))
	require.NoError(t, err)

	// DC gain close to 1, bounded by the passband ripple.
	ripple := bandRipple(h, 0, testPassEdge, 1, 1)
	assert.InDelta(t, 1.0, amplitudeResponse(h, 0), ripple+1e-9)
	assert.Less(t, ripple, 0.1, "passband ripple unexpectedly large")

	// Stopband attenuation within its own ripple of zero.
	stopRipple := bandRipple(h, testStopEdge, 0.5, 0, 1)
	assert.Less(t, stopRipple, 0.1, "stopband leakage unexpectedly large")
}

// TestDesign_WeightTradeoff verifies that weighting the stopband harder
// buys attenuation at the cost of passband ripple.
func TestDesign_WeightTradeoff(t *testing.T) {
	balanced, err := Design(lowpassParams(testTaps, 1, 1))
	require.NoError(t, err)
	skewed, err := Design(lowpassParams(testTaps, 1, 100))
	require.NoError(t, err)

	balancedStop := bandRipple(balanced, testStopEdge, 0.5, 0, 1)
	skewedStop := bandRipple(skewed, testStopEdge, 0.5, 0, 1)
	assert.Less(t, skewedStop, balancedStop, "heavier stopband weight should attenuate more")
}

// TestDesign_ProductionFilterOrders verifies the exchange converges at the
// tap counts and heavily skewed weights the shipped coefficient tables use.
// Band edges with an empty transition gap between them once produced one
// spurious extremal per gap edge and stalled the exchange at these orders.
func TestDesign_ProductionFilterOrders(t *testing.T) {
	tests := []struct {
		name     string
		numTaps  int
		passHigh float64
		stopLow  float64
	}{
		{"lowpass_127_taps", 127, 17850.0 / 92100.0, 23025.0 / 92100.0},
		{"lowpass_63_taps", 63, 0.125, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Design(Params{
				NumTaps: tt.numTaps,
				Bands: []Band{
					{LowEdge: 0, HighEdge: tt.passHigh, Gain: 1, Weight: 0.01},
					{LowEdge: tt.stopLow, HighEdge: 0.5, Gain: 0, Weight: 1000},
				},
				MaxIterations: 2000,
			})
			require.NoError(t, err)
			require.Len(t, h, tt.numTaps)

			testutil.AssertNoNaNOrInf(t, h)
			testutil.AssertSymmetric(t, h, testutil.SymmetryTolerance)

			// The 1000:0.01 weight skew buys a deep stopband.
			assert.Less(t, bandRipple(h, tt.stopLow, 0.5, 0, 1), 1e-3,
				"stopband leakage above -60 dB")
			assert.InDelta(t, 1.0, amplitudeResponse(h, 0), 0.2)
		})
	}
}

// TestDesign_NotConverged verifies a starved iteration budget fails loudly
// instead of returning a partial design.
func TestDesign_NotConverged(t *testing.T) {
	p := lowpassParams(testTaps, 1, 1)
	p.MaxIterations = 1

	h, err := Design(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Nil(t, h)
}

// TestDesign_InvalidParams verifies parameter validation happens before any
// design work.
func TestDesign_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"too_few_taps", Params{NumTaps: 2, Bands: []Band{{0, 0.2, 1, 1}, {0.3, 0.5, 0, 1}}}},
		{"no_bands", Params{NumTaps: testTaps}},
		{"unordered_edges", Params{NumTaps: testTaps, Bands: []Band{{0.3, 0.2, 1, 1}}}},
		{"edge_past_nyquist", Params{NumTaps: testTaps, Bands: []Band{{0, 0.6, 1, 1}}}},
		{"overlapping_bands", Params{NumTaps: testTaps, Bands: []Band{{0, 0.3, 1, 1}, {0.2, 0.5, 0, 1}}}},
		{"zero_weight", Params{NumTaps: testTaps, Bands: []Band{{0, 0.2, 1, 0}, {0.3, 0.5, 0, 1}}}},
		{"negative_gain", Params{NumTaps: testTaps, Bands: []Band{{0, 0.2, -1, 1}, {0.3, 0.5, 0, 1}}}},
		{"even_taps_nyquist_gain", Params{NumTaps: 32, Bands: []Band{{0, 0.2, 0, 1}, {0.3, 0.5, 1, 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Design(tt.p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)
			assert.Nil(t, h)
		})
	}
}

// TestDesign_EvenLengthNyquistZero verifies type II filters vanish at
// Nyquist as their structure demands.
func TestDesign_EvenLengthNyquistZero(t *testing.T) {
	h, err := Design(lowpassParams(32, 1, 1))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, amplitudeResponse(h, 0.5), 1e-9)
}

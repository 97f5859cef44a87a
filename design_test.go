package firdesign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fir-designer/internal/testutil"
)

// Pipeline test parameters: the 4x-to-2x anti-aliasing filter from the
// shipped bank, with the iteration and FFT budgets used to generate it.
var pipelineOpts = Options{MaxIterations: 2000, NFFT: 5096}

const (
	// Attenuation the 63-tap heavily stopband-weighted design must reach
	stopbandCeilingDB = -60.0

	responseProbePoints = 1024
)

// TestDesignLinearPhase_EndToEnd runs the equiripple stage on a bank entry
// and checks shape, symmetry, and annotation.
func TestDesignLinearPhase_EndToEnd(t *testing.T) {
	spec := validSpec()

	table, err := DesignLinearPhase(spec, pipelineOpts)
	require.NoError(t, err)
	require.Equal(t, spec.NumTaps, table.Len())

	testutil.AssertNoNaNOrInf(t, table.Coefficients)
	testutil.AssertSymmetric(t, table.Coefficients, testutil.SymmetryTolerance)

	assert.Equal(t, [2]float64{0, 0.125}, table.PassBand)
	assert.Equal(t, [2]float64{0.25, 0.5}, table.StopBand)
	assert.InDelta(t, 1.0, table.DCGain(), 0.1)
}

// TestDesign_EndToEnd runs the full pipeline and checks the minimum-phase
// result keeps the magnitude contract while concentrating energy causally.
func TestDesign_EndToEnd(t *testing.T) {
	spec := validSpec()

	linear, err := DesignLinearPhase(spec, pipelineOpts)
	require.NoError(t, err)
	minimum, err := Design(spec, pipelineOpts)
	require.NoError(t, err)

	require.Equal(t, linear.Len(), minimum.Len())
	assert.Equal(t, linear.PassBand, minimum.PassBand)
	assert.Equal(t, linear.StopBand, minimum.StopBand)
	testutil.AssertNoNaNOrInf(t, minimum.Coefficients)

	assert.Greater(t,
		testutil.FrontHalfEnergy(minimum.Coefficients),
		testutil.FrontHalfEnergy(linear.Coefficients),
		"minimum phase should concentrate energy at the front")
	assert.InDelta(t, linear.Energy(), minimum.Energy(), 0.05)
}

// TestDesign_StopbandAttenuation verifies the heavily weighted stopband of
// the bank entry actually attenuates.
func TestDesign_StopbandAttenuation(t *testing.T) {
	table, err := Design(validSpec(), pipelineOpts)
	require.NoError(t, err)

	resp := ComputeFrequencyResponse(table.Coefficients, responseProbePoints)
	worst := -300.0
	for i, f := range resp.Frequencies {
		if f < table.StopBand[0] || f > table.StopBand[1] {
			continue
		}
		if db := MagnitudeDB(resp.Magnitude[i]); db > worst {
			worst = db
		}
	}
	assert.Less(t, worst, stopbandCeilingDB, "stopband peak %g dB", worst)
}

// TestDesign_Deterministic verifies two full pipeline runs agree to 1e-12.
func TestDesign_Deterministic(t *testing.T) {
	a, err := Design(validSpec(), pipelineOpts)
	require.NoError(t, err)
	b, err := Design(validSpec(), pipelineOpts)
	require.NoError(t, err)

	testutil.AssertMaxDelta(t, a.Coefficients, b.Coefficients, testutil.DeterminismTolerance)
}

// TestDesign_RejectsInvalidSpec verifies configuration errors abort before
// any numeric work, with no table returned.
func TestDesign_RejectsInvalidSpec(t *testing.T) {
	spec := validSpec()
	spec.BandEdges = [4]float64{0, 100, 50, 200}
	spec.SampleRate = 400

	table, err := Design(spec, pipelineOpts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Nil(t, table)
}

// TestDesign_SurfacesConvergenceFailure verifies the exchange budget error
// reaches the caller with the sentinel intact.
func TestDesign_SurfacesConvergenceFailure(t *testing.T) {
	table, err := Design(validSpec(), Options{MaxIterations: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Nil(t, table)
}

// TestComputeFrequencyResponse_Impulse verifies the response of a unit
// impulse is flat with zero phase.
func TestComputeFrequencyResponse_Impulse(t *testing.T) {
	resp := ComputeFrequencyResponse([]float64{1}, 64)

	require.Len(t, resp.Frequencies, 64)
	assert.Equal(t, 0.0, resp.Frequencies[0])
	assert.Equal(t, 0.5, resp.Frequencies[len(resp.Frequencies)-1])
	for i := range resp.Magnitude {
		assert.InDelta(t, 1.0, resp.Magnitude[i], 1e-12)
		assert.InDelta(t, 0.0, resp.Phase[i], 1e-12)
	}
}

// TestMagnitudeDB verifies the dB conversion and its floor.
func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1.0), 1e-12)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1), 1e-12)
	assert.InDelta(t, -200.0, MagnitudeDB(0), 1e-12)
}

// Package testutil provides reusable test helpers for filter-design tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for common checks.
const (
	DeterminismTolerance = 1e-12
	SymmetryTolerance    = 0.0 // symmetry is exact by construction
)

// AssertSymmetric verifies that s[i] == s[n-1-i] within tolerance. A zero
// tolerance demands exact equality.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if tolerance == 0 {
			if !assert.Equal(t, s[i], s[j], "not exactly symmetric: s[%d] != s[%d]", i, j) {
				return false
			}
			continue
		}
		if !assert.InDelta(t, s[i], s[j], tolerance, "not symmetric: s[%d] vs s[%d]", i, j) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no element is NaN or infinite.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertMaxDelta verifies that slices a and b agree elementwise within
// tolerance and share a length.
func AssertMaxDelta(t *testing.T, a, b []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Equal(t, len(a), len(b), "length mismatch") {
		return false
	}
	for i := range a {
		if !assert.InDelta(t, a[i], b[i], tolerance, "mismatch at index %d", i) {
			return false
		}
	}
	return true
}

// Energy returns the sum of squared samples.
func Energy(s []float64) float64 {
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return sum
}

// FrontHalfEnergy returns the energy of the first half of s. Used to check
// that minimum-phase conversion concentrates energy causally.
func FrontHalfEnergy(s []float64) float64 {
	return Energy(s[:len(s)/2])
}

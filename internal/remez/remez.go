// Package remez designs equiripple linear-phase FIR filters with the
// Parks-McClellan exchange algorithm.
//
// The designer minimizes the maximum weighted deviation between the achieved
// amplitude response and a piecewise-constant target over a set of frequency
// bands, leaving the regions between bands as don't-care transitions. Each
// iteration solves the alternation system at the current extremal frequencies
// for the best equiripple approximation, then moves the extremal set to the
// peaks of the resulting weighted error, until the set stabilizes or the
// iteration budget runs out.
package remez

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Design errors.
var (
	// ErrInvalidParams indicates design parameters that violate the band
	// or tap-count constraints. Detected before any numeric work.
	ErrInvalidParams = errors.New("invalid remez design parameters")

	// ErrNotConverged indicates the exchange iteration budget was
	// exhausted before the extremal set stabilized. No filter is
	// returned in this case; a non-equiripple result would silently
	// violate the caller's magnitude-response requirements.
	ErrNotConverged = errors.New("remez exchange did not converge")
)

// Band is one approximation band: a frequency range with a target gain and
// an error weight. Frequencies are in cycles per sample, 0 to 0.5.
type Band struct {
	// LowEdge and HighEdge bound the band, LowEdge <= HighEdge.
	LowEdge  float64
	HighEdge float64

	// Gain is the target amplitude inside the band.
	Gain float64

	// Weight scales the approximation error inside the band. A larger
	// weight buys a smaller ripple at the expense of the other bands.
	Weight float64
}

// Params holds the equiripple design parameters.
type Params struct {
	// NumTaps is the filter length. Odd lengths produce type I filters,
	// even lengths type II (which force a zero at Nyquist).
	NumTaps int

	// Bands are the approximation bands in ascending frequency order.
	// Gaps between consecutive bands are don't-care transition regions.
	Bands []Band

	// GridDensity controls how fine the frequency grid is relative to
	// the number of basis functions. Zero selects the default.
	GridDensity int

	// MaxIterations bounds the exchange loop. Zero selects the default.
	MaxIterations int
}

// gridPoint is one sample of the dense approximation grid.
type gridPoint struct {
	freq    float64 // cycles per sample
	desired float64 // target amplitude, basis-transformed for type II
	weight  float64 // error weight, basis-transformed for type II
	band    int     // index of the band this point belongs to
}

// Design produces a linear-phase FIR filter of length p.NumTaps whose
// amplitude response is the best weighted equiripple approximation of the
// band targets. The returned coefficients are exactly symmetric.
func Design(p Params) ([]float64, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	density := p.GridDensity
	if density <= 0 {
		density = defaultGridDensity
	}
	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	even := p.NumTaps%2 == 0
	numCoeffs := (p.NumTaps + 1) / 2
	if even {
		numCoeffs = p.NumTaps / 2
	}

	grid := buildGrid(p.Bands, numCoeffs, density, even)
	numExtremals := numCoeffs + 1
	if len(grid) < numExtremals {
		return nil, fmt.Errorf("%w: grid of %d points cannot hold %d extremals",
			ErrInvalidParams, len(grid), numExtremals)
	}

	// Initial extremal guess: evenly spread over the grid.
	ext := make([]int, numExtremals)
	for i := range ext {
		ext[i] = i * (len(grid) - 1) / (numExtremals - 1)
	}

	coeffs := make([]float64, numCoeffs)
	errs := make([]float64, len(grid))

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		if err := solveAlternation(grid, ext, coeffs); err != nil {
			return nil, err
		}
		weightedErrors(grid, coeffs, errs)

		next, err := exchangeExtremals(grid, errs, numExtremals)
		if err != nil {
			return nil, err
		}

		if sameIndices(ext, next) || rippleUniform(errs, next) {
			converged = true
			break
		}
		copy(ext, next)
	}
	if !converged {
		return nil, fmt.Errorf("%w: extremal set still moving after %d iterations",
			ErrNotConverged, maxIter)
	}

	return impulseResponse(p.NumTaps, coeffs, even), nil
}

func validate(p Params) error {
	if p.NumTaps < minNumTaps {
		return fmt.Errorf("%w: %d taps (minimum %d)", ErrInvalidParams, p.NumTaps, minNumTaps)
	}
	if len(p.Bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidParams)
	}

	prev := 0.0
	for i, b := range p.Bands {
		if b.LowEdge < prev || b.HighEdge < b.LowEdge || b.HighEdge > nyquistFrequency {
			return fmt.Errorf("%w: band %d edges [%g, %g] not ordered within [0, %g]",
				ErrInvalidParams, i, b.LowEdge, b.HighEdge, nyquistFrequency)
		}
		if i > 0 && b.LowEdge <= prev {
			return fmt.Errorf("%w: band %d overlaps band %d", ErrInvalidParams, i, i-1)
		}
		if b.Weight <= 0 {
			return fmt.Errorf("%w: band %d weight %g must be positive", ErrInvalidParams, i, b.Weight)
		}
		if b.Gain < 0 {
			return fmt.Errorf("%w: band %d gain %g must be non-negative", ErrInvalidParams, i, b.Gain)
		}
		if p.NumTaps%2 == 0 && b.HighEdge == nyquistFrequency && b.Gain != 0 {
			return fmt.Errorf("%w: even-length filters force zero gain at Nyquist (band %d wants %g)",
				ErrInvalidParams, i, b.Gain)
		}
		prev = b.HighEdge
	}
	return nil
}

// buildGrid samples each band densely. For even-length (type II) filters the
// amplitude factors as cos(pi f) times a cosine polynomial, so the target and
// weight are divided and multiplied by that factor respectively, and the
// Nyquist point itself is dropped because the factor vanishes there.
func buildGrid(bands []Band, numCoeffs, density int, even bool) []gridPoint {
	spacing := nyquistFrequency / float64(density*numCoeffs)

	var grid []gridPoint
	for bi, b := range bands {
		width := b.HighEdge - b.LowEdge
		steps := int(width/spacing + 0.5)
		if steps < 1 {
			steps = 1
		}
		if width == 0 {
			steps = 0
		}
		for j := 0; j <= steps; j++ {
			f := b.LowEdge
			if steps > 0 {
				f += width * float64(j) / float64(steps)
			}
			desired := b.Gain
			weight := b.Weight
			if even {
				basis := math.Cos(math.Pi * f)
				if basis <= 0 {
					continue // at or past Nyquist, excluded for type II
				}
				desired /= basis
				weight *= basis
			}
			grid = append(grid, gridPoint{freq: f, desired: desired, weight: weight, band: bi})
		}
	}
	return grid
}

// solveAlternation solves for the cosine coefficients and ripple that make
// the weighted error alternate with equal magnitude over the extremal set:
//
//	P(f_i) + (-1)^i * delta / W(f_i) = D(f_i)
func solveAlternation(grid []gridPoint, ext []int, coeffs []float64) error {
	m := len(ext)
	a := mat.NewDense(m, m, nil)
	b := mat.NewVecDense(m, nil)

	for i, gi := range ext {
		pt := grid[gi]
		omega := 2 * math.Pi * pt.freq
		for k := 0; k < m-1; k++ {
			a.Set(i, k, math.Cos(float64(k)*omega))
		}
		sign := 1.0
		if i%2 == 1 {
			sign = -1.0
		}
		a.Set(i, m-1, sign/pt.weight)
		b.SetVec(i, pt.desired)
	}

	// A poorly conditioned system still carries a usable solution for the
	// exchange to refine; only outright singularity aborts the design.
	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("%w: singular alternation system: %v", ErrNotConverged, err)
		}
	}
	for k := range coeffs {
		coeffs[k] = sol.AtVec(k)
	}
	return nil
}

// weightedErrors fills errs with W(f) * (P(f) - D(f)) over the whole grid.
func weightedErrors(grid []gridPoint, coeffs []float64, errs []float64) {
	for j, pt := range grid {
		errs[j] = pt.weight * (cosinePoly(coeffs, pt.freq) - pt.desired)
	}
}

// cosinePoly evaluates P(f) = sum coeffs[k] * cos(2 pi k f).
func cosinePoly(coeffs []float64, f float64) float64 {
	omega := 2 * math.Pi * f
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*omega)
	}
	return sum
}

// exchangeExtremals picks the next extremal set from the signed peaks of
// the weighted error: positive local maxima and negative local minima,
// compared across band gaps as well as inside bands. Comparing across a
// gap matters: a monotone swing through a transition region then yields a
// single peak instead of one spurious extremal per band edge, and at the
// converged solution the two gap edges carry opposite signs so both
// survive as genuine alternations.
func exchangeExtremals(grid []gridPoint, errs []float64, want int) ([]int, error) {
	last := len(grid) - 1

	var cand []int
	if (errs[0] > 0 && errs[0] > errs[1]) || (errs[0] < 0 && errs[0] < errs[1]) {
		cand = append(cand, 0)
	}
	for j := 1; j < last; j++ {
		if (errs[j] > 0 && errs[j] >= errs[j-1] && errs[j] > errs[j+1]) ||
			(errs[j] < 0 && errs[j] <= errs[j-1] && errs[j] < errs[j+1]) {
			cand = append(cand, j)
		}
	}
	if (errs[last] > 0 && errs[last] > errs[last-1]) || (errs[last] < 0 && errs[last] < errs[last-1]) {
		cand = append(cand, last)
	}

	// Same-sign neighbors describe one ripple; keep the stronger.
	alternating := cand[:0]
	for _, j := range cand {
		if len(alternating) > 0 {
			prev := alternating[len(alternating)-1]
			if (errs[prev] > 0) == (errs[j] > 0) {
				if math.Abs(errs[j]) > math.Abs(errs[prev]) {
					alternating[len(alternating)-1] = j
				}
				continue
			}
		}
		alternating = append(alternating, j)
	}

	if len(alternating) < want {
		return nil, fmt.Errorf("%w: only %d alternations found, need %d",
			ErrNotConverged, len(alternating), want)
	}

	// Surplus peaks: an odd surplus drops the weaker endpoint, the rest
	// go as whole adjacent pairs, weakest pair first. Removing a pair
	// keeps the surrounding signs alternating; removing a lone interior
	// peak would not.
	if (len(alternating)-want)%2 == 1 {
		if math.Abs(errs[alternating[0]]) < math.Abs(errs[alternating[len(alternating)-1]]) {
			alternating = alternating[1:]
		} else {
			alternating = alternating[:len(alternating)-1]
		}
	}
	for len(alternating) > want {
		drop := 0
		dropMag := math.Inf(1)
		for i := 0; i+1 < len(alternating); i++ {
			mag := math.Max(math.Abs(errs[alternating[i]]), math.Abs(errs[alternating[i+1]]))
			if mag < dropMag {
				dropMag = mag
				drop = i
			}
		}
		alternating = append(alternating[:drop], alternating[drop+2:]...)
	}
	return alternating, nil
}

func sameIndices(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rippleUniform reports whether the extremal error magnitudes have leveled
// out, which means the equiripple condition already holds even if the set
// indices still wander between equivalent grid points.
func rippleUniform(errs []float64, ext []int) bool {
	maxMag, minMag := 0.0, math.Inf(1)
	for _, j := range ext {
		mag := math.Abs(errs[j])
		if mag > maxMag {
			maxMag = mag
		}
		if mag < minMag {
			minMag = mag
		}
	}
	return maxMag > 0 && (maxMag-minMag) <= rippleUniformityTolerance*maxMag
}

// impulseResponse converts the cosine-basis amplitude into time-domain taps
// by sampling the amplitude at numTaps uniform frequencies and inverting the
// linear-phase DFT. The amplitude is a trigonometric polynomial of degree
// below numTaps, so the sampling is exact. Only the first half is computed;
// the mirror makes the symmetry h[i] == h[n-1-i] hold bit for bit.
func impulseResponse(numTaps int, coeffs []float64, even bool) []float64 {
	amplitude := func(f float64) float64 {
		a := cosinePoly(coeffs, f)
		if even {
			a *= math.Cos(math.Pi * f)
		}
		return a
	}

	h := make([]float64, numTaps)
	center := float64(numTaps-1) / 2
	half := (numTaps - 1) / 2

	for i := 0; i <= half; i++ {
		acc := amplitude(0)
		for j := 1; j <= half; j++ {
			f := float64(j) / float64(numTaps)
			acc += 2 * amplitude(f) * math.Cos(2*math.Pi*f*(float64(i)-center))
		}
		h[i] = acc / float64(numTaps)
		h[numTaps-1-i] = h[i]
	}
	return h
}

package phasecorr

import (
	"math"

	"github.com/cwbudde/algo-phasecorr/spectral"
	"gonum.org/v1/gonum/stat"
)

// psrGuard is the circular Chebyshev radius around the peak excluded from
// the sidelobe statistics.
const psrGuard = 2

// locateShift finds the correlation maximum, optionally refines it to
// subsample precision, and converts surface coordinates into a shift of
// the padded input lattice.
func locateShift(surface []complex128, corrSize, padded []int, spacing []float64, cfg config) *Shift {
	peakFlat, peakVal := argmaxReal(surface)
	peakIdx := unflatten(peakFlat, corrSize)
	mags := spectral.Magnitudes(surface)

	dim := len(corrSize)
	pos := make([]float64, dim)
	for d := range pos {
		pos[d] = float64(wrapSigned(peakIdx[d], corrSize[d]))
	}
	if cfg.refine {
		for d := range pos {
			pos[d] += refineAxis(mags, corrSize, peakIdx, d)
		}
	}

	shift := &Shift{
		Samples: make([]float64, dim),
		Offset:  make([]float64, dim),
		Peak:    peakVal,
		PSR:     peakToSidelobe(mags, corrSize, peakIdx),
	}
	for d := range shift.Samples {
		// A band-restricted surface has fewer bins than the padded
		// lattice; each bin then spans padded/corrSize samples. The
		// correlation peak sits at the negated displacement.
		binScale := float64(padded[d]) / float64(corrSize[d])
		shift.Samples[d] = -pos[d] * binScale
		shift.Offset[d] = shift.Samples[d] * spacing[d]
	}
	return shift
}

func argmaxReal(data []complex128) (int, float64) {
	best := 0
	bestVal := math.Inf(-1)
	for i, v := range data {
		if real(v) > bestVal {
			best = i
			bestVal = real(v)
		}
	}
	return best, bestVal
}

func unflatten(flat int, size []int) []int {
	idx := make([]int, len(size))
	for d := len(size) - 1; d >= 0; d-- {
		idx[d] = flat % size[d]
		flat /= size[d]
	}
	return idx
}

// wrapSigned maps a circular surface index to the signed displacement it
// represents.
func wrapSigned(idx, n int) int {
	if idx > n/2 {
		return idx - n
	}
	return idx
}

// refineAxis fits a parabola through the log magnitudes of the peak and
// its two wrapped neighbors along one axis and returns the vertex offset,
// clamped to half a sample. Degenerate neighborhoods (zero magnitudes, no
// concavity) contribute no adjustment.
func refineAxis(mags []float64, size []int, peak []int, axis int) float64 {
	n := size[axis]
	if n < 3 {
		return 0
	}
	str := strides(size)

	off := 0
	for d, i := range peak {
		off += i * str[d]
	}
	prev := peak[axis] - 1
	if prev < 0 {
		prev = n - 1
	}
	next := peak[axis] + 1
	if next == n {
		next = 0
	}

	c := mags[off]
	l := mags[off+(prev-peak[axis])*str[axis]]
	r := mags[off+(next-peak[axis])*str[axis]]
	if l <= 0 || c <= 0 || r <= 0 {
		return 0
	}

	ll, lc, lr := math.Log(l), math.Log(c), math.Log(r)
	den := 2 * (ll - 2*lc + lr)
	if den >= -1e-12 {
		return 0
	}
	delta := (ll - lr) / den
	return math.Max(-0.5, math.Min(0.5, delta))
}

// peakToSidelobe computes (peak - mean) / stddev over the magnitude
// surface outside a circular guard neighborhood of the peak.
func peakToSidelobe(mags []float64, size []int, peak []int) float64 {
	side := make([]float64, 0, len(mags))
	idx := make([]int, len(size))
	for flat := range mags {
		if !withinGuard(idx, peak, size) {
			side = append(side, mags[flat])
		}

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
	if len(side) < 2 {
		return 0
	}
	mean, sd := stat.MeanStdDev(side, nil)
	if !(sd > 0) {
		return 0
	}
	return (mags[flatten(peak, size)] - mean) / sd
}

func flatten(idx, size []int) int {
	flat := 0
	for d := range size {
		flat = flat*size[d] + idx[d]
	}
	return flat
}

// withinGuard reports whether idx lies within the circular Chebyshev guard
// radius of the peak.
func withinGuard(idx, peak, size []int) bool {
	for d := range idx {
		dist := idx[d] - peak[d]
		if dist < 0 {
			dist = -dist
		}
		if wrap := size[d] - dist; wrap < dist {
			dist = wrap
		}
		if dist > psrGuard {
			return false
		}
	}
	return true
}

// Package testutil provides deterministic test patterns and assertion
// helpers shared by the package tests of this module.
package testutil

import (
	"math"
	"math/rand"
)

// RandomPattern generates a deterministic white-noise field over the given
// per-axis sizes (row-major, last axis fastest). White noise has a sharp
// autocorrelation, which makes correlation peaks unambiguous in tests.
func RandomPattern(seed int64, size ...int) []float64 {
	n := 1
	for _, s := range size {
		n *= s
	}
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// CircularShift returns a copy of data displaced by shift samples per axis
// with wraparound: out[x] = in[x-shift mod size]. A positive shift moves the
// pattern toward higher indices.
func CircularShift(data []float64, size, shift []int) []float64 {
	out := make([]float64, len(data))
	idx := make([]int, len(size))
	src := make([]int, len(size))
	for off := range out {
		for d := range src {
			s := (idx[d] - shift[d]) % size[d]
			if s < 0 {
				s += size[d]
			}
			src[d] = s
		}
		srcOff := 0
		for d := range src {
			srcOff = srcOff*size[d] + src[d]
		}
		out[off] = data[srcOff]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

// GaussianBlob samples exp(-|x-center|^2 / (2 sigma^2)) over the given sizes.
// Centers may be fractional, which gives an analytically known sub-sample
// displacement between two blobs. Sigma of two samples or more keeps the
// pattern effectively bandlimited.
func GaussianBlob(size []int, center []float64, sigma float64) []float64 {
	n := 1
	for _, s := range size {
		n *= s
	}
	out := make([]float64, n)
	idx := make([]int, len(size))
	inv := 1 / (2 * sigma * sigma)
	for off := range out {
		d2 := 0.0
		for d := range idx {
			dx := float64(idx[d]) - center[d]
			d2 += dx * dx
		}
		out[off] = math.Exp(-d2 * inv)
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

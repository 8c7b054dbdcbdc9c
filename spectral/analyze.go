package spectral

import (
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitudes returns |v| = sqrt(re^2 + im^2) for every sample.
//
// The complex128 path unpacks into pooled scratch and uses SIMD magnitude
// (AVX2, SSE2, NEON when available); other precisions compute per sample in
// float64 with the same formula, so both paths agree bit for bit on shared
// inputs.
func Magnitudes[C algofft.Complex](in []C) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	if bins, ok := any(in).([]complex128); ok {
		re, im, buf := getScratch(len(bins))
		for i, c := range bins {
			re[i] = real(c)
			im[i] = imag(c)
		}
		vecmath.Magnitude(out, re, im)
		putScratch(buf)
		return out
	}
	for i, v := range in {
		c := complex128(v)
		out[i] = math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
	}
	return out
}

// Powers returns |v|^2 = re^2 + im^2 for every sample. SIMD path and
// fallback as in Magnitudes.
func Powers[C algofft.Complex](in []C) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	if bins, ok := any(in).([]complex128); ok {
		re, im, buf := getScratch(len(bins))
		for i, c := range bins {
			re[i] = real(c)
			im[i] = imag(c)
		}
		vecmath.Power(out, re, im)
		putScratch(buf)
		return out
	}
	for i, v := range in {
		c := complex128(v)
		out[i] = real(c)*real(c) + imag(c)*imag(c)
	}
	return out
}

// Phases returns arg(v) in radians for every sample, in (-pi, pi].
func Phases[C algofft.Complex](in []C) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		c := complex128(v)
		out[i] = math.Atan2(imag(c), real(c))
	}
	return out
}

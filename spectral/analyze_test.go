package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-phasecorr/internal/testutil"
)

func randomBins(seed int64, n int) []complex128 {
	re := testutil.RandomPattern(seed, n)
	im := testutil.RandomPattern(seed+1, n)
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(re[i]*10, im[i]*10)
	}
	return out
}

func TestMagnitudesMatchesCmplxAbs(t *testing.T) {
	in := randomBins(1, 257) // odd length exercises SIMD tail handling
	got := Magnitudes(in)

	want := make([]float64, len(in))
	for i, v := range in {
		want[i] = cmplx.Abs(v)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestMagnitudesComplex64Fallback(t *testing.T) {
	in64 := []complex64{3 + 4i, 0, -1i, 2}
	got := Magnitudes(in64)
	testutil.RequireSliceNearlyEqual(t, got, []float64{5, 0, 1, 2}, 1e-7)
}

func TestPowersMatchesSquaredMagnitude(t *testing.T) {
	in := randomBins(2, 64)
	got := Powers(in)

	want := make([]float64, len(in))
	for i, v := range in {
		want[i] = real(v)*real(v) + imag(v)*imag(v)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	got32 := Powers([]complex64{3 + 4i})
	testutil.RequireSliceNearlyEqual(t, got32, []float64{25}, 1e-6)
}

func TestPhasesKnownValues(t *testing.T) {
	in := []complex128{1, 1i, -1, -1i, 1 + 1i}
	want := []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2, math.Pi / 4}
	testutil.RequireSliceNearlyEqual(t, Phases(in), want, 1e-15)
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	if Magnitudes[complex128](nil) != nil {
		t.Fatal("Magnitudes(nil) != nil")
	}
	if Powers[complex128](nil) != nil {
		t.Fatal("Powers(nil) != nil")
	}
	if Phases[complex128](nil) != nil {
		t.Fatal("Phases(nil) != nil")
	}
}

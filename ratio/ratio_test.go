package ratio

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/internal/testutil"
	"github.com/cwbudde/algo-phasecorr/spectral"
)

// randomSpectrum builds a deterministic complex image over g with
// coefficients bounded away from the zero-guard threshold.
func randomSpectrum(t *testing.T, seed int64, g grid.Grid) *spectral.Image {
	t.Helper()
	n := g.Region.NumSamples()
	re := testutil.RandomPattern(seed, n)
	im := testutil.RandomPattern(seed+1000, n)
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(re[i]*5+6, im[i]*5)
	}
	img, err := spectral.FromSlice(g, data)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return img
}

func TestComputeRequiresBothInputs(t *testing.T) {
	op := NewOperator()
	if _, err := op.Compute(); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Compute() = %v, want ErrMissingInput", err)
	}
	if op.GetOutput() != nil {
		t.Fatal("GetOutput() != nil before the first successful Compute")
	}

	op.SetFixedImage(randomSpectrum(t, 1, grid.Regular(4, 4)))
	if _, err := op.Compute(); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Compute() with only fixed = %v, want ErrMissingInput", err)
	}
}

func TestComputeRejectsMismatchedInputs(t *testing.T) {
	op := NewOperator()
	op.SetFixedImage(randomSpectrum(t, 1, grid.Regular(8, 8)))
	op.SetMovingImage(randomSpectrum(t, 2, grid.Regular(8)))
	if _, err := op.Compute(); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Compute() = %v, want ErrDimensionMismatch", err)
	}

	shifted := grid.Regular(8, 8)
	shifted.Origin[0] = 2
	op.SetMovingImage(randomSpectrum(t, 3, shifted))
	if _, err := op.Compute(); !errors.Is(err, ErrExtentMismatch) {
		t.Fatalf("Compute() = %v, want ErrExtentMismatch", err)
	}
}

func TestComputeEqualSamplingPassthrough(t *testing.T) {
	g := grid.New([]float64{0, 0}, []float64{0.25, 0.25}, grid.ZeroRegion(8, 8))
	fixed := randomSpectrum(t, 10, g)
	moving := randomSpectrum(t, 20, g)

	op := NewOperator(WithWorkers(1))
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !out.Grid().Equal(g) {
		t.Fatalf("output grid %s, want the shared input grid %s", out.Grid(), g)
	}
	want := make([]complex128, len(fixed.Data()))
	for i := range want {
		want[i] = Sample[float64](fixed.Data()[i], moving.Data()[i])
	}
	testutil.RequireComplexSliceNearlyEqual(t, out.Data(), want, 0)
}

func TestComputeCoarserSamplingWins(t *testing.T) {
	// Shared extent of 8 units: fixed at 8 samples of spacing 1, moving at
	// 4 samples of spacing 2. Output must follow the coarser moving input,
	// reading every second fixed coefficient.
	fixed := randomSpectrum(t, 30, grid.Regular(8))
	moving := randomSpectrum(t, 40, grid.New([]float64{0}, []float64{2}, grid.ZeroRegion(4)))

	op := NewOperator()
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	og := out.Grid()
	if og.Region.Size[0] != 4 || og.Spacing[0] != 2 {
		t.Fatalf("output size %d spacing %v, want 4 at spacing 2", og.Region.Size[0], og.Spacing[0])
	}
	for k := 0; k < 4; k++ {
		want := Sample[float64](fixed.Data()[2*k], moving.Data()[k])
		if got := out.Data()[k]; got != want {
			t.Fatalf("out[%d] = %v, want %v", k, got, want)
		}
	}
}

func TestComputePhaseRampForKnownShift(t *testing.T) {
	// moving[k] = fixed[k] * exp(-2*pi*i*k*s/N) is the spectrum of the
	// fixed pattern delayed by s samples; the ratio must be the conjugate
	// ramp exp(+2*pi*i*k*s/N) regardless of the fixed coefficients.
	const n, shift = 16, 3
	g := grid.Regular(n)
	fixed := randomSpectrum(t, 50, g)

	movingData := make([]complex128, n)
	want := make([]complex128, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) * float64(shift) / float64(n)
		movingData[k] = fixed.Data()[k] * cmplx.Exp(complex(0, -theta))
		want[k] = cmplx.Exp(complex(0, theta))
	}
	moving, err := spectral.FromSlice(g, movingData)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	op := NewOperator()
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, out.Data(), want, 1e-12)
}

func TestComputeZeroGuardPropagates(t *testing.T) {
	g := grid.Regular(4, 4)
	fixed := randomSpectrum(t, 60, g)
	moving := randomSpectrum(t, 70, g)
	fixed.Data()[5] = 0
	moving.Data()[9] = 0

	op := NewOperator()
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if out.Data()[5] != 0 || out.Data()[9] != 0 {
		t.Fatalf("zero cross powers not flushed: out[5]=%v out[9]=%v",
			out.Data()[5], out.Data()[9])
	}
	for i, v := range out.Data() {
		if i == 5 || i == 9 {
			continue
		}
		if d := math.Abs(cmplx.Abs(v) - 1); d > 1e-14 {
			t.Fatalf("sample %d: |out| = %v, want 1", i, cmplx.Abs(v))
		}
	}
}

func TestComputeAllocatesFreshOutput(t *testing.T) {
	g := grid.Regular(4, 4)
	op := NewOperator()
	op.SetFixedImage(randomSpectrum(t, 80, g))
	op.SetMovingImage(randomSpectrum(t, 90, g))

	first, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if op.GetOutput() != first {
		t.Fatal("GetOutput() does not return the computed image")
	}

	second, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if second == first {
		t.Fatal("Compute reused the previous output image")
	}
	if op.GetOutput() != second {
		t.Fatal("GetOutput() not updated by the second Compute")
	}
}

func TestComputePartitionInvariance(t *testing.T) {
	// Large enough to cross the parallel threshold; odd-ish shape stresses
	// uneven tiles. Results must be identical bit for bit regardless of
	// worker count.
	g := grid.Regular(96, 50)
	fixed := randomSpectrum(t, 100, g)
	moving := randomSpectrum(t, 200, g)

	compute := func(workers int) []complex128 {
		op := NewOperator(WithWorkers(workers))
		op.SetFixedImage(fixed)
		op.SetMovingImage(moving)
		out, err := op.Compute()
		if err != nil {
			t.Fatalf("Compute(workers=%d): %v", workers, err)
		}
		return out.Data()
	}

	reference := compute(1)
	for _, workers := range []int{2, 3, 7, 16} {
		got := compute(workers)
		for i := range reference {
			if got[i] != reference[i] {
				t.Fatalf("workers=%d sample %d: %v != %v", workers, i, got[i], reference[i])
			}
		}
	}
}

func TestComputeBandPolicyRestrictsOutput(t *testing.T) {
	g := grid.Regular(16, 16)
	fixed := randomSpectrum(t, 300, g)
	moving := randomSpectrum(t, 400, g)

	op := NewOperator(WithBandPolicy(CenteredLowFrequency{Fraction: 0.5}))
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	wantRegion := grid.NewRegion([]int{4, 4}, []int{8, 8})
	if !out.Region().Equal(wantRegion) {
		t.Fatalf("output region %s, want %s", out.Region(), wantRegion)
	}
	// Samples must come from the matching central input coefficients.
	for _, idx := range [][]int{{4, 4}, {7, 9}, {11, 11}} {
		want := Sample[float64](fixed.At(idx), moving.At(idx))
		if got := out.At(idx); got != want {
			t.Fatalf("out%v = %v, want %v", idx, got, want)
		}
	}
}

func TestOperator32(t *testing.T) {
	g := grid.Regular(4, 4)
	n := g.Region.NumSamples()
	re := testutil.RandomPattern(500, n)
	im := testutil.RandomPattern(501, n)
	fixedData := make([]complex64, n)
	movingData := make([]complex64, n)
	for i := range fixedData {
		fixedData[i] = complex(float32(re[i]+2), float32(im[i]))
		movingData[i] = complex(float32(im[i]+2), float32(re[i]))
	}
	fixed, err := spectral.FromSliceT(g, fixedData)
	if err != nil {
		t.Fatalf("FromSliceT: %v", err)
	}
	moving, err := spectral.FromSliceT(g, movingData)
	if err != nil {
		t.Fatalf("FromSliceT: %v", err)
	}

	op := NewOperator32()
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for i, v := range out.Data() {
		if d := math.Abs(cmplx.Abs(complex128(v)) - 1); d > 1e-6 {
			t.Fatalf("sample %d: |out| = %v, want 1", i, cmplx.Abs(complex128(v)))
		}
		want := Sample[float32](fixedData[i], movingData[i])
		if v != want {
			t.Fatalf("sample %d: %v != kernel value %v", i, v, want)
		}
	}
}

func TestOutputGridMatchesCompute(t *testing.T) {
	fixed := randomSpectrum(t, 600, grid.Regular(16, 8))
	moving := randomSpectrum(t, 700, grid.New([]float64{0, 0}, []float64{2, 1}, grid.ZeroRegion(8, 8)))

	op := NewOperator(WithBandPolicy(CenteredLowFrequency{Fraction: 0.5}))
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)

	negotiated, err := op.OutputGrid()
	if err != nil {
		t.Fatalf("OutputGrid: %v", err)
	}
	out, err := op.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !out.Grid().Equal(negotiated) {
		t.Fatalf("Compute grid %s differs from OutputGrid %s", out.Grid(), negotiated)
	}
}

package spectral

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-phasecorr/grid"
)

func TestNewAllocatesZeroFilled(t *testing.T) {
	g := grid.Regular(3, 4)
	img, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got, want := len(img.Data()), 12; got != want {
		t.Fatalf("len(Data()) = %d, want %d", got, want)
	}
	for i, v := range img.Data() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
	if img.Dim() != 2 {
		t.Fatalf("Dim() = %d, want 2", img.Dim())
	}
}

func TestNewRejectsInvalidGrid(t *testing.T) {
	bad := grid.Regular(4)
	bad.Spacing[0] = -1

	if _, err := New(bad); !errors.Is(err, grid.ErrInvalidGrid) {
		t.Fatalf("New(invalid) = %v, want ErrInvalidGrid", err)
	}
}

func TestFromSliceLengthCheck(t *testing.T) {
	g := grid.Regular(2, 2)

	if _, err := FromSlice(g, make([]complex128, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("FromSlice(short) = %v, want ErrSizeMismatch", err)
	}

	buf := make([]complex128, 4)
	img, err := FromSlice(g, buf)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	// The buffer is adopted, not copied.
	buf[2] = 5 + 1i
	if img.Data()[2] != 5+1i {
		t.Fatal("FromSlice copied the buffer instead of adopting it")
	}
}

func TestOffsetOfRowMajorLayout(t *testing.T) {
	g := grid.New(
		[]float64{0, 0},
		[]float64{1, 1},
		grid.NewRegion([]int{1, -2}, []int{3, 4}),
	)
	img, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		idx  []int
		want int
	}{
		{[]int{1, -2}, 0},
		{[]int{1, -1}, 1},
		{[]int{1, 1}, 3},
		{[]int{2, -2}, 4},
		{[]int{3, 1}, 11},
	}
	for _, tt := range tests {
		if got := img.OffsetOf(tt.idx); got != tt.want {
			t.Fatalf("OffsetOf(%v) = %d, want %d", tt.idx, got, tt.want)
		}
	}

	if img.Stride(0) != 4 || img.Stride(1) != 1 {
		t.Fatalf("strides = (%d, %d), want (4, 1)", img.Stride(0), img.Stride(1))
	}
}

func TestAtSetRoundTrip(t *testing.T) {
	img, err := NewT[complex64](grid.Regular(2, 3))
	if err != nil {
		t.Fatalf("NewT: %v", err)
	}

	idx := []int{1, 2}
	img.Set(idx, 3-4i)
	if got := img.At(idx); got != 3-4i {
		t.Fatalf("At(%v) = %v, want (3-4i)", idx, got)
	}
	if got := img.Data()[5]; got != 3-4i {
		t.Fatalf("Data()[5] = %v, want (3-4i)", got)
	}
}

func TestGridAccessorReturnsCopy(t *testing.T) {
	img, err := New(grid.Regular(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g := img.Grid()
	g.Spacing[0] = 99
	g.Region.Size[0] = 99

	if got := img.Grid(); got.Spacing[0] != 1 || got.Region.Size[0] != 4 {
		t.Fatal("mutating the returned grid changed the image")
	}
}

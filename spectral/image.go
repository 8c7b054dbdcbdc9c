package spectral

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-phasecorr/grid"
)

// ErrSizeMismatch reports a buffer whose length does not match the grid's
// sample count.
var ErrSizeMismatch = errors.New("spectral: data length does not match region")

// ImageT is an N-dimensional complex-valued image over a uniform sampling
// grid. Samples live in a flat row-major buffer: axis 0 varies slowest and
// the final axis is contiguous.
type ImageT[C algofft.Complex] struct {
	grid   grid.Grid
	stride []int
	data   []C
}

// Image and Image32 are the double- and single-precision specializations.
type (
	Image   = ImageT[complex128]
	Image32 = ImageT[complex64]
)

// NewT allocates a zero-filled image over g.
func NewT[C algofft.Complex](g grid.Grid) (*ImageT[C], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &ImageT[C]{
		grid:   g.Clone(),
		stride: strides(g.Region.Size),
		data:   make([]C, g.Region.NumSamples()),
	}, nil
}

// New allocates a zero-filled complex128 image over g.
func New(g grid.Grid) (*Image, error) { return NewT[complex128](g) }

// New32 allocates a zero-filled complex64 image over g.
func New32(g grid.Grid) (*Image32, error) { return NewT[complex64](g) }

// FromSliceT adopts data as the backing buffer of an image over g. The
// buffer is not copied; its length must equal the region's sample count.
func FromSliceT[C algofft.Complex](g grid.Grid, data []C) (*ImageT[C], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(data) != g.Region.NumSamples() {
		return nil, fmt.Errorf("%w: have %d, region %s needs %d",
			ErrSizeMismatch, len(data), g.Region, g.Region.NumSamples())
	}
	return &ImageT[C]{
		grid:   g.Clone(),
		stride: strides(g.Region.Size),
		data:   data,
	}, nil
}

// FromSlice adopts a complex128 buffer; see FromSliceT.
func FromSlice(g grid.Grid, data []complex128) (*Image, error) {
	return FromSliceT(g, data)
}

func strides(size []int) []int {
	s := make([]int, len(size))
	acc := 1
	for d := len(size) - 1; d >= 0; d-- {
		s[d] = acc
		acc *= size[d]
	}
	return s
}

// Grid returns a copy of the image's sampling grid.
func (im *ImageT[C]) Grid() grid.Grid { return im.grid.Clone() }

// Region returns a copy of the image's valid index region.
func (im *ImageT[C]) Region() grid.Region { return im.grid.Region.Clone() }

// Dim returns the number of axes.
func (im *ImageT[C]) Dim() int { return im.grid.Dim() }

// Data exposes the backing buffer. Its length equals the region's sample
// count; the layout is row-major with the final axis contiguous.
func (im *ImageT[C]) Data() []C { return im.data }

// Stride returns the flat-buffer step for one increment along axis d.
func (im *ImageT[C]) Stride(d int) int { return im.stride[d] }

// OffsetOf converts a global index to a flat-buffer offset. The index must
// lie inside the image's region.
func (im *ImageT[C]) OffsetOf(idx []int) int {
	off := 0
	for d, i := range idx {
		off += (i - im.grid.Region.Index[d]) * im.stride[d]
	}
	return off
}

// At returns the sample at the global index idx.
func (im *ImageT[C]) At(idx []int) C { return im.data[im.OffsetOf(idx)] }

// Set stores v at the global index idx.
func (im *ImageT[C]) Set(idx []int, v C) { im.data[im.OffsetOf(idx)] = v }

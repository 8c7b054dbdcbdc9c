package phasecorr

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/window"
)

var (
	// ErrMissingInput reports an estimation attempted without both images.
	ErrMissingInput = errors.New("phasecorr: fixed and moving images must both be set")

	// ErrDimensionMismatch reports images of different dimensionality.
	ErrDimensionMismatch = errors.New("phasecorr: fixed and moving dimensionality differs")

	// ErrSizeMismatch reports images whose per-axis sample counts differ.
	ErrSizeMismatch = errors.New("phasecorr: fixed and moving sample counts differ")

	// ErrExtentMismatch reports images whose grids cover different physical
	// extents.
	ErrExtentMismatch = errors.New("phasecorr: fixed and moving cover different physical extents")
)

// Image is a real-valued N-dimensional sample block on a regular grid,
// stored row-major with the last axis contiguous.
type Image struct {
	grid grid.Grid
	data []float64
}

// NewImage wraps a sample buffer and its grid. The buffer is adopted, not
// copied, and must hold exactly one value per grid sample. EstimateShift
// never mutates it.
func NewImage(g grid.Grid, data []float64) (*Image, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("phasecorr: %w", err)
	}
	if want := g.Region.NumSamples(); len(data) != want {
		return nil, fmt.Errorf("phasecorr: data length %d does not match region %s (%d samples)",
			len(data), g.Region, want)
	}
	return &Image{grid: g.Clone(), data: data}, nil
}

// Grid returns a copy of the image's sampling grid.
func (im *Image) Grid() grid.Grid { return im.grid.Clone() }

// Data returns the underlying sample buffer.
func (im *Image) Data() []float64 { return im.data }

// Shift is an estimated translation of the moving image relative to the
// fixed image: the moving image sampled at position x matches the fixed
// image sampled at x minus the shift.
type Shift struct {
	// Samples is the per-axis shift in samples of the input lattice.
	Samples []float64

	// Offset is the per-axis shift in physical units, Samples scaled by
	// the grid spacing.
	Offset []float64

	// Peak is the correlation surface value at the located maximum. For
	// well-matched images it approaches 1.
	Peak float64

	// PSR is the peak-to-sidelobe ratio: the peak magnitude over the mean
	// magnitude of the rest of the surface, in sidelobe standard
	// deviations. Higher means a more reliable estimate; 0 when undefined.
	PSR float64
}

type config struct {
	window      window.Type
	windowAlpha float64
	band        float64
	workers     int
	refine      bool
}

func defaultConfig() config {
	return config{
		window:      window.TypeHann,
		windowAlpha: 0.5,
		band:        1,
	}
}

// Option configures shift estimation.
type Option func(*config)

// WithWindow selects the apodization window applied to working copies of
// both images before the forward transforms. The default is Hann;
// TypeRectangular disables windowing.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithWindowAlpha forwards the taper parameter to parametric windows such
// as Tukey.
func WithWindowAlpha(v float64) Option {
	return func(c *config) {
		c.windowAlpha = v
	}
}

// WithBand restricts the normalized cross power to the centered fraction
// of the spectrum before the inverse transform, suppressing the noisiest
// high frequencies. The fraction must lie in (0, 1]; 1 keeps the full
// spectrum.
func WithBand(fraction float64) Option {
	return func(c *config) {
		c.band = fraction
	}
}

// WithWorkers caps the number of goroutines used for the cross-power
// computation. Values below 1 select one per CPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithRefinement enables per-axis subsample refinement of the correlation
// peak by a three-point Gaussian fit.
func WithRefinement() Option {
	return func(c *config) {
		c.refine = true
	}
}

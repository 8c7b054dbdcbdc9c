package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidGrid reports a grid whose metadata slices disagree in length or
// whose spacing or origin entries are not finite and positive where required.
var ErrInvalidGrid = errors.New("grid: invalid grid")

// Grid describes a uniform sampling lattice in physical space. The sample
// with global index i on axis d sits at Origin[d] + float64(i)*Spacing[d];
// Region delimits the valid index range.
type Grid struct {
	Origin  []float64
	Spacing []float64
	Region  Region
}

// New builds a grid from per-axis origin and spacing and a valid index
// region. All slices are copied.
func New(origin, spacing []float64, region Region) Grid {
	g := Grid{
		Origin:  make([]float64, len(origin)),
		Spacing: make([]float64, len(spacing)),
		Region:  region.Clone(),
	}
	copy(g.Origin, origin)
	copy(g.Spacing, spacing)
	return g
}

// Regular builds a grid with zero origin, unit spacing, and index origin
// zero over the given per-axis sizes.
func Regular(size ...int) Grid {
	dim := len(size)
	spacing := make([]float64, dim)
	for d := range spacing {
		spacing[d] = 1
	}
	return Grid{
		Origin:  make([]float64, dim),
		Spacing: spacing,
		Region:  ZeroRegion(size...),
	}
}

// Dim returns the number of axes.
func (g Grid) Dim() int { return g.Region.Dim() }

// Validate checks slice lengths, the region, strictly positive finite
// spacings, and finite origins.
func (g Grid) Validate() error {
	if err := g.Region.Validate(); err != nil {
		return err
	}
	dim := g.Region.Dim()
	if len(g.Origin) != dim || len(g.Spacing) != dim {
		return fmt.Errorf("%w: origin/spacing/region lengths %d/%d/%d",
			ErrInvalidGrid, len(g.Origin), len(g.Spacing), dim)
	}
	for d, s := range g.Spacing {
		if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
			return fmt.Errorf("%w: axis %d spacing %v", ErrInvalidGrid, d, s)
		}
	}
	for d, o := range g.Origin {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return fmt.Errorf("%w: axis %d origin %v", ErrInvalidGrid, d, o)
		}
	}
	return nil
}

// Start returns the physical position of the first valid sample on axis d.
func (g Grid) Start(d int) float64 {
	return g.Origin[d] + float64(g.Region.Index[d])*g.Spacing[d]
}

// PhysicalSpan returns the physical length covered by axis d: the sample
// count times the spacing.
func (g Grid) PhysicalSpan(d int) float64 {
	return float64(g.Region.Size[d]) * g.Spacing[d]
}

// SameExtent reports whether g and other cover the same physical extent:
// equal dimension, and per axis the start positions and spans agree within
// the relative tolerance rtol (scaled by the larger span).
func (g Grid) SameExtent(other Grid, rtol float64) bool {
	if g.Dim() != other.Dim() {
		return false
	}
	for d := 0; d < g.Dim(); d++ {
		span := math.Max(g.PhysicalSpan(d), other.PhysicalSpan(d))
		tol := rtol * span
		if math.Abs(g.PhysicalSpan(d)-other.PhysicalSpan(d)) > tol {
			return false
		}
		if math.Abs(g.Start(d)-other.Start(d)) > tol {
			return false
		}
	}
	return true
}

// Equal reports exact metadata equality.
func (g Grid) Equal(other Grid) bool {
	if !g.Region.Equal(other.Region) {
		return false
	}
	for d := range g.Origin {
		if g.Origin[d] != other.Origin[d] || g.Spacing[d] != other.Spacing[d] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	return New(g.Origin, g.Spacing, g.Region)
}

// String renders origin, spacing, and region for diagnostics.
func (g Grid) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "origin=%v spacing=%v region=%s", g.Origin, g.Spacing, g.Region)
	return b.String()
}

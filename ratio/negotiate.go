package ratio

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-phasecorr/grid"
)

// ExtentTolerance is the relative tolerance for comparing the physical
// extents of the fixed and moving grids: per axis, start positions and spans
// must agree within ExtentTolerance times the larger span.
const ExtentTolerance = 1e-6

// indexJitter absorbs quantization noise in spacing-derived scale factors
// when mapping between lattices of different resolution.
const indexJitter = 1e-9

var (
	// ErrMissingInput reports a computation attempted before both inputs
	// are bound.
	ErrMissingInput = errors.New("ratio: fixed and moving images must both be set")

	// ErrDimensionMismatch reports inputs of different dimensionality.
	ErrDimensionMismatch = errors.New("ratio: fixed and moving dimensionality differs")

	// ErrExtentMismatch reports inputs whose sampling grids cover different
	// physical extents.
	ErrExtentMismatch = errors.New("ratio: fixed and moving cover different physical extents")
)

// NegotiateOutputGrid derives the output sampling grid from the two input
// grids. Per axis, the input with fewer samples over the shared extent
// supplies origin, spacing, index, and size (ties go to fixed), then policy
// may shrink the tentative metadata. The adjusted values are clamped so the
// output never promises more than the inputs can supply. A nil policy means
// [FullResolution].
//
// The function is pure; its arguments are never mutated.
func NegotiateOutputGrid(fixed, moving grid.Grid, policy BandPolicy) (grid.Grid, error) {
	if err := fixed.Validate(); err != nil {
		return grid.Grid{}, fmt.Errorf("ratio: fixed grid: %w", err)
	}
	if err := moving.Validate(); err != nil {
		return grid.Grid{}, fmt.Errorf("ratio: moving grid: %w", err)
	}
	if fixed.Dim() != moving.Dim() {
		return grid.Grid{}, fmt.Errorf("%w: %d vs %d",
			ErrDimensionMismatch, fixed.Dim(), moving.Dim())
	}
	if !fixed.SameExtent(moving, ExtentTolerance) {
		return grid.Grid{}, fmt.Errorf("%w: fixed %s, moving %s",
			ErrExtentMismatch, fixed, moving)
	}

	out := fixed.Clone()
	for d := 0; d < out.Dim(); d++ {
		if moving.Region.Size[d] < fixed.Region.Size[d] {
			out.Origin[d] = moving.Origin[d]
			out.Spacing[d] = moving.Spacing[d]
			out.Region.Index[d] = moving.Region.Index[d]
			out.Region.Size[d] = moving.Region.Size[d]
		}
	}

	negotiated := out.Region.Clone()
	negSpacing := append([]float64(nil), out.Spacing...)

	if policy == nil {
		policy = FullResolution{}
	}
	policy.AdjustOutputInformation(out.Spacing, out.Region.Index, out.Region.Size)
	clampAdjusted(&out, negotiated, negSpacing)
	return out, nil
}

// clampAdjusted keeps policy-adjusted metadata within what negotiation
// granted: per axis the size stays in [1, negotiated], the index window
// stays inside the negotiated range, and spacing never drops below the
// negotiated value.
func clampAdjusted(g *grid.Grid, neg grid.Region, negSpacing []float64) {
	for d := range g.Region.Size {
		if math.IsNaN(g.Spacing[d]) || g.Spacing[d] < negSpacing[d] {
			g.Spacing[d] = negSpacing[d]
		}
		size := g.Region.Size[d]
		if size < 1 {
			size = 1
		}
		if size > neg.Size[d] {
			size = neg.Size[d]
		}
		idx := g.Region.Index[d]
		if idx < neg.Index[d] {
			idx = neg.Index[d]
		}
		if idx+size > neg.Index[d]+neg.Size[d] {
			idx = neg.Index[d] + neg.Size[d] - size
		}
		g.Region.Index[d] = idx
		g.Region.Size[d] = size
	}
}

// RequiredInputRegion maps a requested output region to the input region
// needed to compute it. The correspondence preserves physical extent: with
// aligned origins, output sample k reads input sample floor(k*scale) where
// scale = outSpacing/inSpacing, so the returned region covers the same
// physical band and spans at least as many samples as the request whenever
// the input is sampled finer.
//
// The requested region must lie inside outGrid's region; the result is
// clipped to inGrid's region.
func RequiredInputRegion(requested grid.Region, outGrid, inGrid grid.Grid) (grid.Region, error) {
	if err := outGrid.Validate(); err != nil {
		return grid.Region{}, fmt.Errorf("ratio: output grid: %w", err)
	}
	if err := inGrid.Validate(); err != nil {
		return grid.Region{}, fmt.Errorf("ratio: input grid: %w", err)
	}
	if outGrid.Dim() != inGrid.Dim() || requested.Dim() != outGrid.Dim() {
		return grid.Region{}, fmt.Errorf("%w: requested/output/input %d/%d/%d",
			ErrDimensionMismatch, requested.Dim(), outGrid.Dim(), inGrid.Dim())
	}
	if err := requested.Validate(); err != nil {
		return grid.Region{}, err
	}
	if !outGrid.Region.ContainsRegion(requested) {
		return grid.Region{}, fmt.Errorf("%w: requested %s outside output region %s",
			grid.ErrInvalidRegion, requested, outGrid.Region)
	}

	dim := requested.Dim()
	out := grid.Region{Index: make([]int, dim), Size: make([]int, dim)}
	for d := 0; d < dim; d++ {
		scale := outGrid.Spacing[d] / inGrid.Spacing[d]
		lo := int(math.Floor(float64(requested.Index[d])*scale + indexJitter))
		hi := int(math.Ceil(float64(requested.Index[d]+requested.Size[d])*scale - indexJitter))

		inLo := inGrid.Region.Index[d]
		inHi := inLo + inGrid.Region.Size[d]
		lo = max(lo, inLo)
		hi = min(hi, inHi)
		if hi <= lo {
			hi = lo + 1
		}
		out.Index[d] = lo
		out.Size[d] = hi - lo
	}
	return out, nil
}

// FullOutputRegion widens any acceptable output request back to the
// operator's natural output region. The ratio is always produced for the
// complete negotiated region; there is no incremental sub-band computation.
func FullOutputRegion(requested grid.Region, outGrid grid.Grid) grid.Region {
	return outGrid.Region.Clone()
}

package phasecorr

import (
	"fmt"

	"github.com/cwbudde/algo-phasecorr/fftn"
	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/ratio"
	"github.com/cwbudde/algo-phasecorr/spectral"
	"github.com/cwbudde/algo-phasecorr/window"
)

// EstimateShift computes the translation of the moving image relative to
// the fixed image by phase correlation. Both images must have the same
// dimensionality, the same per-axis sample counts, and cover the same
// physical extent. Configuration problems surface here before any
// transform work starts. The input buffers are never mutated.
//
// Shifts are circular: a displacement beyond half the padded image size
// aliases to its wrapped counterpart.
func EstimateShift(fixed, moving *Image, opts ...Option) (*Shift, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if fixed == nil || moving == nil {
		return nil, ErrMissingInput
	}
	fg, mg := fixed.grid, moving.grid
	if fg.Dim() != mg.Dim() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, fg.Dim(), mg.Dim())
	}
	for d, n := range fg.Region.Size {
		if mg.Region.Size[d] != n {
			return nil, fmt.Errorf("%w: axis %d has %d vs %d samples",
				ErrSizeMismatch, d, n, mg.Region.Size[d])
		}
	}
	if !fg.SameExtent(mg, ratio.ExtentTolerance) {
		return nil, fmt.Errorf("%w: fixed %s, moving %s", ErrExtentMismatch, fg, mg)
	}
	if cfg.band <= 0 || cfg.band > 1 {
		return nil, fmt.Errorf("phasecorr: band fraction %v outside (0, 1]", cfg.band)
	}

	size := fg.Region.Size
	padded := make([]int, len(size))
	for d, n := range size {
		padded[d] = nextPowerOf2(n)
	}

	plan, err := fftn.NewPlan(padded...)
	if err != nil {
		return nil, fmt.Errorf("phasecorr: forward plan: %w", err)
	}
	fixedFreq, err := forwardSpectrum(plan, fixed, size, padded, cfg)
	if err != nil {
		return nil, err
	}
	movingFreq, err := forwardSpectrum(plan, moving, size, padded, cfg)
	if err != nil {
		return nil, err
	}

	// Both spectra share one centered frequency grid, so negotiation in
	// the ratio operator passes trivially and the band policy alone
	// shapes the output.
	specGrid := grid.Regular(padded...)
	fixedSpec, err := spectral.FromSlice(specGrid, fixedFreq)
	if err != nil {
		return nil, fmt.Errorf("phasecorr: fixed spectrum: %w", err)
	}
	movingSpec, err := spectral.FromSlice(specGrid, movingFreq)
	if err != nil {
		return nil, fmt.Errorf("phasecorr: moving spectrum: %w", err)
	}

	var policy ratio.BandPolicy = ratio.FullResolution{}
	if cfg.band < 1 {
		policy = ratio.CenteredLowFrequency{Fraction: cfg.band}
	}
	op := ratio.NewOperator(ratio.WithWorkers(cfg.workers), ratio.WithBandPolicy(policy))
	op.SetFixedImage(fixedSpec)
	op.SetMovingImage(movingSpec)
	out, err := op.Compute()
	if err != nil {
		return nil, err
	}

	corrSize := out.Region().Size
	surface := make([]complex128, len(out.Data()))
	ifftshift(surface, out.Data(), corrSize)

	invPlan, err := fftn.NewPlan(corrSize...)
	if err != nil {
		return nil, fmt.Errorf("phasecorr: inverse plan for band %v: %w", cfg.band, err)
	}
	if err := invPlan.Inverse(surface, surface); err != nil {
		return nil, fmt.Errorf("phasecorr: inverse transform: %w", err)
	}

	return locateShift(surface, corrSize, padded, fg.Spacing, cfg), nil
}

// forwardSpectrum windows a copy of the image, embeds it in the zero-padded
// transform buffer, and returns its spectrum with the zero frequency
// centered.
func forwardSpectrum(plan *fftn.Plan, im *Image, size, padded []int, cfg config) ([]complex128, error) {
	samples := im.data
	if cfg.window != window.TypeRectangular {
		samples = append([]float64(nil), im.data...)
		err := window.ApplySeparable(samples, size, cfg.window, window.WithAlpha(cfg.windowAlpha))
		if err != nil {
			return nil, fmt.Errorf("phasecorr: window: %w", err)
		}
	}

	buf := make([]complex128, plan.Len())
	embedReal(buf, samples, size, padded)
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("phasecorr: forward transform: %w", err)
	}

	shifted := make([]complex128, len(buf))
	fftshift(shifted, buf, padded)
	return shifted, nil
}

// embedReal copies a row-major real block of the given size into the
// origin corner of a zeroed complex block of the padded size.
func embedReal(dst []complex128, src []float64, size, padded []int) {
	dim := len(size)
	inner := size[dim-1]
	dstStride := strides(padded)

	idx := make([]int, dim-1)
	srcOff := 0
	for {
		dstOff := 0
		for d := range idx {
			dstOff += idx[d] * dstStride[d]
		}
		for j := 0; j < inner; j++ {
			dst[dstOff+j] = complex(src[srcOff+j], 0)
		}
		srcOff += inner

		d := dim - 2
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			break
		}
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

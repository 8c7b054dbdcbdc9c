package ratio

import (
	"fmt"
	"runtime"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/spectral"
)

// config holds operator settings assembled from options.
type config struct {
	workers int
	policy  BandPolicy
}

// Option mutates the operator configuration.
type Option func(*config)

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
		policy:  FullResolution{},
	}
}

// WithWorkers caps the number of goroutines used per computation. Values
// below one leave the default (GOMAXPROCS) in place.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithBandPolicy selects the output-metadata adjustment strategy. Nil leaves
// the default [FullResolution] in place.
func WithBandPolicy(p BandPolicy) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.policy = p
		}
	}
}

// OperatorT computes the normalized cross-power spectrum of a fixed and a
// moving spectral image. See the package documentation for the contract;
// [Operator] and [Operator32] are the usual instantiations.
//
// Inputs are borrowed: the operator reads them during Compute and never
// writes to them. Each successful Compute allocates a fresh output image and
// transfers ownership to the caller. An operator must not be used from
// multiple goroutines at once; the parallelism lives inside Compute.
type OperatorT[F algofft.Float, C algofft.Complex] struct {
	cfg    config
	fixed  *spectral.ImageT[C]
	moving *spectral.ImageT[C]
	output *spectral.ImageT[C]
}

// Operator and Operator32 are the double- and single-precision
// specializations of OperatorT.
type (
	Operator   = OperatorT[float64, complex128]
	Operator32 = OperatorT[float32, complex64]
)

// NewOperatorT builds an operator for an arbitrary precision pair.
func NewOperatorT[F algofft.Float, C algofft.Complex](opts ...Option) *OperatorT[F, C] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OperatorT[F, C]{cfg: cfg}
}

// NewOperator builds a float64/complex128 operator.
func NewOperator(opts ...Option) *Operator {
	return NewOperatorT[float64, complex128](opts...)
}

// NewOperator32 builds a float32/complex64 operator.
func NewOperator32(opts ...Option) *Operator32 {
	return NewOperatorT[float32, complex64](opts...)
}

// SetFixedImage binds the fixed-image spectrum.
func (op *OperatorT[F, C]) SetFixedImage(img *spectral.ImageT[C]) { op.fixed = img }

// SetMovingImage binds the moving-image spectrum.
func (op *OperatorT[F, C]) SetMovingImage(img *spectral.ImageT[C]) { op.moving = img }

// GetOutput returns the most recently computed output, or nil before the
// first successful Compute.
func (op *OperatorT[F, C]) GetOutput() *spectral.ImageT[C] { return op.output }

// OutputGrid runs metadata negotiation alone and returns the grid a Compute
// call would produce. It is idempotent and does not touch sample data.
func (op *OperatorT[F, C]) OutputGrid() (grid.Grid, error) {
	if op.fixed == nil || op.moving == nil {
		return grid.Grid{}, ErrMissingInput
	}
	return NegotiateOutputGrid(op.fixed.Grid(), op.moving.Grid(), op.cfg.policy)
}

// Compute negotiates the output grid, allocates the output image, and fills
// it tile-parallel with the normalized cross power of the inputs.
// Configuration problems (missing inputs, mismatched dimensionality or
// extents) fail here before any per-sample work starts.
func (op *OperatorT[F, C]) Compute() (*spectral.ImageT[C], error) {
	if op.fixed == nil || op.moving == nil {
		return nil, ErrMissingInput
	}
	fixedGrid := op.fixed.Grid()
	movingGrid := op.moving.Grid()

	outGrid, err := NegotiateOutputGrid(fixedGrid, movingGrid, op.cfg.policy)
	if err != nil {
		return nil, err
	}
	out, err := spectral.NewT[C](outGrid)
	if err != nil {
		return nil, fmt.Errorf("ratio: allocate output: %w", err)
	}

	// Negotiation is complete: the output shape and the per-axis scale
	// factors below are fixed before the first worker starts.
	job := computeJob[F, C]{
		fixed:       op.fixed,
		moving:      op.moving,
		out:         out,
		fixedScale:  scaleFactors(outGrid, fixedGrid),
		movingScale: scaleFactors(outGrid, movingGrid),
	}
	job.run(op.cfg.workers)

	op.output = out
	return out, nil
}

// scaleFactors returns the per-axis output-to-input sampling ratios.
func scaleFactors(out, in grid.Grid) []float64 {
	s := make([]float64, out.Dim())
	for d := range s {
		s[d] = out.Spacing[d] / in.Spacing[d]
	}
	return s
}

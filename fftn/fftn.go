package fftn

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrNonPowerOfTwo reports an axis length the radix-2 plans cannot
	// transform.
	ErrNonPowerOfTwo = errors.New("fftn: axis length is not a power of two")

	// ErrLengthMismatch reports a buffer whose length disagrees with the
	// plan's sample count.
	ErrLengthMismatch = errors.New("fftn: buffer length does not match plan size")
)

// PlanT is a reusable N-dimensional FFT plan for row-major data.
type PlanT[C algofft.Complex] struct {
	size    []int
	stride  []int
	total   int
	plans   []*algofft.Plan[C] // per axis, nil for singleton axes
	scratch []C                // line buffer for strided axes
}

// Plan is the complex128 specialization.
type Plan = PlanT[complex128]

// Plan32 is the complex64 specialization.
type Plan32 = PlanT[complex64]

// NewPlanT creates a generic N-dimensional FFT plan. Every axis length must
// be a power of two.
func NewPlanT[C algofft.Complex](size ...int) (*PlanT[C], error) {
	if len(size) == 0 {
		return nil, fmt.Errorf("fftn: plan needs at least one axis")
	}

	total := 1
	longest := 0
	for _, n := range size {
		if n < 1 {
			return nil, fmt.Errorf("fftn: axis length must be positive, got %d", n)
		}
		if n&(n-1) != 0 {
			return nil, fmt.Errorf("%w: got %d", ErrNonPowerOfTwo, n)
		}
		total *= n
		if n > longest {
			longest = n
		}
	}

	p := &PlanT[C]{
		size:    append([]int(nil), size...),
		stride:  make([]int, len(size)),
		total:   total,
		plans:   make([]*algofft.Plan[C], len(size)),
		scratch: make([]C, longest),
	}
	acc := 1
	for d := len(size) - 1; d >= 0; d-- {
		p.stride[d] = acc
		acc *= size[d]
	}

	shared := make(map[int]*algofft.Plan[C], len(size))
	for d, n := range size {
		if n == 1 {
			continue
		}
		plan, ok := shared[n]
		if !ok {
			var err error
			plan, err = algofft.NewPlanT[C](n)
			if err != nil {
				return nil, fmt.Errorf("fftn: axis %d plan: %w", d, err)
			}
			shared[n] = plan
		}
		p.plans[d] = plan
	}

	return p, nil
}

// NewPlan creates an N-dimensional FFT plan for complex128 data.
func NewPlan(size ...int) (*Plan, error) {
	return NewPlanT[complex128](size...)
}

// NewPlan32 creates an N-dimensional FFT plan for complex64 data.
func NewPlan32(size ...int) (*Plan32, error) {
	return NewPlanT[complex64](size...)
}

// Size returns a copy of the per-axis sample counts.
func (p *PlanT[C]) Size() []int {
	return append([]int(nil), p.size...)
}

// Len returns the total number of samples the plan transforms.
func (p *PlanT[C]) Len() int {
	return p.total
}

// Forward computes the unnormalized N-dimensional DFT of src into dst.
// dst and src may be the same slice.
func (p *PlanT[C]) Forward(dst, src []C) error {
	return p.transform(dst, src, false)
}

// Inverse computes the 1/N-normalized inverse N-dimensional DFT of src
// into dst. dst and src may be the same slice.
func (p *PlanT[C]) Inverse(dst, src []C) error {
	return p.transform(dst, src, true)
}

func (p *PlanT[C]) transform(dst, src []C, inverse bool) error {
	if len(dst) != p.total || len(src) != p.total {
		return fmt.Errorf("%w: dst %d, src %d, plan needs %d",
			ErrLengthMismatch, len(dst), len(src), p.total)
	}
	if &dst[0] != &src[0] {
		copy(dst, src)
	}
	for axis := range p.size {
		if err := p.transformAxis(dst, axis, inverse); err != nil {
			return err
		}
	}
	return nil
}

// transformAxis runs the 1-D transform along one axis across every line of
// the buffer. Lines of the innermost axis are contiguous and transform in
// place; outer axes gather each strided line into scratch first.
func (p *PlanT[C]) transformAxis(data []C, axis int, inverse bool) error {
	n := p.size[axis]
	if n == 1 {
		return nil
	}
	plan := p.plans[axis]
	inner := p.stride[axis]

	if inner == 1 {
		for off := 0; off < p.total; off += n {
			line := data[off : off+n]
			if err := transformLine(plan, line, inverse); err != nil {
				return fmt.Errorf("fftn: axis %d: %w", axis, err)
			}
		}
		return nil
	}

	scratch := p.scratch[:n]
	block := n * inner
	for blockBase := 0; blockBase < p.total; blockBase += block {
		for b := 0; b < inner; b++ {
			base := blockBase + b
			for k := 0; k < n; k++ {
				scratch[k] = data[base+k*inner]
			}
			if err := transformLine(plan, scratch, inverse); err != nil {
				return fmt.Errorf("fftn: axis %d: %w", axis, err)
			}
			for k := 0; k < n; k++ {
				data[base+k*inner] = scratch[k]
			}
		}
	}
	return nil
}

func transformLine[C algofft.Complex](plan *algofft.Plan[C], line []C, inverse bool) error {
	if inverse {
		return plan.Inverse(line, line)
	}
	return plan.Forward(line, line)
}

package ratio

import "math"

// BandPolicy adjusts negotiated output metadata before the output image is
// allocated. The operator passes the tentative per-axis spacing, index, and
// size; implementations mutate the slices in place. Whatever a policy does,
// the operator clamps the result back into the range the inputs can supply.
type BandPolicy interface {
	AdjustOutputInformation(spacing []float64, index, size []int)
}

// FullResolution keeps the negotiated metadata unchanged: the output covers
// every frequency sample the coarser input provides. It is the default
// policy and its zero value is ready to use.
type FullResolution struct{}

// AdjustOutputInformation implements BandPolicy as a no-op.
func (FullResolution) AdjustOutputInformation(spacing []float64, index, size []int) {}

// CenteredLowFrequency keeps only the centered fraction of each axis: the
// size shrinks to round(Fraction*size), spacing stays, and the index
// advances by half of the removed samples so the kept window is symmetric
// around the axis center. For spectra stored DC-centered this selects the
// low-frequency band. The restriction is visible in the output metadata.
type CenteredLowFrequency struct {
	// Fraction of each axis to keep, in (0, 1]. Values of at least one
	// keep the full axis; values so small that nothing would remain keep
	// a single sample.
	Fraction float64
}

// AdjustOutputInformation implements BandPolicy.
func (p CenteredLowFrequency) AdjustOutputInformation(spacing []float64, index, size []int) {
	frac := math.Min(p.Fraction, 1)
	for d := range size {
		keep := int(math.Round(frac * float64(size[d])))
		if keep < 1 {
			keep = 1
		}
		if keep >= size[d] {
			continue
		}
		index[d] += (size[d] - keep) / 2
		size[d] = keep
	}
}

// BandFunc adapts a plain function to BandPolicy.
type BandFunc func(spacing []float64, index, size []int)

// AdjustOutputInformation implements BandPolicy.
func (f BandFunc) AdjustOutputInformation(spacing []float64, index, size []int) {
	f(spacing, index, size)
}

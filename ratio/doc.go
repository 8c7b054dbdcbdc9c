// Package ratio computes the normalized cross-power spectrum of two
// frequency-domain images, the core numeric step of phase-correlation
// registration:
//
//	ratio = (fixed * conj(moving)) / |fixed * conj(moving)|
//
// Inverse-transforming the result yields a correlation surface whose peak
// sits at the translation aligning the two source images.
//
// # Inputs and output
//
// Both inputs are complex spectral images ([spectral.ImageT]) that must
// cover the same physical extent; their per-axis sample counts may differ
// when the source images were captured at different resolutions. The output
// sampling is negotiated per axis from the coarser input, so the result
// never promises frequencies that one of the inputs cannot supply:
//
//	op := ratio.NewOperator()
//	op.SetFixedImage(fixed)
//	op.SetMovingImage(moving)
//	out, err := op.Compute()
//
// The operator borrows its inputs for the duration of Compute and never
// writes to them. Every successful Compute allocates a fresh output image
// and transfers its ownership to the caller.
//
// # Band policies
//
// A [BandPolicy] may shrink the negotiated output metadata before
// allocation, trading correlation-surface resolution for noise robustness
// and compute cost. [FullResolution] (the default) keeps everything;
// [CenteredLowFrequency] keeps the centered fraction of each axis, which is
// the low-frequency band when spectra are stored DC-centered. Adjustments
// are clamped so the output never exceeds what the inputs can supply.
//
// # Region negotiation
//
// [NegotiateOutputGrid], [RequiredInputRegion], and [FullOutputRegion] are
// pure functions, usable without an operator, that answer the planning
// questions: what grid will the output have, which input samples does a
// given output region need, and what does a partial-output request widen to.
//
// # Concurrency
//
// Compute partitions the output region into disjoint tiles and fills them
// from parallel goroutines. The per-sample kernel [Sample] is a pure
// function, so results are independent of the partitioning; a run is
// deterministic for given inputs.
package ratio

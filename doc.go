// Package phasecorr estimates the translation between two equally sampled
// real-valued images by phase correlation.
//
// Both images are apodized, zero-padded to power-of-two sizes, and
// transformed to the frequency domain. The normalized cross-power spectrum
//
//	ratio = (F * conj(M)) / |F * conj(M)|
//
// keeps only the relative phase of the two spectra; its inverse transform
// concentrates into a sharp peak at the circular displacement between the
// images. EstimateShift locates that peak, optionally refines it to
// subsample precision, and reports the shift both in lattice samples and in
// the physical units of the input grids.
//
// The normalized cross power itself is computed by the ratio subpackage,
// which also handles inputs of different sampling densities; this package
// drives it for the common equal-sampling registration case.
package phasecorr

// Package spectral provides the complex-valued N-dimensional image container
// used on both sides of a frequency-domain computation, plus bulk
// magnitude/power/phase extraction.
//
// The package intentionally does not implement Fourier transforms. It stores
// spectra produced elsewhere together with their sampling-grid metadata, so
// operators can reason about physical extent without touching pixel data.
package spectral

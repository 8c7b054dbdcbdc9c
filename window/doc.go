// Package window provides apodization windows for spatial images ahead of
// Fourier transformation.
//
// The DFT treats an image as one period of an endless tiling; intensity
// jumps between opposite edges then leak energy across the whole spectrum
// and blur correlation peaks. Tapering the image toward its edges with a
// window suppresses that leakage. Windows here are separable: the
// N-dimensional window is the outer product of one 1-D coefficient vector
// per axis.
package window

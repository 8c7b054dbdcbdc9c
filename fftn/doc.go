// Package fftn provides N-dimensional fast Fourier transforms over
// row-major complex buffers.
//
// A plan factors the N-D transform into one 1-D pass per axis, reusing a
// single radix-2 plan for every axis of the same length. Axis lengths must
// be powers of two. Forward applies the unnormalized DFT; Inverse applies
// the 1/N-normalized inverse, so a Forward/Inverse round trip reproduces
// the input.
//
// Plans hold scratch buffers for strided axes and are not safe for
// concurrent use. Create one plan per goroutine, or serialize calls.
package fftn

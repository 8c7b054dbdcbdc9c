// Package grid describes uniform sampling lattices for N-dimensional images:
// per-axis origin, spacing, and index ranges, plus the physical-extent math
// and region partitioning used by spectrum-domain operators.
//
// Axis 0 varies slowest; the final axis is contiguous in storage. A sample
// with global index i on axis d sits at Origin[d] + i*Spacing[d], so the
// physical span of an axis is its sample count times its spacing.
package grid

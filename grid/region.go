package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegion reports a region whose index and size slices disagree in
// length or whose size is not strictly positive on every axis.
var ErrInvalidRegion = errors.New("grid: invalid region")

// Region is an axis-aligned index range: on axis d it covers the global
// indices Index[d] through Index[d]+Size[d]-1.
type Region struct {
	Index []int
	Size  []int
}

// NewRegion builds a region from an index origin and per-axis sample counts.
// Both slices are copied.
func NewRegion(index, size []int) Region {
	r := Region{
		Index: make([]int, len(index)),
		Size:  make([]int, len(size)),
	}
	copy(r.Index, index)
	copy(r.Size, size)
	return r
}

// ZeroRegion builds a region with index origin zero and the given sizes.
func ZeroRegion(size ...int) Region {
	return NewRegion(make([]int, len(size)), size)
}

// Dim returns the number of axes.
func (r Region) Dim() int { return len(r.Size) }

// Validate checks that the region has at least one axis, matching slice
// lengths, and a strictly positive size on every axis.
func (r Region) Validate() error {
	if len(r.Size) == 0 || len(r.Index) != len(r.Size) {
		return fmt.Errorf("%w: index/size lengths %d/%d", ErrInvalidRegion, len(r.Index), len(r.Size))
	}
	for d, n := range r.Size {
		if n <= 0 {
			return fmt.Errorf("%w: axis %d size %d", ErrInvalidRegion, d, n)
		}
	}
	return nil
}

// NumSamples returns the total sample count, or zero for a degenerate region.
func (r Region) NumSamples() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= s
	}
	return n
}

// Contains reports whether the global index idx lies inside the region.
func (r Region) Contains(idx []int) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for d := range idx {
		if idx[d] < r.Index[d] || idx[d] >= r.Index[d]+r.Size[d] {
			return false
		}
	}
	return true
}

// ContainsRegion reports whether other lies entirely inside r.
func (r Region) ContainsRegion(other Region) bool {
	if other.Dim() != r.Dim() {
		return false
	}
	for d := range r.Size {
		if other.Index[d] < r.Index[d] ||
			other.Index[d]+other.Size[d] > r.Index[d]+r.Size[d] {
			return false
		}
	}
	return true
}

// Intersect returns the overlap of r and other. The second result is false
// when the regions are disjoint or differ in dimension.
func (r Region) Intersect(other Region) (Region, bool) {
	if other.Dim() != r.Dim() {
		return Region{}, false
	}
	out := Region{
		Index: make([]int, r.Dim()),
		Size:  make([]int, r.Dim()),
	}
	for d := range r.Size {
		lo := max(r.Index[d], other.Index[d])
		hi := min(r.Index[d]+r.Size[d], other.Index[d]+other.Size[d])
		if hi <= lo {
			return Region{}, false
		}
		out.Index[d] = lo
		out.Size[d] = hi - lo
	}
	return out, true
}

// Equal reports whether two regions cover exactly the same index range.
func (r Region) Equal(other Region) bool {
	if other.Dim() != r.Dim() {
		return false
	}
	for d := range r.Size {
		if r.Index[d] != other.Index[d] || r.Size[d] != other.Size[d] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the region.
func (r Region) Clone() Region {
	return NewRegion(r.Index, r.Size)
}

// String renders the region as half-open per-axis ranges for diagnostics.
func (r Region) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for d := range r.Size {
		if d > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%d", r.Index[d], r.Index[d]+r.Size[d])
	}
	b.WriteByte(']')
	return b.String()
}

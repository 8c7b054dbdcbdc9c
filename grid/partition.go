package grid

// Partition splits r into at most n disjoint sub-regions that together cover
// r exactly. The split runs along the axis with the most samples, keeping
// tiles rectangular; fewer parts are returned when that axis is shorter than
// n. How a region is partitioned carries no meaning for per-sample
// computations, only for scheduling.
func Partition(r Region, n int) []Region {
	if n <= 1 || r.Dim() == 0 {
		return []Region{r.Clone()}
	}
	axis := 0
	for d := 1; d < r.Dim(); d++ {
		if r.Size[d] > r.Size[axis] {
			axis = d
		}
	}
	parts := min(n, r.Size[axis])
	if parts <= 1 {
		return []Region{r.Clone()}
	}
	out := make([]Region, 0, parts)
	base := r.Size[axis] / parts
	rem := r.Size[axis] % parts
	start := r.Index[axis]
	for i := 0; i < parts; i++ {
		span := base
		if i < rem {
			span++
		}
		sub := r.Clone()
		sub.Index[axis] = start
		sub.Size[axis] = span
		out = append(out, sub)
		start += span
	}
	return out
}

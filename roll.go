package phasecorr

// strides returns row-major strides for the given axis sizes.
func strides(size []int) []int {
	s := make([]int, len(size))
	acc := 1
	for d := len(size) - 1; d >= 0; d-- {
		s[d] = acc
		acc *= size[d]
	}
	return s
}

// rollComplex writes src circularly shifted by shift samples per axis into
// dst. dst and src must be distinct buffers of the same row-major shape.
func rollComplex(dst, src []complex128, size, shift []int) {
	str := strides(size)

	// Per-axis source index for each destination index.
	maps := make([][]int, len(size))
	for d, n := range size {
		s := shift[d] % n
		if s < 0 {
			s += n
		}
		m := make([]int, n)
		for j := range m {
			k := j - s
			if k < 0 {
				k += n
			}
			m[j] = k
		}
		maps[d] = m
	}

	idx := make([]int, len(size))
	for flat := range dst {
		off := 0
		for d := range idx {
			off += maps[d][idx[d]] * str[d]
		}
		dst[flat] = src[off]

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
}

// fftshift rolls every axis so the zero-frequency sample lands at the
// center index floor(n/2).
func fftshift(dst, src []complex128, size []int) {
	shift := make([]int, len(size))
	for d, n := range size {
		shift[d] = n / 2
	}
	rollComplex(dst, src, size, shift)
}

// ifftshift undoes fftshift, returning the zero-frequency sample to index
// zero on every axis.
func ifftshift(dst, src []complex128, size []int) {
	shift := make([]int, len(size))
	for d, n := range size {
		shift[d] = -(n / 2)
	}
	rollComplex(dst, src, size, shift)
}

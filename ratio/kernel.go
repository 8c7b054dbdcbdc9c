package ratio

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Smallest positive normal magnitudes of the supported precisions. A cross
// power below the normal range of its own precision carries no usable phase.
const (
	zeroThreshold32 = 0x1p-126
	zeroThreshold64 = 0x1p-1022
)

// ZeroThreshold returns the cross-power magnitude below which Sample emits
// complex zero for precision F.
func ZeroThreshold[F algofft.Float]() float64 {
	var f F
	if _, ok := any(f).(float32); ok {
		return zeroThreshold32
	}
	return zeroThreshold64
}

// Sample computes one normalized cross-power coefficient:
//
//	(fixed * conj(moving)) / |fixed * conj(moving)|
//
// The result has unit magnitude, except that a cross power whose magnitude
// falls below [ZeroThreshold] yields exactly zero. Arithmetic runs in
// float64 regardless of C, with the magnitude taken as sqrt(re^2 + im^2).
func Sample[F algofft.Float, C algofft.Complex](fixed, moving C) C {
	f := complex128(fixed)
	m := complex128(moving)
	p := f * complex(real(m), -imag(m))
	mag := math.Sqrt(real(p)*real(p) + imag(p)*imag(p))
	if mag < ZeroThreshold[F]() {
		return 0
	}
	return C(complex(real(p)/mag, imag(p)/mag))
}

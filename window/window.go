package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTukey
	TypeWelch
)

// ErrLengthMismatch reports a data buffer whose length disagrees with the
// product of the axis sizes.
var ErrLengthMismatch = errors.New("window: data length does not match sizes")

// String returns the canonical lowercase name of the window type.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeTukey:
		return "tukey"
	case TypeWelch:
		return "welch"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType resolves a window name as written in flags and configuration
// files.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect", "none":
		return TypeRectangular, nil
	case "hann", "hanning":
		return TypeHann, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	case "tukey":
		return TypeTukey, nil
	case "welch":
		return TypeWelch, nil
	}
	return TypeRectangular, fmt.Errorf("window: unknown type %q", name)
}

// Cosine-sum coefficient sets evaluated by cosineFromCoeffs.
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{25.0 / 46.0, -21.0 / 46.0}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 0.5}
}

// WithAlpha sets the taper parameter of parametric windows: for Tukey the
// tapered fraction of each axis, in [0, 1]. Values outside that range are
// ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 1 {
			c.alpha = v
		}
	}
}

// WithPeriodic selects the periodic (DFT framing) form, which omits the
// final symmetric sample so the window tiles seamlessly, instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns the window coefficients for one axis of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	out := make([]float64, length)
	for i := range out {
		out[i] = eval(t, samplePosition(i, length, cfg.periodic), cfg)
	}
	return out
}

// Apply multiplies a 1-D buffer in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplySeparable multiplies an N-dimensional row-major buffer (axis 0
// slowest, final axis contiguous) in place by the separable window: the
// outer product of per-axis coefficient vectors of the given type.
func ApplySeparable(data []float64, size []int, t Type, opts ...Option) error {
	if len(size) == 0 {
		return fmt.Errorf("%w: no axes", ErrLengthMismatch)
	}
	n := 1
	for _, s := range size {
		if s <= 0 {
			return fmt.Errorf("%w: axis size %d", ErrLengthMismatch, s)
		}
		n *= s
	}
	if n != len(data) {
		return fmt.Errorf("%w: have %d, sizes need %d", ErrLengthMismatch, len(data), n)
	}

	axes := make([][]float64, len(size))
	for d, s := range size {
		axes[d] = Generate(t, s, opts...)
	}

	inner := len(size) - 1
	if inner == 0 {
		vecmath.MulBlockInPlace(data, axes[0])
		return nil
	}

	idx := make([]int, inner)
	innerLen := size[inner]
	for off := 0; off < n; off += innerLen {
		outer := 1.0
		for d := 0; d < inner; d++ {
			outer *= axes[d][idx[d]]
		}
		line := data[off : off+innerLen]
		for i := range line {
			line[i] *= outer * axes[inner][i]
		}
		for d := inner - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
	return nil
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		// A singleton axis sits at the window peak rather than its edge,
		// so separable application never zeroes a whole image.
		return 0.5
	}
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	return float64(n) / den
}

func eval(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}
	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

package ratio_test

import (
	"fmt"

	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/ratio"
	"github.com/cwbudde/algo-phasecorr/spectral"
)

func ExampleOperator() {
	g := grid.Regular(4)
	fixed, _ := spectral.FromSlice(g, []complex128{2, 2i, -2, -2i})
	moving, _ := spectral.FromSlice(g, []complex128{1, 1, 1, 1})

	op := ratio.NewOperator()
	op.SetFixedImage(fixed)
	op.SetMovingImage(moving)

	out, err := op.Compute()
	if err != nil {
		fmt.Println("compute:", err)
		return
	}
	for _, v := range out.Data() {
		fmt.Printf("(%g%+gi)\n", real(v), imag(v))
	}
	// Output:
	// (1+0i)
	// (0+1i)
	// (-1+0i)
	// (0-1i)
}

func ExampleNegotiateOutputGrid() {
	// Both inputs span 8 physical units; the moving image is sampled at
	// half the resolution, so it dictates the output sampling.
	fixed := grid.New([]float64{0}, []float64{1}, grid.ZeroRegion(8))
	moving := grid.New([]float64{0}, []float64{2}, grid.ZeroRegion(4))

	out, err := ratio.NegotiateOutputGrid(fixed, moving, nil)
	if err != nil {
		fmt.Println("negotiate:", err)
		return
	}
	fmt.Println("spacing:", out.Spacing[0])
	fmt.Println("samples:", out.Region.Size[0])
	// Output:
	// spacing: 2
	// samples: 4
}

func ExampleCenteredLowFrequency() {
	spacing := []float64{1, 1}
	index := []int{0, 0}
	size := []int{16, 16}

	ratio.CenteredLowFrequency{Fraction: 0.5}.AdjustOutputInformation(spacing, index, size)

	fmt.Println("index:", index)
	fmt.Println("size:", size)
	// Output:
	// index: [4 4]
	// size: [8 8]
}

package ratio

import (
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-phasecorr/grid"
	"github.com/cwbudde/algo-phasecorr/spectral"
)

// parallelThreshold is the output sample count below which goroutine fan-out
// costs more than it saves.
const parallelThreshold = 4096

// computeJob carries everything a worker needs to fill output tiles. All
// fields are read-only during the run except the output buffer, and tiles
// address disjoint parts of it.
type computeJob[F algofft.Float, C algofft.Complex] struct {
	fixed, moving *spectral.ImageT[C]
	out           *spectral.ImageT[C]
	fixedScale    []float64
	movingScale   []float64
}

func (job *computeJob[F, C]) run(workers int) {
	region := job.out.Region()
	if workers <= 1 || region.NumSamples() < parallelThreshold {
		job.computeRegion(region)
		return
	}
	tiles := grid.Partition(region, workers)
	if len(tiles) == 1 {
		job.computeRegion(tiles[0])
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(tiles))
	for _, tile := range tiles {
		go func(r grid.Region) {
			defer wg.Done()
			job.computeRegion(r)
		}(tile)
	}
	wg.Wait()
}

// computeRegion fills the output samples of one tile. Sample order inside a
// tile carries no meaning; every output value depends only on its own pair
// of input coefficients.
func (job *computeJob[F, C]) computeRegion(tile grid.Region) {
	dim := tile.Dim()
	inner := dim - 1
	innerLen := tile.Size[inner]

	outData := job.out.Data()
	fixedData := job.fixed.Data()
	movingData := job.moving.Data()

	fixedRegion := job.fixed.Region()
	movingRegion := job.moving.Region()

	idx := append([]int(nil), tile.Index...)
	lines := tile.NumSamples() / innerLen

	for line := 0; line < lines; line++ {
		// Line base offsets over the outer axes; the inner axis is
		// contiguous in all three buffers.
		outOff := job.out.OffsetOf(idx)
		fixedBase := 0
		movingBase := 0
		for d := 0; d < inner; d++ {
			jf := clampIndex(mapIndex(idx[d], job.fixedScale[d]), fixedRegion.Index[d], fixedRegion.Size[d])
			jm := clampIndex(mapIndex(idx[d], job.movingScale[d]), movingRegion.Index[d], movingRegion.Size[d])
			fixedBase += (jf - fixedRegion.Index[d]) * job.fixed.Stride(d)
			movingBase += (jm - movingRegion.Index[d]) * job.moving.Stride(d)
		}

		k0 := idx[inner]
		for i := 0; i < innerLen; i++ {
			jf := clampIndex(mapIndex(k0+i, job.fixedScale[inner]), fixedRegion.Index[inner], fixedRegion.Size[inner])
			jm := clampIndex(mapIndex(k0+i, job.movingScale[inner]), movingRegion.Index[inner], movingRegion.Size[inner])
			outData[outOff+i] = Sample[F, C](
				fixedData[fixedBase+jf-fixedRegion.Index[inner]],
				movingData[movingBase+jm-movingRegion.Index[inner]],
			)
		}

		for d := inner - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < tile.Index[d]+tile.Size[d] {
				break
			}
			idx[d] = tile.Index[d]
		}
	}
}

// mapIndex maps a global output index to the corresponding global input
// index under the physical-extent-preserving correspondence.
func mapIndex(k int, scale float64) int {
	if scale == 1 {
		return k
	}
	return int(math.Floor(float64(k)*scale + indexJitter))
}

// clampIndex keeps a mapped index inside the input's valid range.
func clampIndex(j, lo, size int) int {
	if j < lo {
		return lo
	}
	if hi := lo + size - 1; j > hi {
		return hi
	}
	return j
}

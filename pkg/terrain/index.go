package terrain

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
	"github.com/lintang-b-s/Terrainx/pkg/util"
	"golang.org/x/sync/errgroup"
)

var ErrDimensionMismatch = errors.New("input grids have unequal dimensions")

// SPI computes the stream power index
//
//	ln(cellsize*(flow+0.001) * (slope/100 + 0.001))
//
// per cell. Both grids must share dimensions; cell size is taken from the
// flow accumulation grid. Output no-data is pkg.INDEX_NODATA, which the log
// of the offset terms can never produce.
func SPI(flowAccumulation, percentSlope *datastructure.Grid[float64]) (*datastructure.Grid[float64], error) {
	return derivedIndex(flowAccumulation, percentSlope, func(cellSize, flow, slope float64) float64 {
		return math.Log(cellSize * (flow + 0.001) * (slope/100 + 0.001))
	})
}

// CTI computes the compound topographic (wetness) index
//
//	ln(cellsize*(flow+0.001) / (slope/100 + 0.001))
//
// with the same contract as SPI.
func CTI(flowAccumulation, percentSlope *datastructure.Grid[float64]) (*datastructure.Grid[float64], error) {
	return derivedIndex(flowAccumulation, percentSlope, func(cellSize, flow, slope float64) float64 {
		return math.Log(cellSize * (flow + 0.001) / (slope/100 + 0.001))
	})
}

func derivedIndex(flowAccumulation, percentSlope *datastructure.Grid[float64],
	indexFunc func(cellSize, flow, slope float64) float64) (*datastructure.Grid[float64], error) {

	if flowAccumulation.Width() != percentSlope.Width() ||
		flowAccumulation.Height() != percentSlope.Height() {
		return nil, fmt.Errorf("%w: flow accumulation %dx%d, percent slope %dx%d",
			ErrDimensionMismatch,
			flowAccumulation.Width(), flowAccumulation.Height(),
			percentSlope.Width(), percentSlope.Height())
	}

	result := datastructure.NewGrid[float64](0, 0, 0, pkg.INDEX_NODATA)
	result.CopyProps(flowAccumulation)

	width, height := flowAccumulation.Width(), flowAccumulation.Height()
	cellSize := flowAccumulation.CellSize()

	numWorkers := runtime.NumCPU()
	bandSize := util.Max(1, (height+numWorkers-1)/numWorkers)

	g := errgroup.Group{}
	for y0 := 0; y0 < height; y0 += bandSize {
		y1 := util.Min(y0+bandSize, height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					if flowAccumulation.IsNoData(x, y) || percentSlope.IsNoData(x, y) {
						result.Set(x, y, result.NoData())
						continue
					}
					result.Set(x, y, indexFunc(cellSize, flowAccumulation.At(x, y), percentSlope.At(x, y)))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

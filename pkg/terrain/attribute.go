package terrain

import (
	"math"
	"runtime"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/concurrent"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
	"github.com/lintang-b-s/Terrainx/pkg/util"
	"go.uber.org/zap"
)

// AttributeEngine derives per-cell terrain attributes (Horn 1981 slope and
// aspect, Zevenbergen & Thorne 1987 curvatures) from a 3x3 elevation
// stencil. Cells are independent, so rows are fanned out over a worker pool.
type AttributeEngine struct {
	unitFactor float64
	numWorkers int
	log        *zap.Logger
}

// NewAttributeEngine builds an engine. unitFactor scales elevations before
// the derivatives are taken (pkg.METERS_PER_FOOT for foot-denominated DEMs);
// pass 1.0 when elevations are already in the cell size's linear unit, which
// keeps every term of the stencil in consistent units.
func NewAttributeEngine(unitFactor float64, numWorkers int, log *zap.Logger) *AttributeEngine {
	if unitFactor <= 0 {
		unitFactor = 1.0
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AttributeEngine{
		unitFactor: unitFactor,
		numWorkers: numWorkers,
		log:        log,
	}
}

type rowBand struct {
	y0, y1 int
}

// Compute derives attrib for every cell of elevations. The output grid takes
// the dimensions and cell size of elevations, with no-data fixed to
// pkg.ATTRIBUTE_NODATA; input no-data cells map to output no-data.
func (e *AttributeEngine) Compute(elevations *datastructure.Grid[float64], attrib pkg.TerrainAttribute) *datastructure.Grid[float64] {
	attribs := datastructure.NewGrid[float64](0, 0, 0, pkg.ATTRIBUTE_NODATA)
	attribs.CopyProps(elevations)

	height := elevations.Height()
	bandSize := util.Max(1, (height+e.numWorkers-1)/e.numWorkers)
	bands := make([]rowBand, 0, e.numWorkers)
	for y := 0; y < height; y += bandSize {
		bands = append(bands, rowBand{y0: y, y1: util.Min(y+bandSize, height)})
	}

	pool := concurrent.NewWorkerPool[rowBand, int](e.numWorkers, util.Max(1, len(bands)))
	pool.Start(func(band rowBand) int {
		return e.computeBand(elevations, attribs, attrib, band)
	})
	for _, band := range bands {
		pool.AddJob(band)
	}
	pool.Close()
	pool.Wait()

	cells := 0
	for n := range pool.CollectResults() {
		cells += n
	}
	e.log.Info("terrain attribute computed",
		zap.String("attribute", attrib.String()),
		zap.Int("cells", cells))

	return attribs
}

// computeBand fills rows [band.y0, band.y1); bands are disjoint, so workers
// never write the same output cell.
func (e *AttributeEngine) computeBand(elevations, attribs *datastructure.Grid[float64], attrib pkg.TerrainAttribute, band rowBand) int {
	for y := band.y0; y < band.y1; y++ {
		for x := 0; x < elevations.Width(); x++ {
			if elevations.IsNoData(x, y) {
				attribs.Set(x, y, attribs.NoData())
				continue
			}

			riserun, aspect, curvature, profile, planform := e.cellAttributes(elevations, x, y)
			switch attrib {
			case pkg.CURVATURE:
				attribs.Set(x, y, curvature)
			case pkg.PLANFORM_CURVATURE:
				attribs.Set(x, y, planform)
			case pkg.PROFILE_CURVATURE:
				attribs.Set(x, y, profile)
			case pkg.ASPECT:
				attribs.Set(x, y, aspect)
			case pkg.SLOPE_RISERUN:
				attribs.Set(x, y, riserun)
			case pkg.SLOPE_PERCENT:
				attribs.Set(x, y, riserun*100)
			case pkg.SLOPE_RADIAN:
				attribs.Set(x, y, math.Atan(riserun))
			case pkg.SLOPE_DEGREE:
				attribs.Set(x, y, util.RadiansToDegree(math.Atan(riserun)))
			default:
				attribs.Set(x, y, attribs.NoData())
			}
		}
	}
	return (band.y1 - band.y0) * elevations.Width()
}

// cellAttributes evaluates the 3x3 stencil at (x0, y0). Never called on a
// no-data cell. The window is labeled
//
//	za zb zc
//	zd ze zf
//	zg zh zi
//
// with neighbours outside the grid, or holding no-data, flattened to the
// center elevation.
func (e *AttributeEngine) cellAttributes(elevations *datastructure.Grid[float64], x0, y0 int) (riserun, aspect, curvature, profile, planform float64) {
	ze := elevations.At(x0, y0)
	window := func(dx, dy int) float64 {
		x, y := x0+dx, y0+dy
		if !elevations.InGrid(x, y) || elevations.IsNoData(x, y) {
			return ze
		}
		return elevations.At(x, y)
	}
	za := window(-1, -1)
	zb := window(0, -1)
	zc := window(1, -1)
	zd := window(-1, 0)
	zf := window(1, 0)
	zg := window(-1, 1)
	zh := window(0, 1)
	zi := window(1, 1)

	u := e.unitFactor
	za *= u
	zb *= u
	zc *= u
	zd *= u
	ze *= u
	zf *= u
	zg *= u
	zh *= u
	zi *= u

	// Horn 1981 weighted differences; aspect does not use the cell size.
	dzdx := ((zc + 2*zf + zi) - (za + 2*zd + zg)) / 8
	dzdy := ((zg + 2*zh + zi) - (za + 2*zb + zc)) / 8

	aspect = util.RadiansToDegree(math.Atan2(dzdy, -dzdx))
	if aspect < 0 {
		aspect = 90 - aspect
	} else if aspect > 90 {
		aspect = 360 - aspect + 90
	} else {
		aspect = 90 - aspect
	}

	cellSize := elevations.CellSize()
	dzdx /= cellSize
	dzdy /= cellSize
	riserun = math.Sqrt(dzdx*dzdx + dzdy*dzdy)

	if riserun == 0 {
		// flat cell: no defined aspect, zero curvature everywhere
		return 0, pkg.FLAT_ASPECT, 0, 0, 0
	}

	// Zevenbergen & Thorne 1987 second-order differences
	//
	//	Z1 Z2 Z3   za zb zc
	//	Z4 Z5 Z6   zd ze zf
	//	Z7 Z8 Z9   zg zh zi
	L := cellSize
	D := ((zd+zf)/2 - ze) / (L * L)
	E := ((zb+zh)/2 - ze) / (L * L)
	F := (-za + zc + zg - zi) / (4 * L * L)
	G := (-zd + zf) / (2 * L)
	H := (zb - zh) / (2 * L)

	curvature = -2 * (D + E) * 100

	if G == 0 && H == 0 {
		return riserun, aspect, curvature, 0, 0
	}
	profile = 2 * (D*G*G + E*H*H + F*G*H) / (G*G + H*H) * 100
	planform = -2 * (D*H*H + E*G*G - F*G*H) / (G*G + H*H) * 100
	return riserun, aspect, curvature, profile, planform
}

// Slope computes one of the slope attributes (riserun, percent, radian,
// degree).
func (e *AttributeEngine) Slope(elevations *datastructure.Grid[float64], slopeType pkg.TerrainAttribute) *datastructure.Grid[float64] {
	return e.Compute(elevations, slopeType)
}

func (e *AttributeEngine) Aspect(elevations *datastructure.Grid[float64]) *datastructure.Grid[float64] {
	return e.Compute(elevations, pkg.ASPECT)
}

func (e *AttributeEngine) Curvature(elevations *datastructure.Grid[float64]) *datastructure.Grid[float64] {
	return e.Compute(elevations, pkg.CURVATURE)
}

func (e *AttributeEngine) PlanformCurvature(elevations *datastructure.Grid[float64]) *datastructure.Grid[float64] {
	return e.Compute(elevations, pkg.PLANFORM_CURVATURE)
}

func (e *AttributeEngine) ProfileCurvature(elevations *datastructure.Grid[float64]) *datastructure.Grid[float64] {
	return e.Compute(elevations, pkg.PROFILE_CURVATURE)
}

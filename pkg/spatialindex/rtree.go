package spatialindex

import (
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// WatershedExtent is the bounding rectangle of one labeled basin, in cell
// coordinates.
type WatershedExtent struct {
	label                  int32
	minX, minY, maxX, maxY int
}

func (we WatershedExtent) GetLabel() int32 {
	return we.label
}

func (we WatershedExtent) GetBounds() (minX, minY, maxX, maxY int) {
	return we.minX, we.minY, we.maxX, we.maxY
}

type Rtree struct {
	tr     *rtree.RTreeG[WatershedExtent]
	labels *datastructure.Grid[int32]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[WatershedExtent]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes the bounding box of every watershed in a completed label
// grid. One pass over the grid, one insert per basin.
func (rt *Rtree) Build(labels *datastructure.Grid[int32], log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("Building R-tree watershed index...")

	extents := make(map[int32]*WatershedExtent)
	for y := 0; y < labels.Height(); y++ {
		for x := 0; x < labels.Width(); x++ {
			if labels.IsNoData(x, y) {
				continue
			}
			label := labels.At(x, y)
			ext, ok := extents[label]
			if !ok {
				extents[label] = &WatershedExtent{label: label, minX: x, minY: y, maxX: x, maxY: y}
				continue
			}
			if x < ext.minX {
				ext.minX = x
			}
			if x > ext.maxX {
				ext.maxX = x
			}
			if y < ext.minY {
				ext.minY = y
			}
			if y > ext.maxY {
				ext.maxY = y
			}
		}
	}

	for _, ext := range extents {
		rt.tr.Insert(
			[2]float64{float64(ext.minX), float64(ext.minY)},
			[2]float64{float64(ext.maxX), float64(ext.maxY)},
			*ext)
	}
	rt.labels = labels

	log.Info("R-tree watershed index built.", zap.Int("watersheds", len(extents)))
}

// WatershedAt returns the label of the basin covering cell (x, y), or false
// when the cell is outside every basin. The R-tree narrows the candidates;
// the label grid settles overlapping extents.
func (rt *Rtree) WatershedAt(x, y int) (int32, bool) {
	if rt.labels == nil || !rt.labels.InGrid(x, y) {
		return 0, false
	}

	found := false
	var label int32
	q := [2]float64{float64(x), float64(y)}
	rt.tr.Search(q, q, func(min, max [2]float64, ext WatershedExtent) bool {
		if rt.labels.At(x, y) == ext.label {
			label = ext.label
			found = true
			return false
		}
		return true
	})
	return label, found
}

// SearchWindow returns the extents of every watershed whose bounding box
// intersects the query window, in cell coordinates.
func (rt *Rtree) SearchWindow(minX, minY, maxX, maxY int) []WatershedExtent {
	results := make([]WatershedExtent, 0, 8)
	rt.tr.Search(
		[2]float64{float64(minX), float64(minY)},
		[2]float64{float64(maxX), float64(maxY)},
		func(min, max [2]float64, ext WatershedExtent) bool {
			results = append(results, ext)
			return true
		})
	return results
}

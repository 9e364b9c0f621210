package spatialindex

import (
	"testing"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
)

// two basins side by side with a no-data seam between them
func buildLabelGrid(t *testing.T) *datastructure.Grid[int32] {
	t.Helper()
	rows := [][]int32{
		{1, 1, -1, 2, 2},
		{1, 1, -1, 2, 2},
		{1, 1, -1, -1, 2},
	}
	g := datastructure.NewGrid[int32](5, 3, 1, pkg.LABEL_NODATA)
	for y, row := range rows {
		for x, v := range row {
			g.Set(x, y, v)
		}
	}
	return g
}

func TestRtreeWatershedAt(t *testing.T) {
	rt := NewRtree()
	rt.Build(buildLabelGrid(t), nil)

	testCases := []struct {
		x, y      int
		wantLabel int32
		wantFound bool
	}{
		{0, 0, 1, true},
		{1, 2, 1, true},
		{3, 0, 2, true},
		{4, 2, 2, true},
		{2, 1, 0, false},  // no-data seam
		{3, 2, 0, false},  // no-data inside basin 2's bounding box
		{9, 9, 0, false},  // outside the grid
		{-1, 0, 0, false}, // outside the grid
	}
	for _, tt := range testCases {
		label, found := rt.WatershedAt(tt.x, tt.y)
		if found != tt.wantFound || label != tt.wantLabel {
			t.Errorf("WatershedAt(%d,%d) = (%d,%v), want (%d,%v)",
				tt.x, tt.y, label, found, tt.wantLabel, tt.wantFound)
		}
	}
}

func TestRtreeSearchWindow(t *testing.T) {
	rt := NewRtree()
	rt.Build(buildLabelGrid(t), nil)

	all := rt.SearchWindow(0, 0, 4, 2)
	if len(all) != 2 {
		t.Fatalf("full-grid window returned %d extents, want 2", len(all))
	}
	byLabel := make(map[int32]WatershedExtent)
	for _, ext := range all {
		byLabel[ext.GetLabel()] = ext
	}

	minX, minY, maxX, maxY := byLabel[1].GetBounds()
	if minX != 0 || minY != 0 || maxX != 1 || maxY != 2 {
		t.Errorf("basin 1 bounds (%d,%d,%d,%d), want (0,0,1,2)", minX, minY, maxX, maxY)
	}
	minX, minY, maxX, maxY = byLabel[2].GetBounds()
	if minX != 3 || minY != 0 || maxX != 4 || maxY != 2 {
		t.Errorf("basin 2 bounds (%d,%d,%d,%d), want (3,0,4,2)", minX, minY, maxX, maxY)
	}

	left := rt.SearchWindow(0, 0, 1, 2)
	if len(left) != 1 || left[0].GetLabel() != 1 {
		t.Errorf("left window returned %v, want only basin 1", left)
	}

	empty := rt.SearchWindow(2, 0, 2, 0)
	// the seam column intersects no basin bounding box
	if len(empty) != 0 {
		t.Errorf("seam window returned %d extents, want 0", len(empty))
	}
}

func TestRtreeEmptyBuild(t *testing.T) {
	rt := NewRtree()
	g := datastructure.NewGrid[int32](3, 3, 1, pkg.LABEL_NODATA)
	g.Init(pkg.LABEL_NODATA)
	rt.Build(g, nil)

	if got := rt.SearchWindow(0, 0, 2, 2); len(got) != 0 {
		t.Errorf("empty label grid indexed %d extents", len(got))
	}
	if _, found := rt.WatershedAt(1, 1); found {
		t.Error("WatershedAt found a basin in an all no-data grid")
	}
}

package hydrology

import (
	"testing"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
)

func buildGrid(t *testing.T, cells [][]float64, cellSize, noData float64) *datastructure.Grid[float64] {
	t.Helper()
	height := len(cells)
	width := 0
	if height > 0 {
		width = len(cells[0])
	}
	g := datastructure.NewGrid[float64](width, height, cellSize, noData)
	for y := 0; y < height; y++ {
		if len(cells[y]) != width {
			t.Fatalf("row %d has %d cells, want %d", y, len(cells[y]), width)
		}
		for x := 0; x < width; x++ {
			g.Set(x, y, cells[y][x])
		}
	}
	return g
}

func TestFindWatershedsFillRaisesPitToSpill(t *testing.T) {
	// the depression at the center drains through the low border cell at
	// (0,2): only the center sits below the spill elevation of 4.
	elevations := buildGrid(t, [][]float64{
		{5, 5, 5, 5, 5},
		{5, 4, 4, 4, 5},
		{3, 4, 1, 4, 5},
		{5, 4, 4, 4, 5},
		{5, 5, 5, 5, 5},
	}, 10, pkg.DEM_NODATA)

	want := buildGrid(t, [][]float64{
		{5, 5, 5, 5, 5},
		{5, 4, 4, 4, 5},
		{3, 4, 4, 4, 5},
		{5, 4, 4, 4, 5},
		{5, 5, 5, 5, 5},
	}, 10, pkg.DEM_NODATA)

	labels := FindWatersheds(elevations, true, nil)

	for y := 0; y < elevations.Height(); y++ {
		for x := 0; x < elevations.Width(); x++ {
			if elevations.At(x, y) != want.At(x, y) {
				t.Errorf("filled elevation at (%d,%d) = %v, want %v", x, y, elevations.At(x, y), want.At(x, y))
			}
			if labels.At(x, y) <= 0 {
				t.Errorf("cell (%d,%d) is unlabeled", x, y)
			}
		}
	}

	// the whole depression drains through (0,2), so it shares that cell's
	// watershed
	basin := labels.At(0, 2)
	for _, c := range [][2]int{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}} {
		if labels.At(c[0], c[1]) != basin {
			t.Errorf("cell (%d,%d) has label %d, want %d", c[0], c[1], labels.At(c[0], c[1]), basin)
		}
	}
}

func TestFindWatershedsMonotoneFill(t *testing.T) {
	elevations := buildGrid(t, [][]float64{
		{9, 7, 8, 6, 9},
		{8, 2, 3, 1, 7},
		{9, 4, 0, 2, 8},
		{7, 3, 1, 5, 9},
		{9, 8, 7, 9, 6},
	}, 1, pkg.DEM_NODATA)

	original := buildGrid(t, nil, 1, pkg.DEM_NODATA)
	original.CopyProps(elevations)
	for y := 0; y < elevations.Height(); y++ {
		for x := 0; x < elevations.Width(); x++ {
			original.Set(x, y, elevations.At(x, y))
		}
	}

	FindWatersheds(elevations, true, nil)

	for y := 0; y < elevations.Height(); y++ {
		for x := 0; x < elevations.Width(); x++ {
			if elevations.At(x, y) < original.At(x, y) {
				t.Errorf("fill lowered cell (%d,%d): %v -> %v", x, y, original.At(x, y), elevations.At(x, y))
			}
		}
	}
}

func TestFindWatershedsNoFillLeavesElevations(t *testing.T) {
	elevations := buildGrid(t, [][]float64{
		{5, 5, 5},
		{5, 1, 5},
		{5, 5, 5},
	}, 1, pkg.DEM_NODATA)

	FindWatersheds(elevations, false, nil)

	if got := elevations.At(1, 1); got != 1 {
		t.Errorf("elevation mutated with fill disabled: got %v, want 1", got)
	}
}

func TestFindWatershedsRidgeSeparation(t *testing.T) {
	// a high ridge running edge to edge splits the low ground into two
	// basins draining to opposite sides; they must not share a label.
	elevations := buildGrid(t, [][]float64{
		{5, 5, 20, 5, 5},
		{5, 1, 20, 1, 5},
		{5, 1, 20, 1, 5},
		{5, 1, 20, 1, 5},
		{5, 5, 20, 5, 5},
	}, 1, pkg.DEM_NODATA)

	labels := FindWatersheds(elevations, false, nil)

	left := labels.At(1, 2)
	right := labels.At(3, 2)
	if left <= 0 || right <= 0 {
		t.Fatalf("basin cells unlabeled: left=%d right=%d", left, right)
	}
	if left == right {
		t.Errorf("basins separated by ridge share label %d", left)
	}
	for y := 1; y <= 3; y++ {
		if labels.At(1, y) != left {
			t.Errorf("left basin cell (1,%d) has label %d, want %d", y, labels.At(1, y), left)
		}
		if labels.At(3, y) != right {
			t.Errorf("right basin cell (3,%d) has label %d, want %d", y, labels.At(3, y), right)
		}
	}
}

func TestFindWatershedsNoDataIsolation(t *testing.T) {
	noData := pkg.DEM_NODATA
	elevations := buildGrid(t, [][]float64{
		{noData, 5, 5, 5, 5},
		{5, 4, 4, 4, 5},
		{5, 4, noData, 4, 5},
		{5, 4, 4, 4, 5},
		{5, 5, 5, 5, 5},
	}, 1, noData)

	labels := FindWatersheds(elevations, true, nil)

	if got := labels.At(0, 0); got != pkg.LABEL_NODATA {
		t.Errorf("no-data boundary cell labeled %d", got)
	}
	if got := labels.At(2, 2); got != pkg.LABEL_NODATA {
		t.Errorf("no-data interior cell labeled %d", got)
	}
	if got := elevations.At(2, 2); got != noData {
		t.Errorf("no-data cell elevation overwritten by fill: %v", got)
	}
	if got := elevations.At(0, 0); got != noData {
		t.Errorf("no-data cell elevation overwritten by fill: %v", got)
	}

	// every data cell is still reached and labeled
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if elevations.At(x, y) == noData {
				continue
			}
			if labels.At(x, y) <= 0 {
				t.Errorf("data cell (%d,%d) is unlabeled", x, y)
			}
		}
	}
}

func TestFindWatershedsPositiveNoDataSentinel(t *testing.T) {
	// the sentinel sits inside the data range here, so a no-data boundary
	// seed pops before the high walls; if it were allowed to expand, fill
	// mode would overwrite the pit with the sentinel and corrupt it into
	// no-data. The pit must instead spill through the walls.
	noData := 10.0
	elevations := buildGrid(t, [][]float64{
		{noData, 50, 50},
		{50, 3, 50},
		{50, 50, 50},
	}, 1, noData)

	labels := FindWatersheds(elevations, true, nil)

	if got := elevations.At(1, 1); got != 50 {
		t.Errorf("pit elevation = %v, want spill elevation 50", got)
	}
	if got := labels.At(1, 1); got <= 0 {
		t.Errorf("pit cell unlabeled (label %d)", got)
	}
	if got := elevations.At(0, 0); got != noData {
		t.Errorf("no-data cell elevation = %v, want sentinel %v", got, noData)
	}
	if got := labels.At(0, 0); got != pkg.LABEL_NODATA {
		t.Errorf("no-data cell labeled %d", got)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if elevations.At(x, y) == noData {
				t.Errorf("data cell (%d,%d) overwritten with the sentinel", x, y)
			}
		}
	}
}

func TestFindWatershedsDegenerateGrids(t *testing.T) {
	testCases := []struct {
		name   string
		cells  [][]float64
		labels int
	}{
		{
			name:   "empty",
			cells:  nil,
			labels: 0,
		},
		{
			name:   "single cell",
			cells:  [][]float64{{7}},
			labels: 1,
		},
		{
			name:   "single row",
			cells:  [][]float64{{3, 1, 4, 1, 5}},
			labels: 5,
		},
		{
			name:   "single column",
			cells:  [][]float64{{3}, {1}, {4}},
			labels: 3,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			elevations := buildGrid(t, tt.cells, 1, pkg.DEM_NODATA)
			labels := FindWatersheds(elevations, true, nil)

			areas := WatershedAreas(labels)
			if len(areas) != tt.labels {
				t.Errorf("got %d watersheds, want %d", len(areas), tt.labels)
			}
			total := 0
			for _, a := range areas {
				total += a.Cells
			}
			if total != elevations.NumCells() {
				t.Errorf("labeled %d cells, want %d", total, elevations.NumCells())
			}
		})
	}
}

func TestWatershedAreasCoverage(t *testing.T) {
	noData := pkg.DEM_NODATA
	elevations := buildGrid(t, [][]float64{
		{9, 7, 8, 6},
		{8, 2, noData, 1},
		{9, 4, 0, 2},
		{7, 3, 1, noData},
	}, 1, noData)

	labels := FindWatersheds(elevations, false, nil)
	areas := WatershedAreas(labels)

	dataCells := 0
	for y := 0; y < elevations.Height(); y++ {
		for x := 0; x < elevations.Width(); x++ {
			if elevations.At(x, y) != noData {
				dataCells++
			}
		}
	}

	total := 0
	for i, a := range areas {
		total += a.Cells
		if a.Label <= 0 {
			t.Errorf("area %d has non-positive label %d", i, a.Label)
		}
		if i > 0 && areas[i-1].Label >= a.Label {
			t.Errorf("areas not ordered by label: %d before %d", areas[i-1].Label, a.Label)
		}
	}
	if total != dataCells {
		t.Errorf("area cell counts sum to %d, want %d data cells", total, dataCells)
	}
}

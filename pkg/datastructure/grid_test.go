package datastructure

import "testing"

func TestGridAccessors(t *testing.T) {
	g := NewGrid[float64](4, 3, 25, -9999)

	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("dimensions %dx%d, want 4x3", g.Width(), g.Height())
	}
	if g.CellSize() != 25 {
		t.Errorf("cell size %v, want 25", g.CellSize())
	}
	if g.NumCells() != 12 {
		t.Errorf("NumCells %d, want 12", g.NumCells())
	}

	g.Set(3, 2, 42)
	if got := g.At(3, 2); got != 42 {
		t.Errorf("At(3,2) = %v, want 42", got)
	}

	g.Set(1, 1, -9999)
	if !g.IsNoData(1, 1) {
		t.Error("IsNoData(1,1) = false after setting sentinel")
	}
	if g.IsNoData(3, 2) {
		t.Error("IsNoData(3,2) = true for a data cell")
	}

	g.SetNoData(-1)
	if g.NoData() != -1 {
		t.Errorf("NoData() = %v after SetNoData(-1)", g.NoData())
	}
	if g.IsNoData(1, 1) {
		t.Error("old sentinel still treated as no-data after SetNoData")
	}
}

func TestGridInGrid(t *testing.T) {
	g := NewGrid[int32](3, 2, 1, -1)

	testCases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{-1, 0, false},
		{0, -1, false},
		{3, 0, false},
		{0, 2, false},
	}
	for _, tt := range testCases {
		if got := g.InGrid(tt.x, tt.y); got != tt.want {
			t.Errorf("InGrid(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGridInit(t *testing.T) {
	g := NewGrid[int32](3, 3, 1, -1)
	g.Init(-1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if !g.IsNoData(x, y) {
				t.Errorf("cell (%d,%d) not initialized to sentinel", x, y)
			}
		}
	}
}

func TestGridCopyProps(t *testing.T) {
	src := NewGrid[float64](5, 4, 30, -9999)
	src.Set(2, 2, 7)

	dst := NewGrid[int32](0, 0, 0, -1)
	dst.CopyProps(src)

	if dst.Width() != 5 || dst.Height() != 4 {
		t.Errorf("dimensions %dx%d, want 5x4", dst.Width(), dst.Height())
	}
	if dst.CellSize() != 30 {
		t.Errorf("cell size %v, want 30", dst.CellSize())
	}
	if dst.NoData() != -1 {
		t.Errorf("no-data sentinel %v changed by CopyProps", dst.NoData())
	}
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if dst.At(x, y) != 0 {
				t.Errorf("cell (%d,%d) = %v, want zero value", x, y, dst.At(x, y))
			}
		}
	}
}

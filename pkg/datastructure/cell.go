package datastructure

// GridCell is one frontier entry of the flood: a cell position plus the
// elevation it was queued with (not necessarily the cell's own elevation
// once depressions start filling).
type GridCell struct {
	X int
	Y int
	Z float64
}

func NewGridCell(x, y int, z float64) GridCell {
	return GridCell{X: x, Y: y, Z: z}
}

// 8-direction neighbour offsets (N, NE, E, SE, S, SW, W, NW). The adjacency
// model is fixed: cardinal and diagonal neighbours alike.
var (
	NeighbourDX = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	NeighbourDY = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
)

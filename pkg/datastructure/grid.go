package datastructure

import (
	"golang.org/x/exp/constraints"
)

type GridNumber interface {
	constraints.Integer | constraints.Float
}

// GridProps is the element-type-independent part of a grid, so that a label
// grid can adopt the dimensions of an elevation grid (and so on) without the
// two sharing an element type.
type GridProps interface {
	Width() int
	Height() int
	CellSize() float64
}

// Grid is a row-major 2D raster with a designated no-data sentinel and a
// uniform, square cell size. The zero value is unusable; build grids with
// NewGrid or CopyProps.
type Grid[T GridNumber] struct {
	width    int
	height   int
	cellSize float64
	noData   T
	cells    []T
}

func NewGrid[T GridNumber](width, height int, cellSize float64, noData T) *Grid[T] {
	return &Grid[T]{
		width:    width,
		height:   height,
		cellSize: cellSize,
		noData:   noData,
		cells:    make([]T, width*height),
	}
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

func (g *Grid[T]) CellSize() float64 {
	return g.cellSize
}

func (g *Grid[T]) NoData() T {
	return g.noData
}

func (g *Grid[T]) SetNoData(noData T) {
	g.noData = noData
}

// InGrid reports whether (x, y) lies inside the raster bounds.
func (g *Grid[T]) InGrid(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the value at (x, y). It panics if (x, y) is out of bounds;
// callers walking neighbourhoods guard with InGrid first.
func (g *Grid[T]) At(x, y int) T {
	return g.cells[y*g.width+x]
}

func (g *Grid[T]) Set(x, y int, v T) {
	g.cells[y*g.width+x] = v
}

func (g *Grid[T]) IsNoData(x, y int) bool {
	return g.cells[y*g.width+x] == g.noData
}

// Init fills every cell with v.
func (g *Grid[T]) Init(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// CopyProps resizes g to other's dimensions and adopts its cell size. The
// cell contents are reset to the zero value; the no-data sentinel is kept,
// since grids of different quantities carry independent sentinels.
func (g *Grid[T]) CopyProps(other GridProps) {
	g.width = other.Width()
	g.height = other.Height()
	g.cellSize = other.CellSize()
	g.cells = make([]T, g.width*g.height)
}

// NumCells returns width*height.
func (g *Grid[T]) NumCells() int {
	return g.width * g.height
}

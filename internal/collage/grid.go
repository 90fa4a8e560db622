package collage

import "image"

// DefaultCellSize is the side length of one grid cell in pixels.
const DefaultCellSize = 100

// GridSpec describes a square grid of Dimension x Dimension cells, each
// CellSize pixels wide. The canvas side is Dimension * CellSize.
type GridSpec struct {
	Dimension int
	CellSize  int
}

// NewGridSpec creates a GridSpec. A non-positive cellSize selects
// DefaultCellSize and a negative dimension is treated as 0.
func NewGridSpec(dimension, cellSize int) GridSpec {
	if dimension < 0 {
		dimension = 0
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return GridSpec{Dimension: dimension, CellSize: cellSize}
}

// Side returns the canvas side length in pixels.
func (g GridSpec) Side() int {
	return g.Dimension * g.CellSize
}

// Cells returns the number of cells in the grid.
func (g GridSpec) Cells() int {
	return g.Dimension * g.Dimension
}

// Contains reports whether c addresses a cell of this grid.
func (g GridSpec) Contains(c CellAddress) bool {
	return c.Row >= 0 && c.Row < g.Dimension && c.Col >= 0 && c.Col < g.Dimension
}

// Offset returns the top-left pixel of cell c.
func (g GridSpec) Offset(c CellAddress) image.Point {
	return image.Pt(c.Col*g.CellSize, c.Row*g.CellSize)
}

// Rect returns the pixel rectangle covered by cell c.
func (g GridSpec) Rect(c CellAddress) image.Rectangle {
	min := g.Offset(c)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(g.CellSize, g.CellSize))}
}

// CellAddress is a (row, col) position in a grid.
type CellAddress struct {
	Row int
	Col int
}

// add returns the address moved by d.
func (c CellAddress) add(d CellAddress) CellAddress {
	return CellAddress{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

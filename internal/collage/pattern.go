package collage

import (
	"fmt"
	"image"
	"strings"
)

// Pattern is a layout strategy: a pure mapping from an ordered list of
// images to grid cells.
type Pattern int

const (
	// PatternRowMajor fills cells left to right, top to bottom.
	PatternRowMajor Pattern = iota
	// PatternDiagonal sweeps anti-diagonals starting at the top-left cell.
	PatternDiagonal
	// PatternCheckerboard paints only cells whose row+col is even.
	PatternCheckerboard
	// PatternSpiral walks an inward clockwise spiral from the top-left cell.
	PatternSpiral
)

// Patterns returns every supported pattern in a stable order.
func Patterns() []Pattern {
	return []Pattern{PatternRowMajor, PatternDiagonal, PatternCheckerboard, PatternSpiral}
}

// String returns the short name used in file names and flags.
func (p Pattern) String() string {
	switch p {
	case PatternRowMajor:
		return "normal"
	case PatternDiagonal:
		return "diagonal"
	case PatternCheckerboard:
		return "checkered"
	case PatternSpiral:
		return "spiral"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// ParsePattern parses a pattern name. The empty string selects PatternRowMajor.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "row-major", "rowmajor":
		return PatternRowMajor, nil
	case "diagonal":
		return PatternDiagonal, nil
	case "checkered", "checkerboard":
		return PatternCheckerboard, nil
	case "spiral":
		return PatternSpiral, nil
	default:
		return PatternRowMajor, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
	}
}

// Placement assigns the image at position Image of the ordered input to Cell.
type Placement struct {
	Image int
	Cell  CellAddress
}

// Place maps count ordered images onto a dimension x dimension grid.
//
// The result lists placements in painting order. It never holds more than
// dimension² entries and never addresses a cell twice. Images that a pattern
// does not consume are simply absent.
func (p Pattern) Place(count, dimension int) []Placement {
	if count <= 0 || dimension <= 0 {
		return nil
	}
	switch p {
	case PatternDiagonal:
		return placeDiagonal(count, dimension)
	case PatternCheckerboard:
		return placeCheckerboard(count, dimension)
	case PatternSpiral:
		return placeSpiral(count, dimension)
	default:
		return placeRowMajor(count, dimension)
	}
}

// Render paints images onto a new canvas for grid following this pattern.
func (p Pattern) Render(images []image.Image, grid GridSpec) *Canvas {
	canvas := NewCanvas(grid)
	for _, pl := range p.Place(len(images), grid.Dimension) {
		canvas.Paint(pl.Cell, images[pl.Image])
	}
	return canvas
}

func placeRowMajor(count, dimension int) []Placement {
	n := min(count, dimension*dimension)
	out := make([]Placement, 0, n)
	for i := range n {
		out = append(out, Placement{
			Image: i,
			Cell:  CellAddress{Row: i / dimension, Col: i % dimension},
		})
	}
	return out
}

func placeDiagonal(count, dimension int) []Placement {
	out := make([]Placement, 0, min(count, dimension*dimension))
	next := 0
	for diag := 0; diag <= 2*dimension-2; diag++ {
		for row := 0; row < dimension; row++ {
			col := diag - row
			if col < 0 || col >= dimension || next >= count {
				continue
			}
			out = append(out, Placement{Image: next, Cell: CellAddress{Row: row, Col: col}})
			next++
		}
	}
	return out
}

func placeCheckerboard(count, dimension int) []Placement {
	n := min(count, dimension*dimension)
	out := make([]Placement, 0, (n+1)/2)
	for i := range n {
		row, col := i/dimension, i%dimension
		if (row+col)%2 != 0 {
			continue
		}
		out = append(out, Placement{Image: i, Cell: CellAddress{Row: row, Col: col}})
	}
	return out
}

func placeSpiral(count, dimension int) []Placement {
	walk := newSpiralWalk(dimension)
	out := make([]Placement, 0, min(count, dimension*dimension))
	for i := 0; i < count; i++ {
		cell, ok := walk.Next()
		if !ok {
			break
		}
		out = append(out, Placement{Image: i, Cell: cell})
	}
	return out
}

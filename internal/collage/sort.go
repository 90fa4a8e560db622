package collage

import (
	"cmp"
	"image"
	"slices"

	"github.com/handiism/album-grid/internal/model"
)

// Tile pairs a decoded cover with its color key.
type Tile struct {
	// Index is the position of Locator in the fetch order.
	Index   int
	Locator model.Locator
	Image   image.Image
	Key     ColorKey
}

// NewTile extracts the color key of img with method and keeps a copy of img
// scaled to a cellSize square, which is all the compositor later needs.
func NewTile(index int, loc model.Locator, img image.Image, method KeyMethod, cellSize int) Tile {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return Tile{
		Index:   index,
		Locator: loc,
		Image:   ResizeCell(img, cellSize),
		Key:     method.Extract(img),
	}
}

// SortByHue returns the tiles ordered by ascending hue. Tiles with equal hue
// keep their input order. The input slice is not modified.
func SortByHue(tiles []Tile) []Tile {
	sorted := slices.Clone(tiles)
	slices.SortStableFunc(sorted, func(a, b Tile) int {
		return cmp.Compare(a.Key.Hue, b.Key.Hue)
	})
	return sorted
}

// Package collage turns an ordered list of cover locators into a square
// photo-mosaic.
//
// The pipeline runs in explicit stages so each one can be tested without
// network I/O:
//
//  1. Prepare dedupes (optional) and caps the locators at MaxCovers.
//  2. The caller fetches and decodes each planned locator, building a Tile
//     with NewTile. Fetch failures are dropped.
//  3. Assemble sizes the grid, sorts tiles by hue and paints them with the
//     chosen Pattern.
//
// # Grid Dimension
//
// A grid of dimension d holds d² cells. Dimension returns floor(sqrt(n)), the
// largest grid n images can fill:
//
//	collage.Dimension(99)  // 9
//	collage.Dimension(300) // 17
//
// # Patterns
//
//	normal     row by row, left to right
//	diagonal   anti-diagonals from the top-left corner
//	checkered  cells with even row+col only; the rest stay black
//	spiral     inward clockwise spiral from the top-left corner
//
// # Example
//
//	plan, err := collage.Prepare(locators, collage.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	var tiles []collage.Tile
//	for i, loc := range plan.Locators {
//		img, err := fetch(loc)
//		if err != nil {
//			continue
//		}
//		tiles = append(tiles, collage.NewTile(i, loc, img, collage.KeyAverage, 100))
//	}
//	result, err := plan.Assemble(tiles)
package collage

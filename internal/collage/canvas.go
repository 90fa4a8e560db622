package collage

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas is the square output raster of a grid. It starts opaque black and
// each painted cell is fully replaced, never blended.
type Canvas struct {
	grid    GridSpec
	img     *image.RGBA
	painted int
}

// NewCanvas allocates a black canvas sized for grid.
func NewCanvas(grid GridSpec) *Canvas {
	side := grid.Side()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Canvas{grid: grid, img: img}
}

// Grid returns the grid the canvas was created for.
func (c *Canvas) Grid() GridSpec {
	return c.grid
}

// Image returns the underlying raster.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Painted returns the number of Paint calls that hit a cell.
func (c *Canvas) Painted() int {
	return c.painted
}

// Paint stretches img to fill cell. It returns false when cell lies outside
// the grid. Callers must not paint the same cell twice.
func (c *Canvas) Paint(cell CellAddress, img image.Image) bool {
	if !c.grid.Contains(cell) {
		return false
	}
	rect := c.grid.Rect(cell)
	src := opaque(img)
	if src.Bounds().Size() == rect.Size() {
		draw.Draw(c.img, rect, src, src.Bounds().Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(c.img, rect, src, src.Bounds(), draw.Src, nil)
	}
	fillAlpha(c.img, rect)
	c.painted++
	return true
}

// ResizeCell returns img stretched to a size x size opaque raster.
func ResizeCell(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	src := opaque(img)
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	fillAlpha(dst, dst.Bounds())
	return dst
}

// opaque drops the alpha channel of non-premultiplied images so translucent
// pixels keep their color instead of fading to black.
func opaque(img image.Image) image.Image {
	src, ok := img.(*image.NRGBA)
	if !ok || src.Opaque() {
		return img
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := out.Pix[out.PixOffset(b.Min.X, y):out.PixOffset(b.Max.X, y)]
		copy(row, src.Pix[src.PixOffset(b.Min.X, y):])
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	return out
}

func fillAlpha(img *image.RGBA, rect image.Rectangle) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := img.PixOffset(rect.Min.X, y)
		for x := 0; x < rect.Dx(); x++ {
			img.Pix[off+x*4+3] = 0xff
		}
	}
}

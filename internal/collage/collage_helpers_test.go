package collage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/handiism/album-grid/internal/model"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func solid(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func locators(n int) []model.Locator {
	out := make([]model.Locator, n)
	for i := range out {
		out[i] = model.Locator(fmt.Sprintf("https://f4.bcbits.com/img/a%03d_0.jpg", i))
	}
	return out
}

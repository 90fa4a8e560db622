package collage

import (
	"image"
	"image/color"
	"testing"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(NewGridSpec(3, 10))
	b := c.Image().Bounds()
	if b.Dx() != 30 || b.Dy() != 30 {
		t.Fatalf("canvas is %dx%d, want 30x30", b.Dx(), b.Dy())
	}
	if got := c.Image().RGBAAt(15, 15); got != (color.RGBA{A: 255}) {
		t.Errorf("blank pixel = %v, want opaque black", got)
	}
	if c.Painted() != 0 {
		t.Errorf("Painted() = %d, want 0", c.Painted())
	}
}

func TestCanvas_Paint(t *testing.T) {
	c := NewCanvas(NewGridSpec(2, 100))

	if !c.Paint(CellAddress{Row: 1, Col: 0}, solid(red, 1, 1)) {
		t.Fatal("Paint() returned false for a valid cell")
	}
	if !c.Paint(CellAddress{Row: 0, Col: 1}, solid(blue, 100, 100)) {
		t.Fatal("Paint() returned false for a valid cell")
	}
	if c.Paint(CellAddress{Row: 2, Col: 0}, solid(green, 1, 1)) {
		t.Error("Paint() accepted a cell outside the grid")
	}

	img := c.Image()
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 100, red},
		{99, 199, red},
		{100, 0, blue},
		{199, 99, blue},
		{50, 50, color.RGBA{A: 255}},
		{150, 150, color.RGBA{A: 255}},
	}
	for _, ck := range checks {
		if got := img.RGBAAt(ck.x, ck.y); got != ck.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", ck.x, ck.y, got, ck.want)
		}
	}
	if c.Painted() != 2 {
		t.Errorf("Painted() = %d, want 2", c.Painted())
	}
}

func TestResizeCell(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+1] = 255
		src.Pix[i+3] = 10
	}

	got := ResizeCell(src, 8)
	if b := got.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("ResizeCell() is %dx%d, want 8x8", b.Dx(), b.Dy())
	}
	if px := got.RGBAAt(4, 4); px != green {
		t.Errorf("pixel = %v, want opaque green", px)
	}
}

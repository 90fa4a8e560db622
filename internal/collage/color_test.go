package collage

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestKeyFromColor(t *testing.T) {
	tests := []struct {
		name    string
		c       color.Color
		wantHue float64
		wantSat float64
		wantVal float64
	}{
		{name: "red", c: red, wantHue: 0, wantSat: 1, wantVal: 1},
		{name: "green", c: green, wantHue: 1.0 / 3, wantSat: 1, wantVal: 1},
		{name: "blue", c: blue, wantHue: 2.0 / 3, wantSat: 1, wantVal: 1},
		{name: "gray has zero hue", c: color.RGBA{R: 128, G: 128, B: 128, A: 255}, wantHue: 0, wantSat: 0, wantVal: 128.0 / 255},
		{name: "black", c: color.Black, wantHue: 0, wantSat: 0, wantVal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyFromColor(tt.c)
			if !near(got.Hue, tt.wantHue) || !near(got.Saturation, tt.wantSat) || !near(got.Value, tt.wantVal) {
				t.Errorf("KeyFromColor(%v) = %+v, want {%v %v %v}", tt.c, got, tt.wantHue, tt.wantSat, tt.wantVal)
			}
			if got.Hue < 0 || got.Hue >= 1 {
				t.Errorf("hue %v out of [0, 1)", got.Hue)
			}
		})
	}
}

func TestAverageColor(t *testing.T) {
	halves := image.NewRGBA(image.Rect(0, 0, 2, 1))
	halves.SetRGBA(0, 0, red)
	halves.SetRGBA(1, 0, blue)

	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(translucent.Pix); i += 4 {
		translucent.Pix[i] = 200
		translucent.Pix[i+3] = 0
	}

	gray := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	for i := range gray.Y {
		gray.Y[i] = 128
	}
	for i := range gray.Cb {
		gray.Cb[i] = 128
		gray.Cr[i] = 128
	}

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{green})

	sub := solid(red, 4, 4)
	sub.SetRGBA(3, 3, blue)

	tests := []struct {
		name string
		img  image.Image
		want color.RGBA
	}{
		{name: "rounds half up", img: halves, want: color.RGBA{R: 128, G: 0, B: 128, A: 255}},
		{name: "alpha dropped", img: translucent, want: color.RGBA{R: 200, A: 255}},
		{name: "ycbcr", img: gray, want: color.RGBA{R: 128, G: 128, B: 128, A: 255}},
		{name: "generic image", img: paletted, want: green},
		{name: "sub image", img: sub.SubImage(image.Rect(0, 0, 2, 2)), want: red},
		{name: "empty image", img: image.NewRGBA(image.Rectangle{}), want: color.RGBA{A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageColor(tt.img); got != tt.want {
				t.Errorf("AverageColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyMethod_ExtractAverage(t *testing.T) {
	key := KeyAverage.Extract(solid(blue, 8, 8))
	if !near(key.Hue, 2.0/3) {
		t.Errorf("hue = %v, want 2/3", key.Hue)
	}
}

func TestParseKeyMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    KeyMethod
		wantErr bool
	}{
		{input: "", want: KeyAverage},
		{input: "average", want: KeyAverage},
		{input: "Dominant", want: KeyDominant},
		{input: "kmeans", want: KeyKMeans},
		{input: "median", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKeyMethod(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKeyMethod) {
					t.Errorf("expected ErrUnknownKeyMethod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKeyMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if again, _ := ParseKeyMethod(got.String()); again != got {
				t.Errorf("ParseKeyMethod(%q) = %v, want %v", got.String(), again, got)
			}
		})
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

package collage

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ColorKey is the HSV triple of an image's representative color, each
// component in [0, 1]. Hue is the only component used for ordering.
type ColorKey struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// KeyFromColor converts an 8-bit RGB color to its ColorKey. Alpha is ignored.
func KeyFromColor(c color.Color) ColorKey {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	col := colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
	h, s, v := col.Hsv()
	return ColorKey{Hue: h / 360, Saturation: s, Value: v}
}

// KeyMethod selects how an image's representative color is chosen.
type KeyMethod int

const (
	// KeyAverage uses the area-average color of the whole image.
	KeyAverage KeyMethod = iota
	// KeyDominant uses the most prominent color cluster.
	KeyDominant
	// KeyKMeans uses the center of the most populated k-means cluster.
	KeyKMeans
)

// String returns the configuration name of the method.
func (m KeyMethod) String() string {
	switch m {
	case KeyAverage:
		return "average"
	case KeyDominant:
		return "dominant"
	case KeyKMeans:
		return "kmeans"
	default:
		return fmt.Sprintf("KeyMethod(%d)", int(m))
	}
}

// ParseKeyMethod parses a method name. The empty string selects KeyAverage.
func ParseKeyMethod(s string) (KeyMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average", "avg":
		return KeyAverage, nil
	case "dominant":
		return KeyDominant, nil
	case "kmeans", "k-means":
		return KeyKMeans, nil
	default:
		return KeyAverage, fmt.Errorf("%w: %q", ErrUnknownKeyMethod, s)
	}
}

// Extract computes the ColorKey of img using this method.
func (m KeyMethod) Extract(img image.Image) ColorKey {
	switch m {
	case KeyDominant:
		return KeyFromColor(dominantcolor.Find(img))
	case KeyKMeans:
		if c, ok := clusterColor(img); ok {
			return KeyFromColor(c)
		}
	}
	return KeyFromColor(AverageColor(img))
}

// AverageColor returns the area-average color of img: the mean of every
// pixel's RGB channels, rounded to 8 bits. Alpha is dropped rather than
// composited.
func AverageColor(img image.Image) color.RGBA {
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if n == 0 {
		return color.RGBA{A: 0xff}
	}

	var r, g, bl uint64
	switch src := img.(type) {
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi := src.YOffset(x, y)
				ci := src.COffset(x, y)
				pr, pg, pb := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				r += uint64(pr)
				g += uint64(pg)
				bl += uint64(pb)
			}
		}
	case *image.NRGBA:
		r, g, bl = sumPix(src.Pix, src.Stride, b.Dx(), b.Dy(), src.PixOffset(b.Min.X, b.Min.Y))
	case *image.RGBA:
		r, g, bl = sumPix(src.Pix, src.Stride, b.Dx(), b.Dy(), src.PixOffset(b.Min.X, b.Min.Y))
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				r += uint64(c.R)
				g += uint64(c.G)
				bl += uint64(c.B)
			}
		}
	}

	return color.RGBA{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((bl + n/2) / n),
		A: 0xff,
	}
}

// sumPix sums the RGB channels of a 4-bytes-per-pixel buffer.
func sumPix(pix []uint8, stride, w, h, start int) (r, g, b uint64) {
	for y := 0; y < h; y++ {
		row := pix[start+y*stride : start+y*stride+w*4]
		for i := 0; i < len(row); i += 4 {
			r += uint64(row[i])
			g += uint64(row[i+1])
			b += uint64(row[i+2])
		}
	}
	return r, g, b
}

const (
	clusterCount   = 4
	clusterSamples = 4096
)

// clusterColor partitions a sample of img's pixels with k-means and returns
// the center of the largest cluster.
func clusterColor(img image.Image) (color.RGBA, bool) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return color.RGBA{}, false
	}

	step := 1
	if total > clusterSamples {
		step = int(math.Sqrt(float64(total)/float64(clusterSamples))) + 1
	}

	d := make(clusters.Observations, 0, min(total, clusterSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			d = append(d, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}

	k := clusterCount
	if len(d) < k {
		k = len(d)
	}
	cc, err := kmeans.New().Partition(d, k)
	if err != nil || len(cc) == 0 {
		return color.RGBA{}, false
	}

	best := 0
	for i := range cc {
		if len(cc[i].Observations) > len(cc[best].Observations) {
			best = i
		}
	}
	center := cc[best].Center
	if len(center) < 3 {
		return color.RGBA{}, false
	}
	r, g, bl := colorful.Color{R: center[0], G: center[1], B: center[2]}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}, true
}

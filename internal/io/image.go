package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// ErrUnsupportedFormat is returned when an output format is not png or jpeg.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat parses a format name. "jpg" is accepted for FormatJPEG and
// the empty string selects FormatPNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the output format from a file extension, falling
// back to PNG for unknown extensions.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatPNG
	}
	return f
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ImageService decodes cover art and encodes finished grids.
//
// Decoding accepts JPEG, PNG, GIF, WebP, BMP and TIFF. Encoding produces PNG
// or JPEG.
//
// Example usage:
//
//	svc := NewImageService(90)
//
//	img, format, err := svc.Decode(ctx, coverData)
//
//	err = svc.Encode(ctx, file, grid, ioutils.FormatJPEG)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService. A quality outside 1-100
// selects DefaultJPEGQuality.
func NewImageService(jpegQuality int) *ImageService {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &ImageService{quality: jpegQuality}
}

// Decode decodes image data in any registered format and returns the image
// together with the format name reported by the decoder.
func (s *ImageService) Decode(ctx context.Context, data []byte) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Encode writes img to w in the given format.
func (s *ImageService) Encode(ctx context.Context, w io.Writer, img image.Image, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch format {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: s.quality})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// EncodeBytes encodes img and returns the bytes in memory.
func (s *ImageService) EncodeBytes(ctx context.Context, img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(ctx, &buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img in the format implied by path's extension and writes it
// to path, creating parent directories as needed.
func (s *ImageService) Save(ctx context.Context, path string, img image.Image) error {
	data, err := s.EncodeBytes(ctx, img, FormatFromPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return WriteFile(ctx, path, data)
}

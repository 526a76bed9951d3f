// Package imagex decodes texture images and converts them to the tightly
// packed RGBA layout OpenGL uploads.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Open decodes the image at path; the format is detected from its header.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// AsRGBA returns img itself when it already is a zero-origin *image.RGBA,
// otherwise an RGBA copy with its origin at (0,0).
func AsRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Fit scales img down, keeping its aspect ratio, so neither side exceeds
// limit. Images that already fit are returned unchanged.
func Fit(img *image.RGBA, limit int) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}

	nw, nh := limit, limit
	if w > h {
		nh = h * limit / w
	} else {
		nw = w * limit / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return true
		}
	}
	return false
}

// Package barcode turns submitted photos into decoded barcode values:
// a short normalization pipeline followed by a zxing-style decoder.
package barcode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// minUsefulDim is the smallest larger-dimension at which the decoder has a
// reasonable success rate; thumbnails below it get upscaled.
const minUsefulDim = 800

// Preprocess normalizes a photo before decoding: grayscale, contrast
// stretch, and upscaling of small images. It never panics; image-library
// faults are returned as an error the caller can report.
func Preprocess(src image.Image) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("image preprocessing failed: %v", r)
		}
	}()

	gray, grayErr := grayscale(src)
	if grayErr != nil {
		// retry once on a defensive copy
		gray, grayErr = grayscale(imaging.Clone(src))
		if grayErr != nil {
			return nil, fmt.Errorf("grayscale conversion failed: %w", grayErr)
		}
	}

	stretched := stretchContrast(gray)

	w := stretched.Bounds().Dx()
	h := stretched.Bounds().Dy()
	if w >= h && w < minUsefulDim {
		return imaging.Resize(stretched, minUsefulDim, 0, imaging.Lanczos), nil
	}
	if h > w && h < minUsefulDim {
		return imaging.Resize(stretched, 0, minUsefulDim, imaging.Lanczos), nil
	}
	return stretched, nil
}

func grayscale(src image.Image) (g *image.Gray, err error) {
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	flat := imaging.Grayscale(src)
	bounds := flat.Bounds()
	g = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			// R == G == B after imaging.Grayscale
			g.SetGray(x, y, color.Gray{Y: flat.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R})
		}
	}
	return g, nil
}

// stretchContrast remaps the observed min/max luminance to the full 0..255
// range, compensating for dim or washed-out photos.
func stretchContrast(g *image.Gray) *image.Gray {
	bounds := g.Bounds()
	minV, maxV := uint8(255), uint8(0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := g.GrayAt(x, y).Y
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	if maxV <= minV {
		return g
	}

	scale := 255.0 / float64(maxV-minV)
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			out.SetGray(x, y, color.Gray{Y: uint8(float64(v-minV)*scale + 0.5)})
		}
	}
	return out
}

package perf

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img to fit a w by h box with Catmull-Rom resampling,
// preserving its aspect ratio.
func Thumbnail(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	tw, th := w, b.Dy()*w/b.Dx()
	if th > h {
		tw, th = b.Dx()*h/b.Dy(), h
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

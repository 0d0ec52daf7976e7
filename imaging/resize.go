package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ResizeThreshold is how much larger than its target an image must be
// before it is downsampled.
const ResizeThreshold = 1.2

// minTargetPixels keeps tiny frames from producing unusable images.
const minTargetPixels = 10

// TargetPixels returns the pixel size of a w×h point area at dpi.
func TargetPixels(w, h float64, dpi int) (int, int) {
	tw := int(math.Round(w * float64(dpi) / 72))
	th := int(math.Round(h * float64(dpi) / 72))
	return max(tw, minTargetPixels), max(th, minTargetPixels)
}

// NeedsResize reports whether a pw×ph image is oversized for a tw×th
// target: smaller than the source in both axes and beyond the threshold
// in at least one.
func NeedsResize(pw, ph, tw, th int) bool {
	if tw >= pw || th >= ph {
		return false
	}
	return float64(pw) > float64(tw)*ResizeThreshold || float64(ph) > float64(th)*ResizeThreshold
}

// Resize scales img to w×h with Catmull-Rom interpolation.
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Crop copies the rectangle r of img into a w×h image.
func Crop(img image.Image, r image.Rectangle, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, r, draw.Over, nil)
	return dst
}

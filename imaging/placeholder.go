package imaging

import (
	"github.com/gogpu/gg"
)

// Placeholder pixel limits.
const (
	minPlaceholderPixels = 50
	maxPlaceholderPixels = 800
)

// PlaceholderSize returns the pixel size of a placeholder for a w×h point
// frame: one pixel per 0.75pt, at least 50 and at most 800 on the longer
// side, keeping the aspect ratio when capped.
func PlaceholderSize(w, h float64) (int, int) {
	pw := max(minPlaceholderPixels, int(w*100/75))
	ph := max(minPlaceholderPixels, int(h*100/75))
	if pw > maxPlaceholderPixels {
		ph = ph * maxPlaceholderPixels / pw
		pw = maxPlaceholderPixels
	}
	if ph > maxPlaceholderPixels {
		pw = pw * maxPlaceholderPixels / ph
		ph = maxPlaceholderPixels
	}
	return max(pw, 1), max(ph, 1)
}

// Placeholder draws a grey box crossed in red, sized for a w×h point frame.
func Placeholder(w, h float64) (Image, error) {
	pw, ph := PlaceholderSize(w, h)

	dc := gg.NewContext(pw, ph)
	defer dc.Close()

	dc.SetRGB(220.0/255, 220.0/255, 220.0/255)
	dc.DrawRectangle(0, 0, float64(pw), float64(ph))
	if err := dc.Fill(); err != nil {
		return Image{}, err
	}

	dc.SetRGB(0.5, 0.5, 0.5)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(pw)-1, float64(ph)-1)
	if err := dc.Stroke(); err != nil {
		return Image{}, err
	}

	margin := float64(min(pw, ph) / 6)
	dc.SetRGB(200.0/255, 50.0/255, 50.0/255)
	dc.SetLineWidth(2)
	dc.DrawLine(margin, margin, float64(pw)-margin, float64(ph)-margin)
	dc.DrawLine(float64(pw)-margin, margin, margin, float64(ph)-margin)
	if err := dc.Stroke(); err != nil {
		return Image{}, err
	}

	img, err := FromImage(dc.Image())
	if err != nil {
		return Image{}, err
	}
	img.Placeholder = true
	return img, nil
}

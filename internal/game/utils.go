package game

import (
	"image"
	"image/color"
	"math"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// backgroundColor is the gradient color at vertical position ratio (0 top,
// 1 bottom) after t seconds.
func backgroundColor(t, ratio float64) color.RGBA {
	hue := 220 + 25*math.Sin(t*0.2+ratio*math.Pi)
	r, g, b := hsvToRgb(hue, 0.55, 0.08+0.1*ratio)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// coverRect returns the centered region of an iw×ih image with the aspect
// ratio of a w×h destination, so the image fills it without distortion.
func coverRect(iw, ih, w, h float64) (x, y, cw, ch float64) {
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return 0, 0, iw, ih
	}
	if iw/ih > w/h {
		cw = ih * w / h
		return (iw - cw) / 2, 0, cw, ih
	}
	ch = iw * h / w
	return 0, (ih - ch) / 2, iw, ch
}

// imageRect converts a float crop inside an image whose bounds start at
// (ox, oy) to a non-empty pixel rectangle.
func imageRect(ox, oy int, x, y, w, h float64) image.Rectangle {
	r := image.Rect(ox+int(x), oy+int(y), ox+int(x+w), oy+int(y+h))
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	return r
}

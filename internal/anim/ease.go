package anim

import "github.com/tanema/gween/ease"

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

// Linear leaves progress unchanged.
func Linear(t float64) float64 { return t }

// Named curves, as the zoom timelines call them.
var (
	Power1Out   = curve(ease.OutQuad)
	ExpoOut     = curve(ease.OutExpo)
	Power3InOut = curve(ease.InOutCubic)
)

// curve adapts a gween tween function over a unit change in unit time.
func curve(fn ease.TweenFunc) Ease {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

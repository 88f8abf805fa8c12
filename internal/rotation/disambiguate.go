package rotation

import "math"

// Gesture classifies a completed pointer interaction.
type Gesture int

const (
	Click Gesture = iota
	Drag
)

func (g Gesture) String() string {
	if g == Drag {
		return "drag"
	}
	return "click"
}

// Classify reports whether a horizontal pointer movement of delta pixels is a
// drag under the given threshold. Movement must exceed the threshold.
func Classify(delta, threshold float64) Gesture {
	if math.Abs(delta) > threshold {
		return Drag
	}
	return Click
}

// Disambiguator accumulates movement for one pointer-down. Once a move has
// exceeded the threshold the interaction stays a drag until Reset, even if
// the pointer returns to where it started.
type Disambiguator struct {
	Threshold float64
	exceeded  bool
}

// Observe records a movement of delta pixels from the press position.
func (d *Disambiguator) Observe(delta float64) {
	if Classify(delta, d.Threshold) == Drag {
		d.exceeded = true
	}
}

// Gesture returns the classification so far.
func (d *Disambiguator) Gesture() Gesture {
	if d.exceeded {
		return Drag
	}
	return Click
}

// Reset starts a fresh interaction.
func (d *Disambiguator) Reset() {
	d.exceeded = false
}

package wall

import (
	"github.com/keuio/PhotoWall3D/internal/anim"
	"github.com/keuio/PhotoWall3D/internal/layout"
	"github.com/keuio/PhotoWall3D/internal/projection"
	"github.com/keuio/PhotoWall3D/internal/zoom"
)

// Card is one placed image on the wall, re-projected every tick.
type Card struct {
	Placement layout.CardPlacement

	quad       projection.Quad
	drawable   bool
	hidden     bool
	opacity    float64
	overridden bool
}

func newCard(p layout.CardPlacement) *Card {
	return &Card{Placement: p, opacity: 1}
}

// Quad returns the card's last projected screen quad.
func (c *Card) Quad() projection.Quad { return c.quad }

// Drawable reports whether the card projected in front of the eye and faces the viewer.
func (c *Card) Drawable() bool { return c.drawable }

// Opacity returns the opacity the renderer should use.
func (c *Card) Opacity() float64 {
	if c.hidden {
		return 0
	}
	return c.opacity
}

// Bounds implements zoom.Card.
func (c *Card) Bounds() zoom.Rect {
	r := c.quad.Bounds()
	return zoom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ImageIndex implements zoom.Card.
func (c *Card) ImageIndex() int { return c.Placement.ImageIndex }

// SetHidden implements zoom.Card.
func (c *Card) SetHidden(hidden bool) { c.hidden = hidden }

// ClearOverrides implements zoom.Card.
func (c *Card) ClearOverrides() {
	c.hidden = false
	c.opacity = 1
	c.overridden = false
}

// Get implements anim.Target.
func (c *Card) Get(p anim.Property) float64 {
	if p == anim.Opacity {
		return c.opacity
	}
	return 0
}

// Set implements anim.Target.
func (c *Card) Set(p anim.Property, v float64) {
	if p == anim.Opacity {
		c.opacity = v
		c.overridden = true
	}
}

// Overridden reports whether a zoom transition has left a style override on the card.
func (c *Card) Overridden() bool { return c.overridden || c.hidden }

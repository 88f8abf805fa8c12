package zoom

import "github.com/keuio/PhotoWall3D/internal/anim"

// Rect is an on-screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Card is the wall card a session enlarges. Its Bounds must report where the
// card is on screen right now; the controller asks again at close time.
type Card interface {
	anim.Target // Opacity
	Bounds() Rect
	ImageIndex() int
	SetHidden(hidden bool)
	ClearOverrides()
}

// Proxy is the stand-in drawn in place of the card while it is zoomed.
type Proxy struct {
	Rect
	Opacity    float64
	ImageIndex int

	destroyed bool
}

func newProxy(r Rect, image int) *Proxy {
	return &Proxy{Rect: r, Opacity: 1, ImageIndex: image}
}

// Get implements anim.Target.
func (p *Proxy) Get(prop anim.Property) float64 {
	switch prop {
	case anim.X:
		return p.X
	case anim.Y:
		return p.Y
	case anim.Width:
		return p.Width
	case anim.Height:
		return p.Height
	case anim.Opacity:
		return p.Opacity
	}
	return 0
}

// Set implements anim.Target.
func (p *Proxy) Set(prop anim.Property, v float64) {
	switch prop {
	case anim.X:
		p.X = v
	case anim.Y:
		p.Y = v
	case anim.Width:
		p.Width = v
	case anim.Height:
		p.Height = v
	case anim.Opacity:
		p.Opacity = v
	}
}

// Destroy removes the proxy from the screen.
func (p *Proxy) Destroy() { p.destroyed = true }

// Destroyed reports whether Destroy was called.
func (p *Proxy) Destroyed() bool { return p.destroyed }

// Overlay dims and blurs the wall behind a zoomed card.
type Overlay struct {
	Visible bool
	Dim     float64 // 0 transparent, 1 black
	Blur    float64 // pixels
}

// Get implements anim.Target.
func (o *Overlay) Get(prop anim.Property) float64 {
	switch prop {
	case anim.Dim:
		return o.Dim
	case anim.Blur:
		return o.Blur
	}
	return 0
}

// Set implements anim.Target.
func (o *Overlay) Set(prop anim.Property, v float64) {
	switch prop {
	case anim.Dim:
		o.Dim = v
	case anim.Blur:
		o.Blur = v
	}
}

func rectProps(r Rect) anim.Props {
	return anim.Props{
		anim.X:      r.X,
		anim.Y:      r.Y,
		anim.Width:  r.Width,
		anim.Height: r.Height,
	}
}

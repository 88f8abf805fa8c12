// Package zoom flies a card from the wall to a centered enlarged view and back.
//
// A session moves through Idle → Entering → Active → Exiting → Idle. While a
// session exists the rotation lock is held, so the wall neither auto-rotates
// nor accepts drags. Only one session exists at a time; opening while another
// is in progress is ignored.
package zoom

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/keuio/PhotoWall3D/internal/anim"
	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
)

const (
	enterDuration   = 800 * time.Millisecond
	overlayDuration = 500 * time.Millisecond
	exitDuration    = 600 * time.Millisecond
	fadeDuration    = 200 * time.Millisecond
	proxyFadeDelay  = 200 * time.Millisecond
	cardFadeDelay   = 400 * time.Millisecond

	overlayDim  = 0.85
	overlayBlur = 10.0
)

// Phase is a step of the zoom lifecycle.
type Phase int

const (
	Idle Phase = iota
	Entering
	Active
	Exiting
	Closed
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Active:
		return "active"
	case Exiting:
		return "exiting"
	case Closed:
		return "closed"
	}
	return "idle"
}

// Lock is the rotation input lock held for the whole session.
type Lock interface {
	SetZoomed(zoomed bool)
	Zoomed() bool
}

// Session is one card's trip to the center and back.
type Session struct {
	ID     uuid.UUID
	Card   Card
	Origin Rect
	Proxy  *Proxy
	Phase  Phase
}

// Controller owns the current session and the overlay.
type Controller struct {
	lock     Lock
	animator anim.Animator
	viewport func() (w, h float64)
	logger   *log.Logger

	overlay Overlay
	session *Session
}

// New wires a controller to the rotation lock and animator. viewport reports
// the current screen size in pixels.
func New(lock Lock, animator anim.Animator, viewport func() (w, h float64), logger *log.Logger) (*Controller, error) {
	if lock == nil {
		return nil, errors.New(errors.ErrCodeMissingDependency, "zoom controller needs a rotation lock")
	}
	if animator == nil {
		return nil, errors.New(errors.ErrCodeMissingDependency, "zoom controller needs an animator")
	}
	if viewport == nil {
		return nil, errors.New(errors.ErrCodeMissingDependency, "zoom controller needs a viewport")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		lock:     lock,
		animator: animator,
		viewport: viewport,
		logger:   logger,
	}, nil
}

// Phase returns the controller state.
func (c *Controller) Phase() Phase {
	if c.session == nil {
		return Idle
	}
	return c.session.Phase
}

// Session returns the live session, or nil when idle.
func (c *Controller) Session() *Session { return c.session }

// Proxy returns the proxy being drawn, or nil when idle.
func (c *Controller) Proxy() *Proxy {
	if c.session == nil {
		return nil
	}
	return c.session.Proxy
}

// Overlay returns the dimming overlay.
func (c *Controller) Overlay() *Overlay { return &c.overlay }

// CenterRect is the square a zoomed card settles into.
func CenterRect(viewportW, viewportH float64) Rect {
	size := math.Min(math.Min(viewportW*config.ZoomViewportFill, viewportH*config.ZoomViewportFill), config.MaxZoomSize)
	return Rect{
		X:      (viewportW - size) / 2,
		Y:      (viewportH - size) / 2,
		Width:  size,
		Height: size,
	}
}

// Open starts a session for card. It reports false and does nothing when a
// session is already in progress.
func (c *Controller) Open(card Card) bool {
	if card == nil || c.session != nil || c.lock.Zoomed() {
		return false
	}
	c.lock.SetZoomed(true)

	origin := card.Bounds()
	s := &Session{
		ID:     uuid.New(),
		Card:   card,
		Origin: origin,
		Proxy:  newProxy(origin, card.ImageIndex()),
		Phase:  Entering,
	}
	c.session = s

	card.SetHidden(true)
	c.overlay.Visible = true

	vw, vh := c.viewport()
	c.animator.Animate(anim.Tween{
		Target:   &c.overlay,
		To:       anim.Props{anim.Dim: overlayDim, anim.Blur: overlayBlur},
		Duration: overlayDuration,
	})
	c.animator.Animate(anim.Tween{
		Target:   s.Proxy,
		To:       rectProps(CenterRect(vw, vh)),
		Duration: enterDuration,
		Ease:     anim.ExpoOut,
	})
	s.Phase = Active

	c.logger.Debug("zoom opened", "session", s.ID, "image", s.Proxy.ImageIndex, "from", origin)
	return true
}

// Close sends the proxy back to wherever the card is now. It is valid while
// entering or active and reports false otherwise. The move starts from the
// proxy's live position, so closing mid-flight reverses smoothly.
func (c *Controller) Close() bool {
	s := c.session
	if s == nil || (s.Phase != Entering && s.Phase != Active) {
		return false
	}
	s.Phase = Exiting

	target := s.Card.Bounds()
	s.Card.SetHidden(false)
	s.Card.Set(anim.Opacity, 0)

	c.animator.Animate(
		anim.Tween{
			Target:   s.Proxy,
			To:       rectProps(target),
			Duration: exitDuration,
			Ease:     anim.Power3InOut,
			Done:     func() { c.finish(s) },
		},
		anim.Tween{
			Target:   s.Proxy,
			To:       anim.Props{anim.Opacity: 0},
			Duration: fadeDuration,
			Delay:    proxyFadeDelay,
		},
		anim.Tween{
			Target:   s.Card,
			To:       anim.Props{anim.Opacity: 1},
			Duration: fadeDuration,
			Delay:    cardFadeDelay,
		},
	)
	c.animator.Animate(anim.Tween{
		Target:   &c.overlay,
		To:       anim.Props{anim.Dim: 0, anim.Blur: 0},
		Duration: overlayDuration,
	})

	c.logger.Debug("zoom closing", "session", s.ID, "to", target)
	return true
}

// finish runs when the return move completes; only then is rotation unlocked.
func (c *Controller) finish(s *Session) {
	if c.session != s {
		return
	}
	c.animator.Kill(s.Proxy)
	c.animator.Kill(s.Card)
	c.animator.Kill(&c.overlay)

	s.Proxy.Destroy()
	c.overlay = Overlay{}
	s.Card.ClearOverrides()
	s.Phase = Closed
	c.session = nil
	c.lock.SetZoomed(false)

	c.logger.Debug("zoom closed", "session", s.ID)
}

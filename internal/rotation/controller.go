// Package rotation owns the wall's rotation angle and reconciles auto-rotation
// with pointer dragging.
package rotation

import (
	"time"

	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
)

// GraceWindow is how long a drag classification outlives pointer release, so
// the click event delivered right after release can still be suppressed.
// This races the host's event delivery and is an accepted timing assumption.
const GraceWindow = config.ClickGraceMS * time.Millisecond

// Deferrer runs fn once after d. anim.Engine satisfies it.
type Deferrer interface {
	After(d time.Duration, fn func())
}

// State is a snapshot of the controller.
type State struct {
	CurrentAngle          float64
	IsDragging            bool
	DragStartPointerX     float64
	DragStartAngle        float64
	IsZoomed              bool
	DragExceededThreshold bool
}

// Controller turns frame ticks and pointer events into a rotation angle.
// It is not safe for concurrent use; all calls come from the frame loop.
type Controller struct {
	autoPlaySpeed   float64
	dragSensitivity float64
	deferrer        Deferrer

	angle      float64
	dragging   bool
	startX     float64
	startAngle float64
	zoomed     bool
	gesture    Disambiguator

	// press counts pointer-downs so a stale grace timer from an earlier
	// release cannot clear the classification of a newer drag.
	press uint64
}

// New creates a controller at angle zero.
func New(cfg config.Config, d Deferrer) (*Controller, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeMissingDependency, "rotation controller needs a timer source")
	}
	return &Controller{
		autoPlaySpeed:   cfg.AutoPlaySpeed,
		dragSensitivity: cfg.DragSensitivity,
		deferrer:        d,
		gesture:         Disambiguator{Threshold: config.DragThreshold},
	}, nil
}

// OnFrameTick advances auto-rotation when idle and returns the angle to render.
func (c *Controller) OnFrameTick() float64 {
	if c.zoomed {
		return c.angle
	}
	if !c.dragging {
		c.angle -= c.autoPlaySpeed
	}
	return c.angle
}

// OnPointerDown starts a drag at horizontal position x.
func (c *Controller) OnPointerDown(x float64) {
	if c.zoomed {
		return
	}
	c.press++
	c.dragging = true
	c.startX = x
	c.startAngle = c.angle
	c.gesture.Reset()
}

// OnPointerMove rotates the wall relative to where the drag started.
func (c *Controller) OnPointerMove(x float64) {
	if !c.dragging {
		return
	}
	delta := x - c.startX
	c.gesture.Observe(delta)
	c.angle = c.startAngle + delta*c.dragSensitivity
}

// OnPointerUp ends the drag. The drag classification stays readable for
// GraceWindow, then resets.
func (c *Controller) OnPointerUp() {
	c.dragging = false
	press := c.press
	c.deferrer.After(GraceWindow, func() {
		if c.press == press {
			c.gesture.Reset()
		}
	})
}

// ShouldSuppressClick reports whether the current interaction was a drag.
func (c *Controller) ShouldSuppressClick() bool {
	return c.gesture.Gesture() == Drag
}

// SetZoomed locks or unlocks all rotation input.
func (c *Controller) SetZoomed(zoomed bool) {
	c.zoomed = zoomed
}

// Zoomed reports whether rotation input is locked.
func (c *Controller) Zoomed() bool {
	return c.zoomed
}

// Angle returns the current rotation in degrees, unbounded.
func (c *Controller) Angle() float64 {
	return c.angle
}

// State returns a snapshot of the rotation state.
func (c *Controller) State() State {
	return State{
		CurrentAngle:          c.angle,
		IsDragging:            c.dragging,
		DragStartPointerX:     c.startX,
		DragStartAngle:        c.startAngle,
		IsZoomed:              c.zoomed,
		DragExceededThreshold: c.gesture.Gesture() == Drag,
	}
}

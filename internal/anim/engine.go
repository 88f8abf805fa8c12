// Package anim drives property tweens and deferred callbacks from the frame loop.
//
// Nothing here runs on its own goroutine. The owner calls Engine.Update once
// per frame with the frame's duration; interpolation, timers and completion
// callbacks all happen inside that call.
package anim

import (
	"sort"
	"time"
)

// Property names an animatable numeric attribute.
type Property string

const (
	X       Property = "x"
	Y       Property = "y"
	Width   Property = "width"
	Height  Property = "height"
	Opacity Property = "opacity"
	Dim     Property = "dim"
	Blur    Property = "blur"
)

// Props maps properties to target values.
type Props map[Property]float64

// Target is anything with numeric properties a tween can read and write.
// Targets are compared by identity, so implementations should be pointers.
type Target interface {
	Get(p Property) float64
	Set(p Property, v float64)
}

// Tween animates Target toward To over Duration, starting Delay after the request.
// Done fires once when the tween completes; it does not fire when the tween is
// killed or fully overwritten.
type Tween struct {
	Target   Target
	To       Props
	Duration time.Duration
	Delay    time.Duration
	Ease     Ease
	Done     func()
}

// Animator is the capability the zoom controller animates through.
type Animator interface {
	// Animate requests a group of tweens. Each tween's Delay is its offset
	// from the moment of the request.
	Animate(tweens ...Tween)
	// Kill drops every running and pending tween on target without callbacks.
	Kill(target Target)
}

type running struct {
	Tween
	props   []Property
	from    Props
	wait    time.Duration
	elapsed time.Duration
	started bool
	done    bool
}

type timer struct {
	remaining time.Duration
	fn        func()
}

// Engine is a frame-driven Animator with deferred timers.
type Engine struct {
	tweens []*running
	timers []*timer
}

// NewEngine creates an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Animate implements Animator. Tweens without a delay capture their start
// values immediately, from the target's live values.
func (e *Engine) Animate(tweens ...Tween) {
	for _, tw := range tweens {
		if tw.Target == nil {
			continue
		}
		if tw.Ease == nil {
			tw.Ease = Power1Out
		}
		r := &running{Tween: tw, wait: tw.Delay}
		e.tweens = append(e.tweens, r)
		if r.wait <= 0 {
			e.start(r)
		}
	}
}

// Kill implements Animator.
func (e *Engine) Kill(target Target) {
	for _, r := range e.tweens {
		if r.Target == target {
			r.done = true
			r.Done = nil
		}
	}
}

// After schedules fn to run once d has elapsed on the engine clock.
func (e *Engine) After(d time.Duration, fn func()) {
	e.timers = append(e.timers, &timer{remaining: d, fn: fn})
}

// Busy reports whether any tween or timer is still pending.
func (e *Engine) Busy() bool {
	for _, r := range e.tweens {
		if !r.done {
			return true
		}
	}
	return len(e.timers) > 0
}

// Animating reports whether target has a running or pending tween.
func (e *Engine) Animating(target Target) bool {
	for _, r := range e.tweens {
		if !r.done && r.Target == target {
			return true
		}
	}
	return false
}

// start captures live start values and takes over the tween's properties
// from any other running tween on the same target.
func (e *Engine) start(r *running) {
	r.started = true
	r.props = make([]Property, 0, len(r.To))
	for p := range r.To {
		r.props = append(r.props, p)
	}
	sort.Slice(r.props, func(i, j int) bool { return r.props[i] < r.props[j] })

	for _, other := range e.tweens {
		if other == r || other.done || !other.started || other.Target != r.Target {
			continue
		}
		if len(other.props) == 0 {
			continue
		}
		kept := other.props[:0]
		for _, p := range other.props {
			if _, taken := r.To[p]; !taken {
				kept = append(kept, p)
			}
		}
		other.props = kept
		if len(kept) == 0 {
			other.done = true
			other.Done = nil
		}
	}

	r.from = make(Props, len(r.props))
	for _, p := range r.props {
		r.from[p] = r.Target.Get(p)
	}
	if r.Duration <= 0 {
		r.apply(1)
	}
}

func (r *running) apply(k float64) {
	for _, p := range r.props {
		from := r.from[p]
		r.Target.Set(p, from+(r.To[p]-from)*k)
	}
}

// Update advances every tween and timer by dt. Completion callbacks run after
// all interpolation for the frame, tweens first, each in request order.
func (e *Engine) Update(dt time.Duration) {
	var callbacks []func()

	for _, r := range e.tweens {
		if r.done {
			continue
		}
		if !r.started {
			r.wait -= dt
			if r.wait > 0 {
				continue
			}
			e.start(r)
			r.elapsed = -r.wait
		} else {
			r.elapsed += dt
		}

		t := 1.0
		if r.Duration > 0 {
			t = Clamp01(float64(r.elapsed) / float64(r.Duration))
		}
		r.apply(r.Ease(t))
		if t >= 1 {
			r.done = true
			if r.Done != nil {
				callbacks = append(callbacks, r.Done)
			}
		}
	}

	live := e.tweens[:0]
	for _, r := range e.tweens {
		if !r.done {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live

	pending := e.timers[:0]
	for _, tm := range e.timers {
		tm.remaining -= dt
		if tm.remaining <= 0 {
			callbacks = append(callbacks, tm.fn)
			continue
		}
		pending = append(pending, tm)
	}
	for i := len(pending); i < len(e.timers); i++ {
		e.timers[i] = nil
	}
	e.timers = pending

	for _, fn := range callbacks {
		fn()
	}
}

// Package wall is the headless photo wall: cards on a rotating cylinder, a
// rotation controller fed by pointer input, and a zoom controller fed by
// clicks. It has no rendering dependency; a host calls Tick once per frame,
// forwards input, and draws DrawList, Proxy and Overlay.
package wall

import (
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keuio/PhotoWall3D/internal/anim"
	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/layout"
	"github.com/keuio/PhotoWall3D/internal/projection"
	"github.com/keuio/PhotoWall3D/internal/rotation"
	"github.com/keuio/PhotoWall3D/internal/zoom"
)

// Wall is one independent widget instance.
type Wall struct {
	cfg      config.Config
	viewport projection.Viewport
	logger   *log.Logger

	engine *anim.Engine
	rot    *rotation.Controller
	zoom   *zoom.Controller

	cards []*Card
	order []*Card // drawable cards, far to near
}

// New lays out cfg.Rows*cfg.ColumnsPerRow cards cycling through imageCount
// images and projects them into a window-sized viewport.
func New(cfg config.Config, imageCount int, logger *log.Logger) (*Wall, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	placements, err := layout.Generate(cfg, imageCount)
	if err != nil {
		return nil, err
	}

	engine := anim.NewEngine()
	rot, err := rotation.New(cfg, engine)
	if err != nil {
		return nil, err
	}

	w := &Wall{
		cfg: cfg,
		viewport: projection.Viewport{
			Width:       float64(cfg.WindowWidth),
			Height:      float64(cfg.WindowHeight),
			Perspective: cfg.Perspective,
		},
		logger: logger,
		engine: engine,
		rot:    rot,
	}
	w.zoom, err = zoom.New(rot, engine, w.viewportSize, logger)
	if err != nil {
		return nil, err
	}

	w.cards = make([]*Card, len(placements))
	for i, p := range placements {
		w.cards[i] = newCard(p)
	}
	w.project()

	logger.Debug("wall laid out", "cards", len(w.cards), "images", imageCount, "rows", cfg.Rows, "columns", cfg.ColumnsPerRow)
	return w, nil
}

func (w *Wall) viewportSize() (float64, float64) {
	return w.viewport.Width, w.viewport.Height
}

// Resize changes the viewport the wall is projected into.
func (w *Wall) Resize(width, height float64) {
	if width == w.viewport.Width && height == w.viewport.Height {
		return
	}
	w.viewport.Width, w.viewport.Height = width, height
	w.project()
}

// Tick advances animations by dt, then rotation by one frame, then re-projects.
func (w *Wall) Tick(dt time.Duration) {
	w.engine.Update(dt)
	w.rot.OnFrameTick()
	w.project()
}

func (w *Wall) project() {
	angle := w.rot.Angle()
	w.order = w.order[:0]
	for _, c := range w.cards {
		q, ok := w.viewport.Project(projection.Transform(c.Placement, angle), w.cfg.CardWidth, w.cfg.CardHeight)
		c.quad = q
		c.drawable = ok && q.FrontFacing()
		if c.drawable {
			w.order = append(w.order, c)
		}
	}
	sort.SliceStable(w.order, func(i, j int) bool {
		return w.order[i].quad.Depth < w.order[j].quad.Depth
	})
}

// PointerDown forwards a mouse press or touch start.
func (w *Wall) PointerDown(x float64) { w.rot.OnPointerDown(x) }

// PointerMove forwards pointer movement while pressed.
func (w *Wall) PointerMove(x float64) { w.rot.OnPointerMove(x) }

// PointerUp forwards a mouse release or touch end.
func (w *Wall) PointerUp() { w.rot.OnPointerUp() }

// Click handles the click delivered after a release at (x, y). While a card
// is zoomed any click closes it; otherwise a click that was not a drag opens
// the nearest card under the pointer.
func (w *Wall) Click(x, y float64) {
	switch w.zoom.Phase() {
	case zoom.Entering, zoom.Active:
		w.zoom.Close()
		return
	case zoom.Exiting:
		return
	}
	if w.rot.ShouldSuppressClick() {
		w.logger.Debug("click suppressed after drag", "x", x, "y", y)
		return
	}
	if c := w.CardAt(x, y); c != nil {
		w.zoom.Open(c)
	}
}

// Dismiss closes an open zoom. It reports whether there was one to close.
func (w *Wall) Dismiss() bool {
	return w.zoom.Close()
}

// CardAt returns the nearest drawable card containing (x, y), or nil.
func (w *Wall) CardAt(x, y float64) *Card {
	for i := len(w.order) - 1; i >= 0; i-- {
		if c := w.order[i]; c.quad.Contains(x, y) {
			return c
		}
	}
	return nil
}

// Mesh projects an (n+1)×(n+1) grid over c for texture mapping. See
// projection.Viewport.Mesh.
func (w *Wall) Mesh(c *Card, n int) ([]projection.Point, bool) {
	m := projection.Transform(c.Placement, w.rot.Angle())
	return w.viewport.Mesh(m, w.cfg.CardWidth, w.cfg.CardHeight, n)
}

// CardSize returns the unprojected card dimensions.
func (w *Wall) CardSize() (float64, float64) { return w.cfg.CardWidth, w.cfg.CardHeight }

// DrawList returns the drawable cards, far to near.
func (w *Wall) DrawList() []*Card { return w.order }

// Cards returns every card in layout order.
func (w *Wall) Cards() []*Card { return w.cards }

// Proxy returns the zoom proxy, or nil when nothing is zoomed.
func (w *Wall) Proxy() *zoom.Proxy { return w.zoom.Proxy() }

// Overlay returns the dimming overlay.
func (w *Wall) Overlay() *zoom.Overlay { return w.zoom.Overlay() }

// Phase returns the zoom lifecycle phase.
func (w *Wall) Phase() zoom.Phase { return w.zoom.Phase() }

// Zoomed reports whether rotation input is locked by a zoom.
func (w *Wall) Zoomed() bool { return w.rot.Zoomed() }

// Angle returns the wall rotation in degrees.
func (w *Wall) Angle() float64 { return w.rot.Angle() }

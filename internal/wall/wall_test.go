package wall

import (
	"testing"
	"time"

	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
	"github.com/keuio/PhotoWall3D/internal/zoom"
)

const frame = time.Second / 60

func newWall(t *testing.T) *Wall {
	t.Helper()
	w, err := New(config.Default(), 4, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func run(w *Wall, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		w.Tick(frame)
	}
}

func center(c *Card) (float64, float64) {
	var x, y float64
	for _, p := range c.Quad().Corners {
		x += p.X / 4
		y += p.Y / 4
	}
	return x, y
}

func front(t *testing.T, w *Wall) *Card {
	t.Helper()
	list := w.DrawList()
	if len(list) == 0 {
		t.Fatal("no drawable cards")
	}
	return list[len(list)-1]
}

func TestNewErrors(t *testing.T) {
	if _, err := New(config.Default(), 0, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(0 images) error = %v, want invalid input", err)
	}
	cfg := config.Default()
	cfg.Rows = 0
	if _, err := New(cfg, 3, nil); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("New(0 rows) error = %v, want configuration error", err)
	}
}

func TestNewLaysOutEveryCard(t *testing.T) {
	w := newWall(t)
	if got := len(w.Cards()); got != 5*38 {
		t.Fatalf("len(Cards()) = %d, want %d", got, 5*38)
	}
	list := w.DrawList()
	if len(list) == 0 || len(list) >= len(w.Cards()) {
		t.Errorf("DrawList() has %d cards; expected the back of the cylinder to be culled", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Quad().Depth > list[i].Quad().Depth {
			t.Fatal("DrawList() is not ordered far to near")
		}
	}
}

func TestTickAutoRotates(t *testing.T) {
	w := newWall(t)
	w.Tick(frame)
	if w.Angle() >= 0 {
		t.Errorf("Angle() = %v, want negative after a tick", w.Angle())
	}
}

func TestClickOpensNearestCard(t *testing.T) {
	w := newWall(t)
	w.Tick(frame)
	target := front(t, w)
	x, y := center(target)

	if got := w.CardAt(x, y); got != target {
		t.Fatalf("CardAt(center of front card) = %v, want the front card", got)
	}

	w.PointerDown(x)
	w.PointerUp()
	w.Click(x, y)

	if w.Phase() != zoom.Active || !w.Zoomed() {
		t.Fatalf("Phase() = %v zoomed=%v after a tap on a card", w.Phase(), w.Zoomed())
	}
	if w.Proxy() == nil || w.Proxy().ImageIndex != target.ImageIndex() {
		t.Error("proxy does not show the tapped card")
	}
	if target.Opacity() != 0 {
		t.Error("tapped card still visible behind the proxy")
	}

	angle := w.Angle()
	run(w, 500*time.Millisecond)
	if w.Angle() != angle {
		t.Error("wall kept rotating while zoomed")
	}
}

func TestClickAfterDragIsSuppressed(t *testing.T) {
	w := newWall(t)
	w.Tick(frame)
	x, y := center(front(t, w))

	w.PointerDown(x)
	w.PointerMove(x + 40)
	w.PointerUp()
	w.Click(x+40, y)
	if w.Phase() != zoom.Idle {
		t.Fatalf("drag opened a zoom: phase %v", w.Phase())
	}

	run(w, 100*time.Millisecond)
	x, y = center(front(t, w))
	w.PointerDown(x)
	w.PointerUp()
	w.Click(x, y)
	if w.Phase() != zoom.Active {
		t.Errorf("tap after the grace window did not open: phase %v", w.Phase())
	}
}

func TestClickOnEmptySpace(t *testing.T) {
	cfg := config.Default()
	cfg.Rows = 1
	cfg.ColumnsPerRow = 4
	w, err := New(cfg, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Tick(frame)
	w.Click(1, 1)
	if w.Phase() != zoom.Idle {
		t.Errorf("Phase() = %v, want idle after clicking empty space", w.Phase())
	}
}

func TestClickWhileZoomedCloses(t *testing.T) {
	w := newWall(t)
	w.Tick(frame)
	card := front(t, w)
	x, y := center(card)
	w.Click(x, y)
	run(w, 100*time.Millisecond)

	// Presses are ignored by the locked rotation, but the click still closes.
	w.PointerDown(5)
	w.PointerMove(300)
	w.PointerUp()
	w.Click(5, 5)
	if w.Phase() != zoom.Exiting {
		t.Fatalf("Phase() = %v, want exiting", w.Phase())
	}

	w.Click(x, y)
	if w.Phase() != zoom.Exiting {
		t.Error("click during exit changed the phase")
	}

	run(w, time.Second)
	if w.Phase() != zoom.Idle || w.Zoomed() {
		t.Fatalf("did not return to idle: phase=%v zoomed=%v", w.Phase(), w.Zoomed())
	}
	if card.Overridden() || card.Opacity() != 1 {
		t.Error("card left with overrides after the zoom")
	}
	if w.Overlay().Visible {
		t.Error("overlay still visible")
	}
}

func TestDismiss(t *testing.T) {
	w := newWall(t)
	if w.Dismiss() {
		t.Error("Dismiss() = true with nothing zoomed")
	}
	w.Tick(frame)
	x, y := center(front(t, w))
	w.Click(x, y)
	if !w.Dismiss() {
		t.Error("Dismiss() = false with a zoomed card")
	}
}

func TestResizeReprojects(t *testing.T) {
	w := newWall(t)
	before := front(t, w).Quad().Corners[0]
	w.Resize(640, 360)
	after := front(t, w).Quad().Corners[0]
	if before == after {
		t.Error("Resize did not re-project the cards")
	}
}

func TestWallsAreIndependent(t *testing.T) {
	a := newWall(t)
	b := newWall(t)
	a.Tick(frame)
	x, y := center(front(t, a))
	a.Click(x, y)

	if b.Zoomed() || b.Phase() != zoom.Idle {
		t.Error("zooming one wall affected another")
	}
	b.Tick(frame)
	if b.Angle() >= 0 {
		t.Error("second wall did not rotate")
	}
}

func TestMeshFollowsQuad(t *testing.T) {
	w := newWall(t)
	w.Tick(frame)
	c := front(t, w)
	pts, ok := w.Mesh(c, 2)
	if !ok || len(pts) != 9 {
		t.Fatalf("Mesh() = %d points, ok=%v", len(pts), ok)
	}
	q := c.Quad()
	if d := pts[0].X - q.Corners[0].X; d > 1e-6 || d < -1e-6 {
		t.Errorf("mesh origin %v does not match quad corner %v", pts[0], q.Corners[0])
	}
	if cw, ch := w.CardSize(); cw != 120 || ch != 160 {
		t.Errorf("CardSize() = %v x %v", cw, ch)
	}
}

package rotation

import (
	"math"
	"testing"
	"time"

	"github.com/keuio/PhotoWall3D/internal/anim"
	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
)

func newController(t *testing.T) (*Controller, *anim.Engine) {
	t.Helper()
	engine := anim.NewEngine()
	c, err := New(config.Default(), engine)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, engine
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewRequiresDeferrer(t *testing.T) {
	_, err := New(config.Default(), nil)
	if !errors.Is(err, errors.ErrCodeMissingDependency) {
		t.Errorf("New(nil) error = %v, want missing dependency", err)
	}
}

func TestFrameTickAutoRotates(t *testing.T) {
	c, _ := newController(t)
	if got := c.OnFrameTick(); !near(got, -0.15) {
		t.Errorf("OnFrameTick() = %v, want -0.15", got)
	}
	c.OnFrameTick()
	if !near(c.Angle(), -0.3) {
		t.Errorf("Angle() = %v, want -0.3", c.Angle())
	}
}

func TestFrameTickPausedWhileDragging(t *testing.T) {
	c, _ := newController(t)
	c.OnPointerDown(10)
	c.OnFrameTick()
	if c.Angle() != 0 {
		t.Errorf("Angle() = %v, want 0 while dragging", c.Angle())
	}
}

func TestFrameTickFrozenWhileZoomed(t *testing.T) {
	c, _ := newController(t)
	c.SetZoomed(true)
	for i := 0; i < 10; i++ {
		c.OnFrameTick()
	}
	if c.Angle() != 0 {
		t.Errorf("Angle() = %v, want 0 while zoomed", c.Angle())
	}
	c.SetZoomed(false)
	c.OnFrameTick()
	if !near(c.Angle(), -0.15) {
		t.Errorf("Angle() = %v, want -0.15 after unzoom", c.Angle())
	}
}

func TestDragThreshold(t *testing.T) {
	c, _ := newController(t)
	c.OnPointerDown(100)

	c.OnPointerMove(104)
	if c.State().DragExceededThreshold {
		t.Error("4px move classified as drag")
	}
	if !near(c.Angle(), 4*0.2) {
		t.Errorf("Angle() = %v, want %v", c.Angle(), 4*0.2)
	}

	c.OnPointerMove(105)
	if c.ShouldSuppressClick() {
		t.Error("5px move classified as drag; threshold must be exceeded")
	}

	c.OnPointerMove(106)
	if !c.State().DragExceededThreshold {
		t.Error("6px move not classified as drag")
	}
	if !near(c.Angle(), 6*0.2) {
		t.Errorf("Angle() = %v, want %v", c.Angle(), 6*0.2)
	}

	// Returning to the start keeps the drag classification.
	c.OnPointerMove(100)
	if !c.ShouldSuppressClick() {
		t.Error("classification reset by moving back")
	}
	if !near(c.Angle(), 0) {
		t.Errorf("Angle() = %v, want 0", c.Angle())
	}
}

func TestDragIsRelativeToStartAngle(t *testing.T) {
	c, _ := newController(t)
	c.OnFrameTick() // -0.15
	c.OnPointerDown(50)
	c.OnPointerMove(0)
	if want := -0.15 + -50*0.2; !near(c.Angle(), want) {
		t.Errorf("Angle() = %v, want %v", c.Angle(), want)
	}
	st := c.State()
	if !st.IsDragging || st.DragStartPointerX != 50 || !near(st.DragStartAngle, -0.15) {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	c, _ := newController(t)
	c.OnPointerMove(500)
	if c.Angle() != 0 || c.ShouldSuppressClick() {
		t.Errorf("move without press changed state: %+v", c.State())
	}
}

func TestPointerDownIgnoredWhileZoomed(t *testing.T) {
	c, _ := newController(t)
	c.SetZoomed(true)
	c.OnPointerDown(10)
	c.OnPointerMove(200)
	if c.State().IsDragging || c.Angle() != 0 {
		t.Errorf("zoomed controller accepted a drag: %+v", c.State())
	}
}

func TestClickSuppressionGraceWindow(t *testing.T) {
	c, engine := newController(t)
	c.OnPointerDown(100)
	c.OnPointerMove(140)
	c.OnPointerUp()

	if c.State().IsDragging {
		t.Error("still dragging after pointer up")
	}
	if !c.ShouldSuppressClick() {
		t.Fatal("click not suppressed right after a drag release")
	}

	engine.Update(40 * time.Millisecond)
	if !c.ShouldSuppressClick() {
		t.Error("suppression cleared before the grace window elapsed")
	}
	engine.Update(10 * time.Millisecond)
	if c.ShouldSuppressClick() {
		t.Error("suppression still active after the grace window")
	}
}

func TestTapIsNeverSuppressed(t *testing.T) {
	c, _ := newController(t)
	c.OnPointerDown(100)
	c.OnPointerMove(102)
	c.OnPointerUp()
	if c.ShouldSuppressClick() {
		t.Error("tap suppressed")
	}
}

func TestStaleGraceTimerKeepsNewDrag(t *testing.T) {
	c, engine := newController(t)
	c.OnPointerDown(0)
	c.OnPointerMove(50)
	c.OnPointerUp()

	engine.Update(20 * time.Millisecond)
	c.OnPointerDown(0)
	c.OnPointerMove(50)
	engine.Update(40 * time.Millisecond) // first release's timer fires here
	if !c.ShouldSuppressClick() {
		t.Error("earlier release's timer cleared the current drag")
	}

	c.OnPointerUp()
	engine.Update(GraceWindow)
	if c.ShouldSuppressClick() {
		t.Error("suppression not cleared after the second grace window")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		delta float64
		want  Gesture
	}{
		{0, Click},
		{5, Click},
		{-5, Click},
		{5.01, Drag},
		{-30, Drag},
	}
	for _, tt := range tests {
		if got := Classify(tt.delta, config.DragThreshold); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

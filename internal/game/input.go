package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSink receives normalized pointer events. *wall.Wall implements it.
type pointerSink interface {
	PointerDown(x float64)
	PointerMove(x float64)
	PointerUp()
	Click(x, y float64)
}

type pointerSource int

const (
	sourceNone pointerSource = iota
	sourceMouse
	sourceTouch
)

// pointer turns level-triggered mouse and touch state into one press, moves,
// release and click sequence. Only one source drives it at a time; the first
// touch wins over any later touches.
type pointer struct {
	source pointerSource
	touch  ebiten.TouchID
	x, y   float64
}

// step feeds one frame of input for the active source.
func (p *pointer) step(source pointerSource, pressed bool, x, y float64, sink pointerSink) {
	switch {
	case p.source == sourceNone && pressed:
		p.source, p.x, p.y = source, x, y
		sink.PointerDown(x)
	case p.source != sourceNone && pressed:
		if x != p.x || y != p.y {
			p.x, p.y = x, y
			sink.PointerMove(x)
		}
	case p.source != sourceNone && !pressed:
		p.source = sourceNone
		sink.PointerUp()
		sink.Click(p.x, p.y)
	}
}

// read polls ebiten for this tick's pointer state.
func (p *pointer) read(touchIDs []ebiten.TouchID, sink pointerSink) []ebiten.TouchID {
	touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])

	switch p.source {
	case sourceTouch:
		for _, id := range touchIDs {
			if id == p.touch {
				x, y := ebiten.TouchPosition(id)
				p.step(sourceTouch, true, float64(x), float64(y), sink)
				return touchIDs
			}
		}
		p.step(sourceTouch, false, p.x, p.y, sink)
		return touchIDs
	case sourceMouse:
		x, y := ebiten.CursorPosition()
		p.step(sourceMouse, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(x), float64(y), sink)
		return touchIDs
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touch = ids[0]
		x, y := ebiten.TouchPosition(p.touch)
		p.step(sourceTouch, true, float64(x), float64(y), sink)
		return touchIDs
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.step(sourceMouse, true, float64(x), float64(y), sink)
	}
	return touchIDs
}

// Package projection turns card placements into screen-space quads.
//
// Coordinates follow the CSS 3D convention the wall was designed in: x to the
// right, y down, z toward the viewer, with the eye Perspective units in front
// of the wall's center.
package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/keuio/PhotoWall3D/internal/layout"
)

// Viewport is the screen the wall is projected onto.
type Viewport struct {
	Width, Height float64
	Perspective   float64
}

// Point is a projected screen position.
type Point struct {
	X, Y float64
}

// Quad is a projected card: corners in order top-left, top-right,
// bottom-right, bottom-left.
type Quad struct {
	Corners [4]Point
	Depth   float64 // mean view-space z, larger is closer
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Transform builds the card model matrix:
// rotateY(wall) · rotateY(angle) · rotateX(tilt) · translateZ(depth) · translateY(offset).
func Transform(p layout.CardPlacement, wallAngleDeg float64) mgl64.Mat4 {
	m := mgl64.HomogRotate3DY(mgl64.DegToRad(wallAngleDeg))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(p.AngleDeg)))
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(p.TiltDeg)))
	m = m.Mul4(mgl64.Translate3D(0, 0, p.Depth))
	return m.Mul4(mgl64.Translate3D(0, p.VerticalOffset, 0))
}

// Project maps a w×h card centered on its local origin through m. It reports
// false when any corner is at or behind the eye.
func (v Viewport) Project(m mgl64.Mat4, w, h float64) (Quad, bool) {
	local := [4]mgl64.Vec4{
		{-w / 2, -h / 2, 0, 1},
		{w / 2, -h / 2, 0, 1},
		{w / 2, h / 2, 0, 1},
		{-w / 2, h / 2, 0, 1},
	}

	var q Quad
	for i, c := range local {
		pt, z, ok := v.point(m, c)
		if !ok {
			return Quad{}, false
		}
		q.Corners[i] = pt
		q.Depth += z / 4
	}
	return q, true
}

// Mesh projects an (n+1)×(n+1) grid over the card, row-major from the top-left
// corner. Drawing the card as n×n small quads hides the affine texture skew of
// drawing one projected quad as two triangles.
func (v Viewport) Mesh(m mgl64.Mat4, w, h float64, n int) ([]Point, bool) {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		y := -h/2 + h*float64(j)/float64(n)
		for i := 0; i <= n; i++ {
			x := -w/2 + w*float64(i)/float64(n)
			pt, _, ok := v.point(m, mgl64.Vec4{x, y, 0, 1})
			if !ok {
				return nil, false
			}
			pts = append(pts, pt)
		}
	}
	return pts, true
}

func (v Viewport) point(m mgl64.Mat4, local mgl64.Vec4) (Point, float64, bool) {
	p := m.Mul4x1(local)
	if p.Z() >= v.Perspective {
		return Point{}, 0, false
	}
	s := v.Perspective / (v.Perspective - p.Z())
	return Point{
		X: v.Width/2 + p.X()*s,
		Y: v.Height/2 + p.Y()*s,
	}, p.Z(), true
}

// Bounds is the smallest rectangle containing the quad.
func (q Quad) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range q.Corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// area is the signed shoelace area; positive when the corners run clockwise on
// a y-down screen, which is how a card's front face projects.
func (q Quad) area() float64 {
	var a float64
	for i := range q.Corners {
		p, n := q.Corners[i], q.Corners[(i+1)%4]
		a += p.X*n.Y - n.X*p.Y
	}
	return a / 2
}

// FrontFacing reports whether the card's front side faces the viewer.
func (q Quad) FrontFacing() bool {
	return q.area() > 0
}

// Contains reports whether (x, y) lies inside the quad, which is convex.
func (q Quad) Contains(x, y float64) bool {
	var positive, negative bool
	for i := range q.Corners {
		a, b := q.Corners[i], q.Corners[(i+1)%4]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

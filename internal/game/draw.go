package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/keuio/PhotoWall3D/internal/anim"
	"github.com/keuio/PhotoWall3D/internal/zoom"
)

const (
	meshSteps = 4

	backgroundBand = 4
)

// meshIndices triangulates an (n+1)×(n+1) vertex grid, two triangles per cell.
func meshIndices(n int) []uint16 {
	idx := make([]uint16, 0, n*n*6)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a := uint16(j*(n+1) + i)
			b := a + 1
			c := a + uint16(n+1)
			d := c + 1
			idx = append(idx, a, b, c, b, d, c)
		}
	}
	return idx
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for y := 0; y < h; y += backgroundBand {
		c := backgroundColor(g.time, float64(y)/float64(h))
		vector.DrawFilledRect(screen, 0, float32(y), float32(w), backgroundBand, c, false)
	}
}

// drawWall draws every visible card far to near into dst.
func (g *Game) drawWall(dst *ebiten.Image) {
	cw, ch := g.wall.CardSize()
	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}

	for _, c := range g.wall.DrawList() {
		alpha := float32(anim.Clamp01(c.Opacity()))
		if alpha == 0 {
			continue
		}
		pts, ok := g.wall.Mesh(c, meshSteps)
		if !ok {
			continue
		}
		tex := g.textures[c.ImageIndex()%len(g.textures)]
		b := tex.Bounds()
		sx, sy, sw, sh := coverRect(float64(b.Dx()), float64(b.Dy()), cw, ch)

		g.vertices = g.vertices[:0]
		for k, p := range pts {
			i, j := k%(meshSteps+1), k/(meshSteps+1)
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX:   float32(p.X),
				DstY:   float32(p.Y),
				SrcX:   float32(float64(b.Min.X) + sx + sw*float64(i)/meshSteps),
				SrcY:   float32(float64(b.Min.Y) + sy + sh*float64(j)/meshSteps),
				ColorR: alpha,
				ColorG: alpha,
				ColorB: alpha,
				ColorA: alpha,
			})
		}
		dst.DrawTriangles(g.vertices, g.indices, tex, op)
	}
}

// blurred draws src onto screen softened by a down and up sample. radius is
// the overlay blur in pixels.
func (g *Game) blurred(screen, src *ebiten.Image, radius float64) {
	factor := 1 / (1 + radius/2)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	sw, sh := max(1, int(float64(w)*factor)), max(1, int(float64(h)*factor))

	if g.small == nil || g.small.Bounds().Dx() != sw || g.small.Bounds().Dy() != sh {
		if g.small != nil {
			g.small.Deallocate()
		}
		g.small = ebiten.NewImage(sw, sh)
	}
	g.small.Clear()

	down := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	down.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	g.small.DrawImage(src, down)

	up := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	up.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
	screen.DrawImage(g.small, up)
}

func (g *Game) drawOverlay(screen *ebiten.Image, o *zoom.Overlay) {
	if !o.Visible || o.Dim <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	a := uint8(math.Round(anim.Clamp01(o.Dim) * 255))
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: a}, false)
}

func (g *Game) drawProxy(screen *ebiten.Image, p *zoom.Proxy) {
	if p == nil || p.Destroyed() || p.Width <= 0 || p.Height <= 0 {
		return
	}
	tex := g.textures[p.ImageIndex%len(g.textures)]
	b := tex.Bounds()
	sx, sy, sw, sh := coverRect(float64(b.Dx()), float64(b.Dy()), p.Width, p.Height)
	crop := tex.SubImage(imageRect(b.Min.X, b.Min.Y, sx, sy, sw, sh)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(p.Width/float64(crop.Bounds().Dx()), p.Height/float64(crop.Bounds().Dy()))
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleAlpha(float32(anim.Clamp01(p.Opacity)))
	screen.DrawImage(crop, op)
}

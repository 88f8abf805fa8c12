// Package game binds a wall to an ebiten window: pointer and touch input in,
// textured cards, the zoom overlay and the proxy out.
package game

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
	"github.com/keuio/PhotoWall3D/internal/snapshot"
	"github.com/keuio/PhotoWall3D/internal/wall"
	"github.com/keuio/PhotoWall3D/internal/zoom"
)

const helpText = "Drag to spin, click a photo to zoom | Space: music  S: snapshot  Esc/Q: quit"

// Music is the optional soundtrack control surface.
type Music interface {
	TogglePause() bool
	Duck(on bool)
}

// Options configures a Game.
type Options struct {
	Config      config.Config
	Images      []image.Image
	Music       Music  // may be nil
	SnapshotDir string // empty disables snapshots
	Logger      *log.Logger
}

type snapshotResult struct {
	path string
	err  error
}

// Game implements ebiten.Game.
type Game struct {
	wall     *wall.Wall
	textures []*ebiten.Image
	music    Music
	logger   *log.Logger

	// input
	pointer  pointer
	touchIDs []ebiten.TouchID

	// drawing
	buffer   *ebiten.Image
	small    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	time     float64

	// snapshots
	snapshotDir     string
	snapshotPending bool
	snapshots       chan snapshotResult

	status  string
	lastErr error
}

// New builds the wall for opts.Images and uploads them as textures.
func New(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if len(opts.Images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no images to show")
	}
	w, err := wall.New(opts.Config, len(opts.Images), opts.Logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		wall:        w,
		music:       opts.Music,
		logger:      opts.Logger,
		indices:     meshIndices(meshSteps),
		snapshotDir: opts.SnapshotDir,
		snapshots:   make(chan snapshotResult, 1),
	}
	g.textures = make([]*ebiten.Image, len(opts.Images))
	for i, img := range opts.Images {
		g.textures[i] = ebiten.NewImageFromImage(img)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.pollSnapshots()

	g.touchIDs = g.pointer.read(g.touchIDs, g.wall)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.wall.Phase() == zoom.Idle {
			return ebiten.Termination
		}
		g.wall.Dismiss()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.music != nil {
		paused := g.music.TogglePause()
		g.logger.Debug("soundtrack toggled", "paused", paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if g.snapshotDir == "" {
			g.status = "snapshots disabled"
		} else {
			g.snapshotPending = true
		}
	}

	g.wall.Tick(time.Second / time.Duration(ebiten.TPS()))
	if g.music != nil {
		g.music.Duck(g.wall.Zoomed())
	}
	g.time += 1.0 / float64(ebiten.TPS())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.buffer == nil || g.buffer.Bounds().Dx() != w || g.buffer.Bounds().Dy() != h {
		if g.buffer != nil {
			g.buffer.Deallocate()
		}
		g.buffer = ebiten.NewImage(w, h)
	}
	g.buffer.Clear()
	g.drawWall(g.buffer)

	overlay := g.wall.Overlay()
	if overlay.Visible && overlay.Blur > 0.5 {
		g.blurred(screen, g.buffer, overlay.Blur)
	} else {
		screen.DrawImage(g.buffer, nil)
	}
	g.drawOverlay(screen, overlay)
	g.drawProxy(screen, g.wall.Proxy())

	if g.snapshotPending {
		g.snapshotPending = false
		g.capture(screen)
	}

	status := helpText
	if g.status != "" {
		status += " | " + g.status
	}
	if g.lastErr != nil {
		status += " | Error: " + errors.UserMessage(g.lastErr)
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.wall.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// capture copies the frame and encodes it off the game loop.
func (g *Game) capture(screen *ebiten.Image) {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)

	dir := g.snapshotDir
	go func() {
		path, err := snapshot.Save(dir, img, time.Now())
		g.snapshots <- snapshotResult{path: path, err: err}
	}()
}

func (g *Game) pollSnapshots() {
	select {
	case r := <-g.snapshots:
		if r.err != nil {
			g.lastErr = r.err
			g.logger.Error("snapshot failed", "err", r.err)
			return
		}
		g.status = "saved " + r.path
		g.logger.Info("snapshot saved", "path", r.path)
	default:
	}
}

// Package game hosts the protractor in a transparent, undecorated, always on
// top ebiten window.
package game

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/protractor/internal/config"
	"github.com/iburimskiy/protractor/internal/maskcache"
	"github.com/iburimskiy/protractor/internal/overlay"
	"github.com/iburimskiy/protractor/internal/protractor"
)

// Outline points skipped between drag highlight segments
const outlineStride = 8

var dragHighlight = color.RGBA{R: 255, A: 255}

type Game struct {
	// ctx scopes background renders to the RunGame call; ebiten.Game
	// methods take no context.
	ctx     context.Context
	cfg     config.Config
	session *overlay.Session
	tap     *visualTap
	log     *slog.Logger

	image   *ebiten.Image
	shown   uint64
	size    protractor.RenderSize
	started bool

	drag    dragState
	lastErr error
}

// New builds the game and its render session. The zoom range is widened to
// the monitor size once the window exists.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*Game, error) {
	pc, err := cfg.Protractor()
	if err != nil {
		return nil, err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	cache, err := maskcache.New(cfg.CacheSize, maskcache.WithLogger(log))
	if err != nil {
		return nil, err
	}
	tap := newVisualTap()
	session, err := overlay.New(pc, overlay.Options{
		Scale:   cfg.ScaleOptions(cfg.Size, cfg.Size),
		Palette: pal,
		Cache:   cache,
		Logger:  log,
	}, tap)
	if err != nil {
		return nil, err
	}
	return &Game{
		ctx:     ctx,
		cfg:     cfg,
		session: session,
		tap:     tap,
		log:     log,
	}, nil
}

// Configure applies the window attributes. It is called before RunGame.
func (g *Game) Configure() {
	size := g.session.Config().Size
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(size.Width, size.Height)
}

// start sizes the zoom range to the monitor, renders the first frame and
// centers the window.
func (g *Game) start() error {
	g.started = true
	mw, mh := ebiten.Monitor().Size()
	if _, changed := g.session.SetDisplay(mw, mh); changed {
		g.log.Debug("size limited by display", "display", image.Pt(mw, mh))
	}
	if _, err := g.session.Apply(g.ctx, g.session.Current()); err != nil {
		return err
	}
	if err := g.present(); err != nil {
		return err
	}
	pos := centered(image.Pt(mw, mh), g.size)
	ebiten.SetWindowPosition(pos.X, pos.Y)
	g.log.Info("protractor ready", "size", g.size, "display", image.Pt(mw, mh))
	return nil
}

// present uploads the newest finished frame and resizes the window to it.
func (g *Game) present() error {
	f, err := g.session.Latest()
	if err != nil {
		if errors.Is(err, protractor.ErrRasterTarget) {
			return err
		}
		g.lastErr = err
	}
	if f == nil || (g.image != nil && f.Seq == g.shown) {
		return nil
	}
	if g.image != nil {
		g.image.Deallocate()
	}
	g.image = ebiten.NewImageFromImage(f.Image)
	g.shown = f.Seq

	if f.Config.Size != g.size {
		prev := g.size
		g.size = f.Config.Size
		ebiten.SetWindowSize(g.size.Width, g.size.Height)
		if prev != (protractor.RenderSize{}) {
			x, y := ebiten.WindowPosition()
			pos := recenter(image.Pt(x, y), prev, g.size)
			ebiten.SetWindowPosition(pos.X, pos.Y)
		}
	}
	return nil
}

func (g *Game) submit(t protractor.Transition) {
	g.log.Debug("transition", "seq", t.Seq, "kind", t.Kind, "size", t.Config.Size)
	g.session.Submit(g.ctx, t)
}

func (g *Game) Update() error {
	if !g.started {
		if err := g.start(); err != nil {
			return err
		}
	}
	if err := g.present(); err != nil {
		return err
	}

	g.updateDrag()

	if _, dy := ebiten.Wheel(); dy != 0 {
		if t, ok := g.session.Zoom(dy); ok {
			g.submit(t)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		quit, err := g.runMenu()
		if err != nil {
			g.lastErr = err
		}
		if quit {
			return ebiten.Termination
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.submit(g.session.ToggleSpan())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.submit(g.session.ToggleStyle())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateDrag() {
	x, y := ebiten.CursorPosition()
	at := image.Pt(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.drag.press(at, g.tap.contains(x, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.drag.release()
		return
	}
	if d := g.drag.move(at); d != (image.Point{}) {
		wx, wy := ebiten.WindowPosition()
		ebiten.SetWindowPosition(wx+d.X, wy+d.Y)
	}
}

func (g *Game) runMenu() (quit bool, err error) {
	action, err := showMenu(g.session.Config())
	if err != nil {
		return false, err
	}
	switch action {
	case actionSpan:
		g.submit(g.session.ToggleSpan())
	case actionStyle:
		g.submit(g.session.ToggleStyle())
	case actionColor:
		c, ok, err := pickColor(g.session.Palette().Accent)
		if err != nil || !ok {
			return false, err
		}
		g.log.Info("label color changed", "color", config.FormatColor(c))
		g.submit(g.session.SetAccent(c))
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (g *Game) opacity() float64 {
	if g.drag.active {
		return clamp01(g.cfg.DragOpacity)
	}
	return clamp01(g.cfg.Opacity)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.opacity()))
	screen.DrawImage(g.image, op)

	if g.drag.active {
		g.drawOutline(screen)
	}
	if g.cfg.ShowStatus || g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, statusLine(g.session.Config(), g.lastErr), 4, 4)
	}
}

// drawOutline traces the window shape while it is being dragged.
func (g *Game) drawOutline(screen *ebiten.Image) {
	pts := g.tap.snapshot(outlineStride)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, dragHighlight, true)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.size.Width == 0 {
		return outsideWidth, outsideHeight
	}
	return g.size.Width, g.size.Height
}

// Close waits for background renders to finish.
func (g *Game) Close() {
	g.session.Wait()
	st := g.session.Stats()
	g.log.Debug("mask cache", "hits", st.Hits, "misses", st.Misses, "builds", st.Builds)
}

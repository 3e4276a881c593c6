// Package overlay drives the render pipeline of a protractor window: every
// accepted transition resizes the surface, repaints the scene, fetches the
// matching silhouette and hands it to the window.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/iburimskiy/protractor/internal/maskcache"
	"github.com/iburimskiy/protractor/internal/protractor"
	"github.com/iburimskiy/protractor/internal/raster"
)

// Masker is the window side of the pipeline. SetMask is called with the
// silhouette of every frame that becomes visible, in sequence order.
type Masker interface {
	SetMask(*protractor.Silhouette) error
}

// Frame is the result of one transition.
type Frame struct {
	Seq        uint64
	Kind       protractor.TransitionKind
	Config     protractor.Config
	Scene      *protractor.Scene
	Image      *image.RGBA // painted and clipped, transparent outside the silhouette
	Silhouette *protractor.Silhouette
}

// Options configures a Session.
type Options struct {
	Scale   protractor.ScaleOptions
	Palette protractor.Palette
	Cache   *maskcache.Cache // optional
	Logger  *slog.Logger     // optional
}

// Session serializes user inputs through a ScaleController and renders the
// resulting transitions. Input methods and Apply/Submit are safe for
// concurrent use.
type Session struct {
	mu      sync.Mutex
	ctrl    *protractor.ScaleController
	palette protractor.Palette

	cache   *maskcache.Cache
	painter *raster.Painter
	masker  Masker
	log     *slog.Logger

	slot frameSlot
	wg   sync.WaitGroup

	pendMu  sync.Mutex
	pending *job // newest submitted transition not yet picked up
	running bool
}

// errSuperseded stops a render whose result could no longer become visible.
var errSuperseded = errors.New("overlay: transition superseded")

// New returns a session starting at cfg.
func New(cfg protractor.Config, opts Options, m Masker) (*Session, error) {
	if m == nil {
		return nil, errors.New("overlay: nil masker")
	}
	ctrl, err := protractor.NewScaleController(cfg, opts.Scale)
	if err != nil {
		return nil, err
	}
	painter, err := raster.NewPainter()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cache := opts.Cache
	if cache == nil {
		if cache, err = maskcache.New(maskcache.DefaultCapacity, maskcache.WithLogger(log)); err != nil {
			return nil, err
		}
	}
	pal := opts.Palette
	if pal == (protractor.Palette{}) {
		pal = protractor.DefaultPalette()
	}
	return &Session{
		ctrl:    ctrl,
		palette: pal,
		cache:   cache,
		painter: painter,
		masker:  m,
		log:     log,
	}, nil
}

// Zoom feeds one wheel delta into the controller.
func (s *Session) Zoom(delta float64) (protractor.Transition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Zoom(delta)
}

func (s *Session) ToggleSpan() protractor.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.ToggleSpan()
}

func (s *Session) SetSpan(span protractor.Span) (protractor.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetSpan(span)
}

func (s *Session) ToggleStyle() protractor.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.ToggleStyle()
}

// SetAccent changes the secondary label color and returns the restyle
// transition that repaints the labels.
func (s *Session) SetAccent(c color.Color) protractor.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette.Accent = color.RGBAModel.Convert(c).(color.RGBA)
	return s.ctrl.Restyle()
}

// SetDisplay updates the zoom range from the display size.
func (s *Session) SetDisplay(w, h int) (protractor.Transition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetDisplay(w, h)
}

// Current describes the present state for the initial render.
func (s *Session) Current() protractor.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Current()
}

func (s *Session) Config() protractor.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Config()
}

func (s *Session) Palette() protractor.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// Apply renders t synchronously and publishes the frame. It returns a nil
// frame and a nil error when a newer transition superseded t.
func (s *Session) Apply(ctx context.Context, t protractor.Transition) (*Frame, error) {
	f, err := s.render(ctx, t, s.Palette())
	if errors.Is(err, errSuperseded) {
		return nil, nil
	}
	if err != nil {
		s.slot.reject(t.Seq, err)
		return nil, err
	}
	if ok, err := s.publish(f); err != nil || !ok {
		return nil, err
	}
	return f, nil
}

// Submit renders t in the background. A single worker drains submissions;
// a transition still waiting when a newer one arrives is replaced by it, and
// a render in progress stops at the next step once it is superseded.
func (s *Session) Submit(ctx context.Context, t protractor.Transition) {
	j := &job{ctx: ctx, t: t, pal: s.Palette()}

	s.pendMu.Lock()
	defer s.pendMu.Unlock()
	if s.pending != nil {
		if s.pending.t.Seq > t.Seq {
			return
		}
		s.log.Debug("transition coalesced", "seq", s.pending.t.Seq, "by", t.Seq)
	}
	s.pending = j
	if !s.running {
		s.running = true
		s.wg.Add(1)
		go s.drain()
	}
}

// job is a submitted transition with the palette current at submit time.
type job struct {
	ctx context.Context
	t   protractor.Transition
	pal protractor.Palette
}

func (s *Session) drain() {
	defer s.wg.Done()
	for {
		s.pendMu.Lock()
		j := s.pending
		s.pending = nil
		if j == nil {
			s.running = false
			s.pendMu.Unlock()
			return
		}
		s.pendMu.Unlock()
		s.run(j)
	}
}

func (s *Session) run(j *job) {
	f, err := s.render(j.ctx, j.t, j.pal)
	switch {
	case errors.Is(err, errSuperseded):
		s.log.Debug("superseded render skipped", "seq", j.t.Seq)
		return
	case err != nil:
		s.log.Error("render failed", "seq", j.t.Seq, "kind", j.t.Kind, "err", err)
		s.slot.reject(j.t.Seq, err)
		return
	}
	if _, err := s.publish(f); err != nil {
		s.log.Error("mask update failed", "seq", j.t.Seq, "err", err)
	}
}

// superseded reports whether a newer transition is visible or waiting.
func (s *Session) superseded(seq uint64) bool {
	if s.slot.newer(seq) {
		return true
	}
	s.pendMu.Lock()
	defer s.pendMu.Unlock()
	return s.pending != nil && s.pending.t.Seq > seq
}

// Wait blocks until every submitted transition has finished.
func (s *Session) Wait() { s.wg.Wait() }

// Latest returns the newest visible frame and, if the newest transition
// failed, its error.
func (s *Session) Latest() (*Frame, error) { return s.slot.load() }

// Stats exposes the silhouette cache counters.
func (s *Session) Stats() maskcache.Stats { return s.cache.Stats() }

func (s *Session) publish(f *Frame) (bool, error) {
	ok, err := s.slot.offer(f, func(f *Frame) error {
		return s.masker.SetMask(f.Silhouette)
	})
	if err != nil {
		return false, fmt.Errorf("set mask: %w", err)
	}
	if !ok {
		s.log.Debug("stale frame dropped", "seq", f.Seq)
	}
	return ok, nil
}

// render runs the pipeline steps in order: surface, scene and paint,
// silhouette, clip.
func (s *Session) render(ctx context.Context, t protractor.Transition, pal protractor.Palette) (*Frame, error) {
	start := time.Now()
	cfg := t.Config

	canvas, err := raster.NewCanvas(cfg.Size)
	if err != nil {
		return nil, err
	}

	scene, err := protractor.BuildScene(cfg, pal)
	if err != nil {
		return nil, err
	}
	if s.superseded(t.Seq) {
		return nil, errSuperseded
	}
	if err := s.painter.Paint(canvas, scene); err != nil {
		return nil, err
	}

	if s.superseded(t.Seq) {
		return nil, errSuperseded
	}
	sil, err := s.cache.Silhouette(ctx, cfg.Span, cfg.Size)
	if err != nil {
		return nil, err
	}

	clipped, err := raster.Clip(canvas, sil)
	if err != nil {
		return nil, err
	}
	s.log.Debug("frame rendered",
		"seq", t.Seq, "kind", t.Kind, "span", cfg.Span, "style", cfg.Style,
		"size", cfg.Size, "elapsed", time.Since(start))

	return &Frame{
		Seq:        t.Seq,
		Kind:       t.Kind,
		Config:     cfg,
		Scene:      scene,
		Image:      clipped,
		Silhouette: sil,
	}, nil
}

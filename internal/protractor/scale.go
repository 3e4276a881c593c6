package protractor

import (
	"fmt"
	"math"
)

// TransitionKind tells what a transition changed.
type TransitionKind int

const (
	Resize TransitionKind = iota
	SpanChange
	StyleChange
)

func (k TransitionKind) String() string {
	switch k {
	case Resize:
		return "resize"
	case SpanChange:
		return "span"
	case StyleChange:
		return "style"
	}
	return "unknown"
}

// Transition is an accepted change of the render configuration.
type Transition struct {
	Seq    uint64
	Kind   TransitionKind
	Config Config

	// Rerender is always set: ticks and labels are rebuilt for every
	// transition. SwapSilhouette is set when the clip shape changes.
	Rerender       bool
	SwapSilhouette bool
}

// ScaleOptions bounds the zoom range. Sizes are edge lengths in pixels.
type ScaleOptions struct {
	MinSize     float64
	MaxSize     float64
	Sensitivity float64 // pixels per unit of zoom delta
}

// DisplayBound returns the largest instrument size allowed on a display of
// w by h pixels.
func DisplayBound(w, h int) float64 {
	return float64(max(w, h))
}

// ScaleController owns the span, style and continuous size of a session. It
// is not safe for concurrent use; inputs are processed one at a time.
type ScaleController struct {
	size        float64
	min, max    float64
	sensitivity float64
	span        Span
	style       Style
	seq         uint64
}

// NewScaleController returns a controller starting at cfg. The initial size
// is the width of cfg.Size clamped into the zoom range.
func NewScaleController(cfg Config, opts ScaleOptions) (*ScaleController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(opts.MinSize >= 1) || math.IsInf(opts.MinSize, 0) {
		return nil, fmt.Errorf("%w: minimum size %.1f", ErrRasterTarget, opts.MinSize)
	}
	if !(opts.Sensitivity > 0) || math.IsInf(opts.Sensitivity, 0) {
		opts.Sensitivity = 1
	}
	c := &ScaleController{
		min:         opts.MinSize,
		sensitivity: opts.Sensitivity,
		span:        cfg.Span,
		style:       cfg.Style,
	}
	c.setMax(opts.MaxSize)
	c.size = clamp(float64(cfg.Size.Width), c.min, c.max)
	return c, nil
}

// setMax keeps at least one odd size inside the range.
func (c *ScaleController) setMax(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	c.max = math.Max(v, c.min+2)
}

// Zoom applies a zoom delta. It returns false, leaving the state unchanged,
// when the clamped size lands on a bound or delta is not finite.
func (c *ScaleController) Zoom(delta float64) (Transition, bool) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return Transition{}, false
	}
	next := clamp(c.size+delta*c.sensitivity, c.min, c.max)
	if next == c.min || next == c.max {
		return Transition{}, false
	}
	prev := c.RenderSize()
	c.size = next
	if c.RenderSize() == prev {
		// Sub-pixel movement accumulates without a re-render.
		return Transition{}, false
	}
	return c.next(Resize, false), true
}

// ToggleSpan switches between the half and full circle.
func (c *ScaleController) ToggleSpan() Transition {
	c.span = c.span.Toggle()
	return c.next(SpanChange, true)
}

// SetSpan selects a span explicitly.
func (c *ScaleController) SetSpan(s Span) (Transition, error) {
	if !s.Valid() {
		return Transition{}, fmt.Errorf("%w: %d", ErrInvalidSpan, int(s))
	}
	swap := s != c.span
	c.span = s
	return c.next(SpanChange, swap), nil
}

// ToggleStyle switches between the detailed and minimal style.
func (c *ScaleController) ToggleStyle() Transition {
	c.style = c.style.Toggle()
	return c.next(StyleChange, false)
}

// Restyle re-renders the current configuration, e.g. after a color change.
func (c *ScaleController) Restyle() Transition {
	return c.next(StyleChange, false)
}

// SetDisplay updates the upper bound from the display dimensions and pulls
// the current size back into range. It reports whether the size changed.
func (c *ScaleController) SetDisplay(w, h int) (Transition, bool) {
	c.setMax(DisplayBound(w, h))
	prev := c.RenderSize()
	c.size = clamp(c.size, c.min, c.max)
	if c.RenderSize() == prev {
		return Transition{}, false
	}
	return c.next(Resize, false), true
}

// Current returns a transition describing the present state without
// advancing the sequence. It is used for the initial render.
func (c *ScaleController) Current() Transition {
	return Transition{
		Seq:            c.seq,
		Kind:           Resize,
		Config:         c.Config(),
		Rerender:       true,
		SwapSilhouette: true,
	}
}

func (c *ScaleController) next(kind TransitionKind, swap bool) Transition {
	c.seq++
	return Transition{
		Seq:            c.seq,
		Kind:           kind,
		Config:         c.Config(),
		Rerender:       true,
		SwapSilhouette: swap || kind == Resize,
	}
}

// Config returns the current render configuration.
func (c *ScaleController) Config() Config {
	return Config{Span: c.span, Style: c.style, Size: c.RenderSize()}
}

// RenderSize returns the current raster size: both sides odd and within the
// zoom range.
func (c *ScaleController) RenderSize() RenderSize {
	n := oddWithin(int(c.size), int(math.Ceil(c.min)), int(math.Floor(c.max)))
	return Square(n)
}

// Size returns the continuous size.
func (c *ScaleController) Size() float64 { return c.size }

// Bounds returns the zoom range.
func (c *ScaleController) Bounds() (lo, hi float64) { return c.min, c.max }

func (c *ScaleController) Span() Span   { return c.span }
func (c *ScaleController) Style() Style { return c.style }

// ForceOdd rounds n up to the next odd number.
func ForceOdd(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// oddWithin forces n odd and keeps it inside [lo, hi]. The range always
// holds an odd number because the controller keeps hi >= lo+2.
func oddWithin(n, lo, hi int) int {
	n = ForceOdd(min(max(n, lo), hi))
	if n > hi {
		n -= 2
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

package protractor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *ScaleController {
	t.Helper()
	c, err := NewScaleController(
		Config{Span: Half, Style: Detailed, Size: Square(800)},
		ScaleOptions{MinSize: 600, MaxSize: 1920, Sensitivity: 3},
	)
	require.NoError(t, err)
	return c
}

func TestRenderSizeOddWithinBounds(t *testing.T) {
	c := newController(t)
	rng := rand.New(rand.NewSource(1))
	lo, hi := c.Bounds()
	for i := 0; i < 5000; i++ {
		delta := (rng.Float64() - 0.5) * 200
		if i%97 == 0 {
			delta *= 1e6
		}
		c.Zoom(delta)
		s := c.RenderSize()
		require.True(t, s.Odd(), "size %s", s)
		require.GreaterOrEqual(t, float64(s.Width), lo)
		require.LessOrEqual(t, float64(s.Width), hi)
		require.Equal(t, s.Width, s.Height)
	}
}

func TestZoomExtremeIsNoop(t *testing.T) {
	c := newController(t)
	before := *c

	_, ok := c.Zoom(1e12)
	assert.False(t, ok)
	assert.Equal(t, before, *c)

	_, ok = c.Zoom(-1e12)
	assert.False(t, ok)
	assert.Equal(t, before, *c)
}

func TestZoomNonFiniteIsNoop(t *testing.T) {
	c := newController(t)
	before := *c

	for _, delta := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := c.Zoom(delta)
		assert.False(t, ok, "delta %v", delta)
		assert.Equal(t, before, *c)
	}
	assert.Equal(t, Square(801), c.RenderSize())

	tr, ok := c.Zoom(10)
	require.True(t, ok, "the controller keeps accepting input")
	assert.Equal(t, Square(831), tr.Config.Size)
}

func TestZoomAccepted(t *testing.T) {
	c := newController(t)
	tr, ok := c.Zoom(10)
	require.True(t, ok)
	assert.Equal(t, Resize, tr.Kind)
	assert.Equal(t, uint64(1), tr.Seq)
	assert.True(t, tr.Rerender)
	assert.True(t, tr.SwapSilhouette)
	assert.Equal(t, Square(831), tr.Config.Size)

	tr, ok = c.Zoom(-20)
	require.True(t, ok)
	assert.Equal(t, uint64(2), tr.Seq)
	assert.Equal(t, Square(771), tr.Config.Size)
}

func TestToggleSpanKeepsSize(t *testing.T) {
	c := newController(t)
	size := c.RenderSize()
	tr := c.ToggleSpan()
	assert.Equal(t, SpanChange, tr.Kind)
	assert.Equal(t, Full, tr.Config.Span)
	assert.Equal(t, size, tr.Config.Size)
	assert.True(t, tr.SwapSilhouette)

	tr = c.ToggleSpan()
	assert.Equal(t, Half, tr.Config.Span)
}

func TestToggleStyleRestoresRingDepths(t *testing.T) {
	c := newController(t)
	want := RingDepths{0.96, 0.93, 0.2, 0}
	assert.Equal(t, want, c.Config().Style.Params().RingDepths)

	tr := c.ToggleStyle()
	assert.Equal(t, Minimal, tr.Config.Style)
	assert.False(t, tr.SwapSilhouette)
	assert.Equal(t, RingDepths{0.96, 0.96, 0.93, 0.93}, tr.Config.Style.Params().RingDepths)

	tr = c.ToggleStyle()
	assert.Equal(t, want, tr.Config.Style.Params().RingDepths)
}

func TestSetSpanInvalid(t *testing.T) {
	c := newController(t)
	_, err := c.SetSpan(Span(270))
	assert.ErrorIs(t, err, ErrInvalidSpan)
	assert.Equal(t, Half, c.Span())
}

func TestNewScaleControllerInvalid(t *testing.T) {
	_, err := NewScaleController(Config{Span: 90, Size: Square(800)}, ScaleOptions{MinSize: 600, MaxSize: 900})
	assert.ErrorIs(t, err, ErrInvalidSpan)

	_, err = NewScaleController(Config{Span: Half, Size: Square(800)}, ScaleOptions{MinSize: 0, MaxSize: 900})
	assert.ErrorIs(t, err, ErrRasterTarget)
}

func TestSetDisplayShrinks(t *testing.T) {
	c := newController(t)
	tr, ok := c.SetDisplay(700, 400)
	require.True(t, ok)
	assert.Equal(t, Square(699), tr.Config.Size)

	// A display smaller than the floor still leaves one odd size.
	_, _ = c.SetDisplay(100, 100)
	assert.Equal(t, Square(601), c.RenderSize())
}

func TestForceOdd(t *testing.T) {
	assert.Equal(t, 801, ForceOdd(800))
	assert.Equal(t, 801, ForceOdd(801))
}

func TestParseSpanAndStyle(t *testing.T) {
	s, err := ParseSpan(360)
	require.NoError(t, err)
	assert.Equal(t, Full, s)
	_, err = ParseSpan(90)
	assert.ErrorIs(t, err, ErrInvalidSpan)

	st, err := ParseStyle("Minimal")
	require.NoError(t, err)
	assert.Equal(t, Minimal, st)
	_, err = ParseStyle("fancy")
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

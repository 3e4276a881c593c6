package game

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/protractor/internal/protractor"
)

func TestDragAccumulator(t *testing.T) {
	var d dragState

	assert.False(t, d.press(image.Pt(3, 3), false), "presses outside the instrument are ignored")
	assert.Equal(t, image.Point{}, d.move(image.Pt(40, 40)))

	require.True(t, d.press(image.Pt(100, 50), true))
	assert.Equal(t, image.Pt(5, -2), d.move(image.Pt(105, 48)))
	// The window followed, so the cursor is back over the anchor.
	assert.Equal(t, image.Point{}, d.move(image.Pt(100, 50)))

	d.release()
	assert.False(t, d.active)
	assert.Equal(t, image.Point{}, d.move(image.Pt(120, 60)))
}

func TestWindowPlacement(t *testing.T) {
	assert.Equal(t, image.Pt(559, 139), centered(image.Pt(1920, 1080), protractor.Square(801)))

	from := protractor.Square(801)
	to := protractor.Square(831)
	pos := recenter(image.Pt(100, 100), from, to)
	assert.Equal(t, image.Pt(85, 85), pos)
	assert.Equal(t, image.Pt(100, 100), recenter(pos, to, from))
}

func TestMenu(t *testing.T) {
	cfg := protractor.Config{Span: protractor.Half, Style: protractor.Detailed, Size: protractor.Square(801)}
	items := menuItems(cfg)
	assert.Equal(t, []string{"Switch to 360°", "Switch to minimal style", "Change label color", "Quit"}, items)

	want := []menuAction{actionSpan, actionStyle, actionColor, actionQuit}
	for i, item := range items {
		assert.Equal(t, want[i], parseMenu(cfg, item), item)
	}
	assert.Equal(t, actionNone, parseMenu(cfg, "Switch to 180°"))
	assert.Equal(t, actionNone, parseMenu(cfg, ""))

	cfg.Span = protractor.Full
	assert.Equal(t, actionSpan, parseMenu(cfg, "Switch to 180°"))
}

func TestVisualTap(t *testing.T) {
	tap := newVisualTap()
	assert.False(t, tap.contains(100, 100))
	assert.Nil(t, tap.snapshot(4))

	sil, err := protractor.GenerateSilhouette(protractor.Half, protractor.Square(201))
	require.NoError(t, err)
	require.NoError(t, tap.SetMask(sil))

	assert.True(t, tap.contains(100, 90))
	assert.False(t, tap.contains(100, 190))

	pts := tap.snapshot(8)
	require.NotEmpty(t, pts)
	assert.Equal(t, sil.Outline[0], pts[0])
	assert.Equal(t, sil.Outline[0], pts[len(pts)-1], "the traced outline is closed")
	assert.Contains(t, pts, sil.Outline[len(sil.Outline)-1])
}

func TestStatusLine(t *testing.T) {
	cfg := protractor.Config{Span: protractor.Full, Style: protractor.Minimal, Size: protractor.Square(601)}
	assert.Equal(t, "601x601 full minimal", statusLine(cfg, nil))
	assert.Equal(t, "601x601 full minimal | Error: boom", statusLine(cfg, errors.New("boom")))
	assert.Equal(t, 0.3, clamp01(0.3))
	assert.Equal(t, 1.0, clamp01(4))
}

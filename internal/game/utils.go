package game

import (
	"fmt"
	"image"

	"github.com/iburimskiy/protractor/internal/protractor"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// centered returns the window position that centers size on a display.
func centered(display image.Point, size protractor.RenderSize) image.Point {
	return image.Pt((display.X-size.Width)/2, (display.Y-size.Height)/2)
}

// recenter returns the position that keeps the window center fixed while
// resizing from one size to another.
func recenter(pos image.Point, from, to protractor.RenderSize) image.Point {
	cx := pos.X + from.Width/2
	cy := pos.Y + from.Height/2
	return image.Pt(cx-to.Width/2, cy-to.Height/2)
}

// statusLine formats the corner status text.
func statusLine(cfg protractor.Config, err error) string {
	s := fmt.Sprintf("%s %s %s", cfg.Size, cfg.Span, cfg.Style)
	if err != nil {
		s += " | Error: " + err.Error()
	}
	return s
}

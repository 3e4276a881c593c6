package protractor

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FigureInches is the nominal edge length of the instrument. Point sizes
// scale with the raster so that the instrument looks the same at every zoom.
const FigureInches = 10

// PlotInset is the fraction of the silhouette radius used by the scale, so
// stroke caps at radius 1 stay inside the window outline.
const PlotInset = 0.97

// RenderSize is a raster size in pixels.
type RenderSize struct {
	Width  int
	Height int
}

// Square returns a size with equal sides.
func Square(n int) RenderSize {
	return RenderSize{Width: n, Height: n}
}

// Rect returns the raster bounds anchored at the origin.
func (s RenderSize) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Odd reports whether both sides are odd.
func (s RenderSize) Odd() bool {
	return s.Width%2 == 1 && s.Height%2 == 1
}

// CenterPixel returns the pixel holding the instrument center.
func (s RenderSize) CenterPixel() image.Point {
	return image.Pt(s.Width/2, s.Height/2)
}

func (s RenderSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Config is the immutable input of a render pass.
type Config struct {
	Span  Span
	Style Style
	Size  RenderSize
}

// Validate reports configurations that would desynchronize tick count and
// label numbering, or that have no raster to draw on.
func (c Config) Validate() error {
	if !c.Span.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSpan, int(c.Span))
	}
	if !c.Style.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStyle, int(c.Style))
	}
	if c.Size.Width <= 0 || c.Size.Height <= 0 {
		return fmt.Errorf("%w: size %s", ErrRasterTarget, c.Size)
	}
	return nil
}

// Frame maps polar coordinates onto a raster. Angles are in degrees,
// counterclockwise from the positive x axis; radii are normalized to [0, 1].
type Frame struct {
	Center r2.Vec
	Radius r2.Vec
	ptSize float64 // pixels per point
}

// NewFrame returns the frame for size, with the scale radius shrunk by inset.
// The center of an odd-sized raster is the center of its middle pixel.
func NewFrame(size RenderSize, inset float64) Frame {
	w, h := float64(size.Width), float64(size.Height)
	return Frame{
		Center: r2.Vec{X: w / 2, Y: h / 2},
		Radius: r2.Vec{X: w / 2 * inset, Y: h / 2 * inset},
		ptSize: math.Min(w, h) / (FigureInches * 72),
	}
}

// Point returns the raster position of the polar coordinate (deg, r).
func (f Frame) Point(deg, r float64) r2.Vec {
	rad := deg * math.Pi / 180
	return r2.Vec{
		X: f.Center.X + r*f.Radius.X*math.Cos(rad),
		Y: f.Center.Y - r*f.Radius.Y*math.Sin(rad),
	}
}

// Pixels converts a length in points to pixels.
func (f Frame) Pixels(pt float64) float64 {
	return pt * f.ptSize
}

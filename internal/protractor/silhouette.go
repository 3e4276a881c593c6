package protractor

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// The half silhouette overshoots the 0 and 180 degree edges so that
	// anti-aliasing never clips the outermost ticks.
	halfArcStart = -4.0
	halfArcEnd   = 184.0

	// arcStep is the angular sampling of the outline in degrees.
	arcStep = 0.25

	// MaxRasterPixels bounds the area of any raster target.
	MaxRasterPixels = 1 << 26

	insideThreshold = 0x80
)

// Silhouette is the filled outline used to clip the host window to the
// instrument. Mask pixels are 0xff inside the outline and 0 outside.
type Silhouette struct {
	Span    Span
	Size    RenderSize
	Outline []r2.Vec // closed implicitly from the last point to the first
	Mask    *image.Alpha
}

// CheckTarget reports whether a raster of the given size can be allocated.
func CheckTarget(size RenderSize) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%w: size %s", ErrRasterTarget, size)
	}
	if size.Width > MaxRasterPixels/size.Height {
		return fmt.Errorf("%w: size %s exceeds %d pixels", ErrRasterTarget, size, MaxRasterPixels)
	}
	return nil
}

// GenerateSilhouette rasterizes the outline of span at size. This is a full
// off-screen raster pass; callers should cache the result.
func GenerateSilhouette(span Span, size RenderSize) (*Silhouette, error) {
	if !span.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSpan, int(span))
	}
	if err := CheckTarget(size); err != nil {
		return nil, err
	}
	outline := Outline(span, size)
	return &Silhouette{
		Span:    span,
		Size:    size,
		Outline: outline,
		Mask:    fillMask(outline, size),
	}, nil
}

// Outline returns the silhouette outline of span inscribed in size: an arc
// from -4 to 184 degrees closed by its chord for the half circle, the whole
// ellipse for the full circle.
func Outline(span Span, size RenderSize) []r2.Vec {
	f := NewFrame(size, 1)
	var angles []float64
	if span == Half {
		n := int(math.Round((halfArcEnd-halfArcStart)/arcStep)) + 1
		angles = floats.Span(make([]float64, n), halfArcStart, halfArcEnd)
	} else {
		n := int(math.Round(360/arcStep)) + 1
		// The last sample repeats the first one.
		angles = floats.Span(make([]float64, n), 0, 360)[:n-1]
	}
	pts := make([]r2.Vec, len(angles))
	for i, a := range angles {
		pts[i] = f.Point(a, 1)
	}
	return pts
}

func fillMask(outline []r2.Vec, size RenderSize) *image.Alpha {
	r := size.Rect()
	z := vector.NewRasterizer(size.Width, size.Height)
	z.DrawOp = draw.Src
	z.MoveTo(float32(outline[0].X), float32(outline[0].Y))
	for _, p := range outline[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()

	mask := image.NewAlpha(r)
	z.Draw(mask, r, image.Opaque, image.Point{})
	for i, a := range mask.Pix {
		if a >= insideThreshold {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
	return mask
}

// Bounds returns the raster rectangle of the mask.
func (s *Silhouette) Bounds() image.Rectangle {
	return s.Mask.Rect
}

// Contains reports whether the pixel (x, y) belongs to the interactive area.
func (s *Silhouette) Contains(x, y int) bool {
	if !image.Pt(x, y).In(s.Mask.Rect) {
		return false
	}
	return s.Mask.AlphaAt(x, y).A != 0
}

// Extent returns the bounding box of the outline.
func (s *Silhouette) Extent() r2.Box {
	b := r2.Box{Min: s.Outline[0], Max: s.Outline[0]}
	for _, p := range s.Outline[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

package raster

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// brush collects closed polygons of one color and fills their union in a
// single rasterizer pass over their bounding box.
type brush struct {
	polys  [][]r2.Vec
	bounds image.Rectangle
}

// add queues a polygon. Polygons are normalized to the same winding so that
// overlaps never cancel out.
func (b *brush) add(poly []r2.Vec) {
	if len(poly) < 3 {
		return
	}
	if signedArea(poly) < 0 {
		rev := make([]r2.Vec, len(poly))
		for i, p := range poly {
			rev[len(poly)-1-i] = p
		}
		poly = rev
	}
	b.polys = append(b.polys, poly)
	b.bounds = b.bounds.Union(polyBounds(poly))
}

// fill paints the queued polygons onto dst and empties the brush.
func (b *brush) fill(dst xdraw.Image, c color.Color) {
	r := b.bounds.Intersect(dst.Bounds())
	polys := b.polys
	b.polys, b.bounds = nil, image.Rectangle{}
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = xdraw.Over
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

func polyBounds(poly []r2.Vec) image.Rectangle {
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
}

// signedArea is positive for polygons wound clockwise on screen.
func signedArea(poly []r2.Vec) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += r2.Cross(p, q)
	}
	return a / 2
}

// segment returns the rectangle covering the line from a to b with the given
// width and butt caps.
func segment(a, b r2.Vec, width float64) []r2.Vec {
	d := r2.Sub(b, a)
	l := r2.Norm(d)
	if l == 0 {
		return nil
	}
	n := r2.Scale(width/2/l, r2.Vec{X: -d.Y, Y: d.X})
	return []r2.Vec{r2.Add(a, n), r2.Add(b, n), r2.Sub(b, n), r2.Sub(a, n)}
}

// ellipse returns a polygon approximating the ellipse with the given center
// and radii.
func ellipse(c, radius r2.Vec) []r2.Vec {
	n := int(math.Max(12, math.Ceil(math.Max(radius.X, radius.Y)*2)))
	pts := make([]r2.Vec, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r2.Vec{X: c.X + radius.X*math.Cos(t), Y: c.Y + radius.Y*math.Sin(t)}
	}
	return pts
}

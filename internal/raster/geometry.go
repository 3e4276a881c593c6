package raster

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/protractor/internal/protractor"
)

func r2Vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// tickPolygon returns the stroke of a radial tick.
func tickPolygon(f protractor.Frame, t protractor.Tick, width float64) []r2.Vec {
	if t.RadialStart >= t.RadialEnd {
		return nil
	}
	a := float64(t.Angle)
	return segment(f.Point(a, t.RadialStart), f.Point(a, t.RadialEnd), width)
}

// ringSegment returns the band of the given pixel width centered on the arc:
// the outer edge walked forwards and the inner edge walked back.
func ringSegment(f protractor.Frame, a protractor.Arc, width float64) []r2.Vec {
	rx := a.Radius * f.Radius.X
	if rx <= 0 {
		return nil
	}
	dr := width / 2 / rx
	n := int(math.Max(8, math.Ceil((a.End-a.Start)/2)))
	angles := floats.Span(make([]float64, n+1), a.Start, a.End)

	poly := make([]r2.Vec, 0, 2*len(angles))
	for _, deg := range angles {
		poly = append(poly, f.Point(deg, a.Radius+dr))
	}
	for i := len(angles) - 1; i >= 0; i-- {
		poly = append(poly, f.Point(angles[i], math.Max(0, a.Radius-dr)))
	}
	return poly
}

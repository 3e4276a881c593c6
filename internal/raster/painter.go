package raster

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/opentype"

	"github.com/iburimskiy/protractor/internal/protractor"
)

// White is the instrument background.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Painter draws scenes. It is safe for concurrent use.
type Painter struct {
	font       *opentype.Font
	Background color.RGBA
}

// NewPainter returns a painter using the Go Regular font.
func NewPainter() (*Painter, error) {
	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Painter{font: f, Background: White}, nil
}

// Paint draws s onto dst: background, guide arcs, ticks, reference lines,
// center marker and labels, in that order.
func (p *Painter) Paint(dst *image.RGBA, s *protractor.Scene) error {
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(p.Background), image.Point{}, xdraw.Src)

	f := s.Frame
	var b brush

	for _, a := range s.GuideArcs {
		b.add(ringSegment(f, a, f.Pixels(s.Params.ArcWidth)))
	}
	for _, t := range s.Ticks {
		b.add(tickPolygon(f, t, f.Pixels(s.LineWidth(t))))
	}
	b.fill(dst, s.Params.TickColor)

	for _, t := range s.ZeroLines {
		b.add(tickPolygon(f, t, f.Pixels(s.Params.ThickWidth)))
	}
	if s.Params.CenterMarker {
		r := f.Pixels(s.Params.MarkerSize) / 2
		b.add(ellipse(f.Center, r2Vec(r, r)))
	}
	b.fill(dst, s.Params.AccentColor)

	if len(s.Labels) == 0 {
		return nil
	}
	faces := newFaceCache(p.font)
	defer faces.close()
	for _, l := range s.Labels {
		if err := p.paintLabel(dst, faces, f, l); err != nil {
			return err
		}
	}
	return nil
}

func (p *Painter) paintLabel(dst *image.RGBA, faces *faceCache, f protractor.Frame, l protractor.Label) error {
	halo := f.Pixels(l.OutlineWidth) / 2
	pos := float64(l.Angle)

	face, err := faces.face(f.Pixels(l.PrimarySize))
	if err != nil {
		return fmt.Errorf("raster: label face: %w", err)
	}
	stamp(face, strconv.Itoa(l.Primary), l.PrimaryColor, l.OutlineColor, halo).
		place(dst, f.Point(pos, l.Radius), l.Rotation)

	if !l.HasSecondary {
		return nil
	}
	face, err = faces.face(f.Pixels(l.SecondarySize))
	if err != nil {
		return fmt.Errorf("raster: label face: %w", err)
	}
	stamp(face, strconv.Itoa(l.Secondary), l.SecondaryColor, l.OutlineColor, halo).
		place(dst, f.Point(pos, l.SecondaryRadius), l.Rotation)
	return nil
}

// Render allocates a canvas for the scene and paints it.
func (p *Painter) Render(s *protractor.Scene) (*image.RGBA, error) {
	dst, err := NewCanvas(s.Config.Size)
	if err != nil {
		return nil, err
	}
	if err := p.Paint(dst, s); err != nil {
		return nil, err
	}
	return dst, nil
}

// Clip returns a copy of src in which every pixel outside the silhouette is
// fully transparent.
func Clip(src *image.RGBA, sil *protractor.Silhouette) (*image.RGBA, error) {
	r := src.Bounds()
	if r.Size() != sil.Bounds().Size() {
		return nil, fmt.Errorf("raster: silhouette %s does not match canvas %v", sil.Size, r.Size())
	}
	dst := image.NewRGBA(r)
	xdraw.DrawMask(dst, r, src, r.Min, sil.Mask, sil.Bounds().Min, xdraw.Src)
	return dst, nil
}

package raster

import (
	"image"
	"image/color"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// faceCache holds faces for one paint call. opentype faces are not safe for
// concurrent use, so every call gets its own cache.
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(f *opentype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[int]font.Face)}
}

// face returns a face for the given pixel size, rounded to a quarter pixel.
func (fc *faceCache) face(px float64) (font.Face, error) {
	key := int(math.Round(px * 4))
	if key < 4 {
		key = 4
	}
	if f, ok := fc.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fc.font, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	fc.faces[key] = f
	return f, nil
}

func (fc *faceCache) close() {
	for _, f := range fc.faces {
		f.Close()
	}
}

// textStamp is an outlined piece of text ready to be placed.
type textStamp struct {
	img    *image.RGBA
	anchor r2.Vec // top center of the text box inside img
}

// stamp renders s with a halo of the given radius around the glyphs.
func stamp(face font.Face, s string, fg, halo color.Color, haloRadius float64) *textStamp {
	pad := int(math.Ceil(haloRadius)) + 1
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	r := image.Rect(0, 0, w+2*pad, h+2*pad)

	glyphs := image.NewAlpha(r)
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad) + m.Ascent},
	}
	d.DrawString(s)

	img := image.NewRGBA(r)
	if haloRadius > 0 {
		xdraw.DrawMask(img, r, image.NewUniform(halo), image.Point{}, dilate(glyphs, haloRadius), image.Point{}, xdraw.Over)
	}
	xdraw.DrawMask(img, r, image.NewUniform(fg), image.Point{}, glyphs, image.Point{}, xdraw.Over)
	return &textStamp{
		img:    img,
		anchor: r2.Vec{X: float64(pad) + float64(w)/2, Y: float64(pad)},
	}
}

// dilate grows the alpha mask by a disc of the given radius.
func dilate(src *image.Alpha, radius float64) *image.Alpha {
	r := src.Rect
	dst := image.NewAlpha(r)
	k := int(math.Ceil(radius))
	type offset struct{ dx, dy int }
	var disc []offset
	for dy := -k; dy <= k; dy++ {
		for dx := -k; dx <= k; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				disc = append(disc, offset{dx, dy})
			}
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := src.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			for _, o := range disc {
				p := image.Pt(x+o.dx, y+o.dy)
				if !p.In(r) {
					continue
				}
				i := dst.PixOffset(p.X, p.Y)
				if dst.Pix[i] < a {
					dst.Pix[i] = a
				}
			}
		}
	}
	return dst
}

// place composites the stamp onto dst so that its anchor lands on at,
// rotated counterclockwise by deg degrees around the anchor.
func (t *textStamp) place(dst xdraw.Image, at r2.Vec, deg float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	ax, ay := t.anchor.X, t.anchor.Y
	// Screen y grows downwards, so a counterclockwise rotation maps the
	// text's x axis to (cos, -sin).
	s2d := f64.Aff3{
		cos, sin, at.X - cos*ax - sin*ay,
		-sin, cos, at.Y + sin*ax - cos*ay,
	}
	xdraw.BiLinear.Transform(dst, s2d, t.img, t.img.Bounds(), xdraw.Over, nil)
}

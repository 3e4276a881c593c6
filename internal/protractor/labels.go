package protractor

import "image/color"

// Font sizes and radii of the numeric labels, in points and normalized radius.
const (
	primarySize   = 22
	secondarySize = 18
	uprightSize   = 40
	outlineWidth  = 12

	primaryRadius   = 0.89
	secondaryRadius = 0.79
	uprightRadius   = 0.85
)

// Palette holds the label colors.
type Palette struct {
	Neutral color.RGBA
	Accent  color.RGBA
	Outline color.RGBA
}

// DefaultPalette returns black primary labels, blue secondary labels and a
// white outline.
func DefaultPalette() Palette {
	return Palette{
		Neutral: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Accent:  color.RGBA{R: 0, G: 0, B: 255, A: 255},
		Outline: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Label is a pair of numbers printed at a 10 degree position. The primary
// value counts from one end of the scale and the secondary value from the
// other.
type Label struct {
	Angle           int
	Radius          float64
	SecondaryRadius float64
	Rotation        float64 // degrees, counterclockwise

	Primary      int
	Secondary    int
	HasSecondary bool

	PrimaryColor   color.RGBA
	SecondaryColor color.RGBA
	OutlineColor   color.RGBA

	// Sizes in points.
	PrimarySize   float64
	SecondarySize float64
	OutlineWidth  float64
}

// PrimaryValue returns the reading of angle measured from the far end of the
// scale.
func PrimaryValue(angle int, span Span) int {
	if angle == 0 || angle == span.Degrees() {
		return 180
	}
	return floorMod(180-angle, 180)
}

// SecondaryValue returns the reading of angle measured from zero.
func SecondaryValue(angle int) int {
	if angle == 180 {
		return 180
	}
	return floorMod(angle, 180)
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// upright reports whether the label at angle is printed unrotated with a
// single value.
func upright(angle int) bool {
	return angle == 90 || angle == 270
}

// GenerateLabels lays out the numeric labels for span. Minimal style has no
// labels.
func GenerateLabels(span Span, style Style, pal Palette) []Label {
	if !style.Params().ShowLabels {
		return nil
	}
	n := span.Degrees()
	labels := make([]Label, 0, n/10+1)
	for a := 0; a <= n; a += 10 {
		if upright(a) {
			labels = append(labels, Label{
				Angle:        a,
				Radius:       uprightRadius,
				Primary:      90,
				PrimaryColor: pal.Neutral,
				OutlineColor: pal.Outline,
				PrimarySize:  uprightSize,
				OutlineWidth: outlineWidth,
			})
			continue
		}
		labels = append(labels, Label{
			Angle:           a,
			Radius:          primaryRadius,
			SecondaryRadius: secondaryRadius,
			Rotation:        float64(a - 90),
			Primary:         PrimaryValue(a, span),
			Secondary:       SecondaryValue(a),
			HasSecondary:    true,
			PrimaryColor:    pal.Neutral,
			SecondaryColor:  pal.Accent,
			OutlineColor:    pal.Outline,
			PrimarySize:     primarySize,
			SecondarySize:   secondarySize,
			OutlineWidth:    outlineWidth,
		})
	}
	return labels
}

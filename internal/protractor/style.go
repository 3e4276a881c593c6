package protractor

import (
	"fmt"
	"image/color"
	"strings"
)

// Style selects how much of the scale is drawn.
type Style int

const (
	// Detailed draws scale rings, guide arcs and dual numeric labels.
	Detailed Style = iota
	// Minimal draws the tick ring and a center marker only.
	Minimal
)

// ParseStyle converts a style name ("detailed" or "minimal") into a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "detailed", "":
		return Detailed, nil
	case "minimal":
		return Minimal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStyle, name)
}

func (s Style) Valid() bool {
	return s == Detailed || s == Minimal
}

// Toggle switches between the two styles.
func (s Style) Toggle() Style {
	if s == Detailed {
		return Minimal
	}
	return Detailed
}

func (s Style) String() string {
	switch s {
	case Detailed:
		return "detailed"
	case Minimal:
		return "minimal"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// RingDepths holds the normalized radius at which ticks of each weight start.
// It is indexed by Weight.
type RingDepths [4]float64

// StyleParams is the parameter set implied by a Style.
type StyleParams struct {
	RingDepths   RingDepths
	GuideArcs    []float64 // normalized radii of arcs drawn across the span
	ShowLabels   bool
	CenterMarker bool

	// Line widths in points.
	ThickWidth float64
	ThinWidth  float64
	ArcWidth   float64
	MarkerSize float64

	TickColor   color.RGBA
	AccentColor color.RGBA
}

var (
	black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Params returns a fresh copy of the parameters for s.
func (s Style) Params() StyleParams {
	p := StyleParams{
		ThickWidth:  3,
		ThinWidth:   1.5,
		ArcWidth:    2,
		MarkerSize:  3,
		TickColor:   black,
		AccentColor: red,
	}
	if s == Minimal {
		p.RingDepths = RingDepths{0.96, 0.96, 0.93, 0.93}
		p.CenterMarker = true
		return p
	}
	p.RingDepths = RingDepths{0.96, 0.93, 0.2, 0}
	p.GuideArcs = []float64{0.815, 0.7, 0.2}
	p.ShowLabels = true
	return p
}

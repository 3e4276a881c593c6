package protractor

// Weight classifies a tick by angular significance.
type Weight int

const (
	Major Weight = iota // every degree
	Minor               // multiples of 5
	Decile              // multiples of 10
	Cardinal            // multiples of 90
)

func (w Weight) String() string {
	switch w {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Decile:
		return "decile"
	case Cardinal:
		return "cardinal"
	}
	return "unknown"
}

// zeroLineStart is the inner radius of the accent reference ticks.
const zeroLineStart = 0.9

// Tick is a radial scale mark.
type Tick struct {
	Angle       int
	RadialStart float64
	RadialEnd   float64
	Weight      Weight
}

// Thick reports whether the tick is stroked with the heavy line width.
func (t Tick) Thick() bool {
	return t.Angle%5 == 0
}

// WeightOf classifies an angle. The first matching rule wins.
func WeightOf(angle int) Weight {
	switch {
	case angle%90 == 0:
		return Cardinal
	case angle%10 == 0:
		return Decile
	case angle%5 == 0:
		return Minor
	}
	return Major
}

// GenerateTicks returns one tick per integer degree from 0 to span inclusive.
func GenerateTicks(span Span, depths RingDepths) []Tick {
	n := span.Degrees()
	ticks := make([]Tick, 0, n+1)
	for a := 0; a <= n; a++ {
		w := WeightOf(a)
		ticks = append(ticks, Tick{
			Angle:       a,
			RadialStart: depths[w],
			RadialEnd:   1,
			Weight:      w,
		})
	}
	return ticks
}

// ZeroLines returns the accent ticks marking the reference edge at 0 and 180
// degrees. They are drawn for every span and style.
func ZeroLines() []Tick {
	return []Tick{
		{Angle: 0, RadialStart: zeroLineStart, RadialEnd: 1, Weight: Cardinal},
		{Angle: 180, RadialStart: zeroLineStart, RadialEnd: 1, Weight: Cardinal},
	}
}

package protractor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpan is returned for angular spans other than 180 and 360 degrees.
	ErrInvalidSpan = errors.New("protractor: invalid angular span")

	// ErrInvalidStyle is returned for unknown style names or values.
	ErrInvalidStyle = errors.New("protractor: invalid style")

	// ErrRasterTarget is returned when a raster surface cannot be allocated.
	ErrRasterTarget = errors.New("protractor: cannot allocate raster target")
)

// Span is the angular extent of the instrument in degrees.
type Span int

const (
	Half Span = 180
	Full Span = 360
)

// ParseSpan converts a degree count into a Span.
func ParseSpan(deg int) (Span, error) {
	s := Span(deg)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpan, deg)
	}
	return s, nil
}

func (s Span) Valid() bool {
	return s == Half || s == Full
}

// Degrees returns the span as an integer number of degrees.
func (s Span) Degrees() int {
	return int(s)
}

// Toggle switches between the half and the full circle.
func (s Span) Toggle() Span {
	if s == Full {
		return Half
	}
	return Full
}

func (s Span) String() string {
	switch s {
	case Half:
		return "half"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Span(%d)", int(s))
}

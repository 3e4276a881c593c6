package game

import "image"

// dragState accumulates the cursor offset of a window drag. The anchor is
// the cursor position inside the window at press time; as the window follows
// the cursor the relative position returns to the anchor.
type dragState struct {
	active bool
	anchor image.Point
}

// press starts a drag if the cursor is on the instrument.
func (d *dragState) press(at image.Point, inside bool) bool {
	d.active = inside
	if inside {
		d.anchor = at
	}
	return d.active
}

// move returns how far the window has to move to keep the anchor under the
// cursor.
func (d *dragState) move(at image.Point) image.Point {
	if !d.active {
		return image.Point{}
	}
	return at.Sub(d.anchor)
}

func (d *dragState) release() {
	d.active = false
	d.anchor = image.Point{}
}

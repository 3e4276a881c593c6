package game

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/protractor/internal/protractor"
)

// visualTap receives silhouettes from the render pipeline, which may run on
// another goroutine, and lets the game loop hit-test and outline the current
// window shape.
type visualTap struct {
	mu   sync.RWMutex
	mask *protractor.Silhouette
}

func newVisualTap() *visualTap {
	return &visualTap{}
}

// SetMask implements overlay.Masker.
func (t *visualTap) SetMask(sil *protractor.Silhouette) error {
	t.mu.Lock()
	t.mask = sil
	t.mu.Unlock()
	return nil
}

// contains reports whether window pixel (x, y) is part of the instrument.
func (t *visualTap) contains(x, y int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mask != nil && t.mask.Contains(x, y)
}

// snapshot returns every n-th outline point of the current silhouette, closed
// back onto the first point.
func (t *visualTap) snapshot(n int) []r2.Vec {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.mask == nil || len(t.mask.Outline) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	src := t.mask.Outline
	out := make([]r2.Vec, 0, len(src)/n+2)
	for i := 0; i < len(src); i += n {
		out = append(out, src[i])
	}
	if last := src[len(src)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return append(out, src[0])
}

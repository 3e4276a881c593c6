// Package raster paints protractor scenes onto CPU images.
package raster

import (
	"fmt"
	"image"

	"github.com/iburimskiy/protractor/internal/protractor"
)

// NewCanvas allocates the backing surface for a render pass. Allocation
// failures are returned as protractor.ErrRasterTarget; nothing downstream can
// proceed without a surface.
func NewCanvas(size protractor.RenderSize) (img *image.RGBA, err error) {
	if err := protractor.CheckTarget(size); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", protractor.ErrRasterTarget, r)
		}
	}()
	return image.NewRGBA(size.Rect()), nil
}

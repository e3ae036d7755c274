package imgproc

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Watermark layout constants: the mark is fitted into a box sized relative
// to the shorter image side and inset from the chosen corner.
const (
	watermarkSizeRatio = 0.1
	watermarkMargin    = 10
)

// applyWatermark composites the watermark image over img at the requested
// position with the requested opacity.
func applyWatermark(img image.Image, ops TransformOps) (image.Image, error) {
	mark, err := imaging.Open(ops.Watermark)
	if err != nil {
		return nil, fmt.Errorf("open watermark %s: %w", ops.Watermark, err)
	}

	bounds := img.Bounds()
	box := int(float64(min(bounds.Dx(), bounds.Dy())) * watermarkSizeRatio)
	if box < 1 {
		box = 1
	}
	mark = imaging.Fit(mark, box, box, imaging.Lanczos)

	opacity := ops.WatermarkOpacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.5
	}

	pos := watermarkAnchor(ops.WatermarkPosition, bounds, mark.Bounds())
	return imaging.Overlay(img, mark, pos, opacity), nil
}

// watermarkAnchor computes the top-left paste point for a named position.
// Unknown names fall back to bottom-right.
func watermarkAnchor(position string, img, mark image.Rectangle) image.Point {
	iw, ih := img.Dx(), img.Dy()
	mw, mh := mark.Dx(), mark.Dy()

	switch position {
	case "top-left":
		return image.Pt(watermarkMargin, watermarkMargin)
	case "top-right":
		return image.Pt(iw-mw-watermarkMargin, watermarkMargin)
	case "bottom-left":
		return image.Pt(watermarkMargin, ih-mh-watermarkMargin)
	case "center":
		return image.Pt((iw-mw)/2, (ih-mh)/2)
	default: // bottom-right
		return image.Pt(iw-mw-watermarkMargin, ih-mh-watermarkMargin)
	}
}

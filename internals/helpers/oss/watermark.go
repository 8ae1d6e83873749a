package helper

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Watermark anchor positions accepted by space settings.
const (
	WatermarkTopLeft     = "top-left"
	WatermarkTopRight    = "top-right"
	WatermarkBottomLeft  = "bottom-left"
	WatermarkBottomRight = "bottom-right"
)

func ValidWatermarkPosition(pos string) bool {
	switch pos {
	case WatermarkTopLeft, WatermarkTopRight, WatermarkBottomLeft, WatermarkBottomRight:
		return true
	}
	return false
}

const watermarkMargin = 16

// ApplyWatermark composes mark onto base at the given anchor. The mark is
// scaled down to at most a fifth of the base width before overlay.
func ApplyWatermark(base, mark image.Image, position string, opacity float64) (image.Image, error) {
	if !ValidWatermarkPosition(position) {
		return nil, fmt.Errorf("invalid watermark position: %q", position)
	}
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	bb := base.Bounds()
	maxMarkW := bb.Dx() / 5
	if mark.Bounds().Dx() > maxMarkW {
		mark = imaging.Resize(mark, maxMarkW, 0, imaging.Lanczos)
	}
	mb := mark.Bounds()

	var pt image.Point
	switch position {
	case WatermarkTopLeft:
		pt = image.Pt(watermarkMargin, watermarkMargin)
	case WatermarkTopRight:
		pt = image.Pt(bb.Dx()-mb.Dx()-watermarkMargin, watermarkMargin)
	case WatermarkBottomLeft:
		pt = image.Pt(watermarkMargin, bb.Dy()-mb.Dy()-watermarkMargin)
	case WatermarkBottomRight:
		pt = image.Pt(bb.Dx()-mb.Dx()-watermarkMargin, bb.Dy()-mb.Dy()-watermarkMargin)
	}

	return imaging.Overlay(base, mark, pt, opacity), nil
}

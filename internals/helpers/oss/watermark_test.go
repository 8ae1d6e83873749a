package helper

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0x8000 && g < 0x4000 && b < 0x4000
}

func TestApplyWatermarkRejectsUnknownPosition(t *testing.T) {
	base := solidImage(500, 500, color.RGBA{A: 255})
	mark := solidImage(50, 50, color.RGBA{R: 255, A: 255})

	_, err := ApplyWatermark(base, mark, "center", 1)
	require.Error(t, err)

	_, err = ApplyWatermark(base, mark, "", 1)
	require.Error(t, err)
}

func TestApplyWatermarkAnchors(t *testing.T) {
	// black base, red mark; the mark must land in the anchored corner only
	base := solidImage(500, 500, color.RGBA{A: 255})
	mark := solidImage(50, 50, color.RGBA{R: 255, A: 255})

	cases := map[string]image.Point{
		WatermarkTopLeft:     image.Pt(watermarkMargin+1, watermarkMargin+1),
		WatermarkTopRight:    image.Pt(500-watermarkMargin-2, watermarkMargin+1),
		WatermarkBottomLeft:  image.Pt(watermarkMargin+1, 500-watermarkMargin-2),
		WatermarkBottomRight: image.Pt(500-watermarkMargin-2, 500-watermarkMargin-2),
	}
	for pos, at := range cases {
		out, err := ApplyWatermark(base, mark, pos, 1)
		require.NoError(t, err, "position %s", pos)

		assert.True(t, isRed(out.At(at.X, at.Y)), "position %s: mark missing at %v", pos, at)
		assert.False(t, isRed(out.At(250, 250)), "position %s: mark bled into the center", pos)
	}
}

func TestApplyWatermarkScalesOversizedMark(t *testing.T) {
	base := solidImage(500, 500, color.RGBA{A: 255})
	mark := solidImage(400, 400, color.RGBA{R: 255, A: 255})

	out, err := ApplyWatermark(base, mark, WatermarkTopLeft, 1)
	require.NoError(t, err)

	// cap is a fifth of the base width, so the mark cannot reach past
	// margin + 100 on either axis
	assert.True(t, isRed(out.At(watermarkMargin+1, watermarkMargin+1)))
	assert.False(t, isRed(out.At(watermarkMargin+150, watermarkMargin+150)))
}

func TestApplyWatermarkKeepsBaseDimensions(t *testing.T) {
	base := solidImage(320, 240, color.RGBA{A: 255})
	mark := solidImage(10, 10, color.RGBA{R: 255, A: 255})

	out, err := ApplyWatermark(base, mark, WatermarkBottomRight, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 320, out.Bounds().Dx())
	assert.Equal(t, 240, out.Bounds().Dy())
}

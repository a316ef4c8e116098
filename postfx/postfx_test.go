package postfx

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.RGBA) *image.RGBA {

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	return img
}

func TestApplyWithoutOptionsIsIdentity(t *testing.T) {

	img := solid(3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	out := Apply(img, Options{})
	assert.Equal(t, img.Pix, out.Pix)

	// The input is never modified
	out.Pix[0] = 99
	assert.Equal(t, uint8(10), img.Pix[0])
}

func TestGrayscale(t *testing.T) {

	tests := []struct {
		in   color.RGBA
		want uint8
	}{
		{in: color.RGBA{R: 255, G: 255, B: 255, A: 255}, want: 255},
		{in: color.RGBA{A: 255}, want: 0},
		{in: color.RGBA{R: 255, A: 255}, want: 54},
		{in: color.RGBA{G: 255, A: 255}, want: 182},
		{in: color.RGBA{B: 255, A: 255}, want: 18},
	}

	for _, tt := range tests {

		out := Apply(solid(1, 1, tt.in), Options{Grayscale: true})
		assert.Equal(t, []uint8{tt.want, tt.want, tt.want, 255}, out.Pix, "input %v", tt.in)
	}
}

func TestEdgeDetectionOfFlatImageIsBlack(t *testing.T) {

	out := Apply(solid(4, 4, color.RGBA{R: 120, G: 80, B: 40, A: 255}), Options{EdgeDetection: true})

	for i := 0; i < len(out.Pix); i += 4 {
		assert.Equal(t, []uint8{0, 0, 0, 255}, out.Pix[i:i+4])
	}
}

func TestEdgeDetectionOfSinglePixel(t *testing.T) {

	img := solid(5, 5, color.RGBA{A: 255})
	img.SetRGBA(2, 2, color.RGBA{R: 20, G: 20, B: 20, A: 255})

	out := Apply(img, Options{EdgeDetection: true})

	// The lit pixel is darker than its surroundings, so it clamps to black
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(2, 2))

	// Its neighbours see it once through the kernel
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 20, A: 255}, out.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 20, A: 255}, out.RGBAAt(3, 2))

	// Pixels further away don't
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(0, 0))
}

func TestEdgeThenGrayscale(t *testing.T) {

	img := solid(3, 3, color.RGBA{A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 100, A: 255})

	out := Apply(img, Options{EdgeDetection: true, Grayscale: true})

	// Neighbour gets (100,0,0) from the edge kernel, then luma 0.2126*100
	assert.Equal(t, color.RGBA{R: 21, G: 21, B: 21, A: 255}, out.RGBAAt(0, 0))
}

// Package postfx is the CPU version of the filter shader. Screenshots go through it, and
// it is what the filter pass output is checked against
package postfx

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
)

type Options struct {
	Grayscale     bool
	EdgeDetection bool
}

// Luma weights, same as the filter shader
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

var edgeKernel = func() *convolution.Kernel {

	k := convolution.NewKernel(3, 3)
	for i := 0; i < len(k.Matrix); i++ {
		k.Matrix[i] = 1
	}
	k.Matrix[4] = -8

	return k
}()

// Apply returns a filtered copy of img. Edge detection runs first, then grayscale.
// Sampling past the image edge repeats the edge pixel, like the clamp-to-edge color target.
// With both options off the result equals the input
func Apply(img image.Image, opts Options) *image.RGBA {

	out := clone.AsRGBA(img)

	if opts.EdgeDetection {
		out = convolution.Convolve(out, edgeKernel, &convolution.Options{Wrap: false, KeepAlpha: true})
	}

	if opts.Grayscale {
		grayscale(out)
	}

	return out
}

func grayscale(img *image.RGBA) {

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {

		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {

			l := lumaR*float32(row[i]) + lumaG*float32(row[i+1]) + lumaB*float32(row[i+2])
			v := uint8(min(l+0.5, 255))
			row[i], row[i+1], row[i+2] = v, v, v
		}
	}
}

package gfx

import (
	"image"
	"image/color"
	"math"
)

// BlobSigma is the Gaussian spread of the blob sprite in [-1,1] coordinates.
const BlobSigma = 0.25

func gaussian2D(x, y, a, ox, oy, sx, sy float64) float64 {
	dx, dy := x-ox, y-oy
	return a * math.Exp(-(dx*dx/(2*sx*sx) + dy*dy/(2*sy*sy)))
}

// GaussianBlob returns a white size x size sprite whose alpha falls off as a
// 2D Gaussian from the centre.
func GaussianBlob(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for py := range size {
		for px := range size {
			fx := float64(px)/float64(size)*2 - 1
			fy := float64(py)/float64(size)*2 - 1
			a := gaussian2D(fx, fy, 1, 0, 0, BlobSigma, BlobSigma)
			img.SetNRGBA(px, py, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(a * 255))})
		}
	}
	return img
}

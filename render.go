package rxinggo

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ImageScaled renders the matrix with each module as an n x n block of
// pixels, dark modules black and light modules white.
func (bm *BitMatrix) ImageScaled(n int) *image.Gray {
	if n < 1 {
		n = 1
	}
	return bm.scale(n, n)
}

func (bm *BitMatrix) scale(nx, ny int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, bm.width*nx, bm.height*ny))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if !bm.Get(x, y) {
				continue
			}
			for dy := 0; dy < ny; dy++ {
				off := img.PixOffset(x*nx, y*ny+dy)
				for dx := 0; dx < nx; dx++ {
					img.Pix[off+dx] = 0
				}
			}
		}
	}
	return img
}

// Image renders the matrix at its requested render size. Modules are scaled
// by the largest integral factor that fits and the result is centred on a
// white canvas no smaller than the matrix itself. A single-row matrix (a
// linear symbology) is stretched to the full requested height.
func (bm *BitMatrix) Image() image.Image {
	outW, outH := bm.renderWidth, bm.renderHeight
	if outW < bm.width {
		outW = bm.width
	}
	if outH < bm.height {
		outH = bm.height
	}
	nx, ny := outW/bm.width, outH/bm.height
	if bm.height > 1 {
		if ny < nx {
			nx = ny
		}
		ny = nx
	}
	scaled := bm.scale(nx, ny)
	if scaled.Rect.Dx() == outW && scaled.Rect.Dy() == outH {
		return scaled
	}
	left := (outW - scaled.Rect.Dx()) / 2
	top := (outH - scaled.Rect.Dy()) / 2
	canvas := imaging.New(outW, outH, color.White)
	return imaging.Paste(canvas, scaled, image.Pt(left, top))
}

// Pixels returns the matrix as a row-major greyscale buffer with each module
// scaled to n x n pixels (0 dark, 255 light).
func (bm *BitMatrix) Pixels(n int) []byte {
	return bm.ImageScaled(n).Pix
}

// Save writes Image() to path. The container format follows the file
// extension (png, jpg, gif, tif, bmp).
func (bm *BitMatrix) Save(path string) error {
	if err := imaging.Save(bm.Image(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

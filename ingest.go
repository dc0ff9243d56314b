package rxinggo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ChannelLayout describes how pixels are packed in a raw buffer. Its value is
// the number of bytes per pixel.
type ChannelLayout int

const (
	LayoutGray ChannelLayout = 1
	LayoutRGB  ChannelLayout = 3
	LayoutRGBA ChannelLayout = 4
)

func (l ChannelLayout) String() string {
	switch l {
	case LayoutGray:
		return "gray"
	case LayoutRGB:
		return "rgb"
	case LayoutRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("%d-channel", int(l))
	}
}

// luma reduces 8-bit RGB to luminance with BT.601 weights in 10-bit fixed
// point.
func luma(r, g, b uint32) byte {
	return byte((306*r + 601*g + 117*b + 0x200) >> 10)
}

// FromFile decodes the image file at path into a LuminanceSource.
func FromFile(path string) (LuminanceSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindImageNotFound, nil, "%s: no such file", path)
		}
		return nil, newError(KindImageNotFound, err, "%s", path)
	}
	if info.IsDir() {
		return nil, newError(KindImageNotFound, nil, "%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindImageNotFound, err, "%s", path)
	}
	return FromBytes(data)
}

// FromBytes decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP)
// into a LuminanceSource. JPEG EXIF orientation is applied.
func FromBytes(data []byte) (LuminanceSource, error) {
	if len(data) == 0 {
		return nil, newError(KindImageDecode, nil, "empty image buffer")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, newError(KindImageDecode, err, "unrecognised image container")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, newError(KindUnsupportedImageFormat, nil, "empty %s image", format)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, newError(KindImageDecode, err, "decode %s", format)
	}
	return FromImage(img)
}

// FromImage converts a decoded image into a LuminanceSource. Fully
// transparent pixels are white.
func FromImage(img image.Image) (LuminanceSource, error) {
	if img == nil {
		return nil, newError(KindUnsupportedImageFormat, nil, "nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, newError(KindUnsupportedImageFormat, nil, "empty image %dx%d", w, h)
	}
	lum := make([]byte, w*h)

	switch m := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := m.PixOffset(b.Min.X, b.Min.Y+y)
			copy(lum[y*w:(y+1)*w], m.Pix[off:off+w])
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			off := m.YOffset(b.Min.X, b.Min.Y+y)
			copy(lum[y*w:(y+1)*w], m.Y[off:off+w])
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			reduceAlphaRow(lum[y*w:(y+1)*w], m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):], false)
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			reduceAlphaRow(lum[y*w:(y+1)*w], m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):], true)
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				if c.A == 0 {
					lum[y*w+x] = 0xFF
					continue
				}
				lum[y*w+x] = luma(uint32(c.R), uint32(c.G), uint32(c.B))
			}
		}
	}
	return newPlaneSource(lum, w, h), nil
}

// FromPixels converts a raw pixel buffer into a LuminanceSource. Grey pixels
// pass through, RGB and RGBA are reduced with fixed weights and alpha is
// ignored. The input buffer is not retained.
func FromPixels(pix []byte, width, height int, layout ChannelLayout) (LuminanceSource, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(KindUnsupportedImageFormat, nil, "empty image %dx%d", width, height)
	}
	switch layout {
	case LayoutGray, LayoutRGB, LayoutRGBA:
	default:
		return nil, newError(KindUnsupportedImageFormat, nil, "unsupported channel layout %s", layout)
	}
	n := int(layout)
	if len(pix) != width*height*n {
		return nil, newError(KindUnsupportedImageFormat, nil,
			"pixel buffer holds %d bytes, want %d for %dx%d %s", len(pix), width*height*n, width, height, layout)
	}
	if layout == LayoutGray {
		return NewLuminanceSource(pix, width, height)
	}
	lum := make([]byte, width*height)
	for y := 0; y < height; y++ {
		reduceRow(lum[y*width:(y+1)*width], pix[y*width*n:], n)
	}
	return newPlaneSource(lum, width, height), nil
}

func reduceRow(dst, src []byte, channels int) {
	for x := range dst {
		p := src[x*channels:]
		dst[x] = luma(uint32(p[0]), uint32(p[1]), uint32(p[2]))
	}
}

// reduceAlphaRow converts 4-byte RGBA pixels. Fully transparent pixels read
// as white; premultiplied colour is divided by alpha first.
func reduceAlphaRow(dst, src []byte, premultiplied bool) {
	for x := range dst {
		p := src[x*4:]
		a := uint32(p[3])
		if a == 0 {
			dst[x] = 0xFF
			continue
		}
		r, g, b := uint32(p[0]), uint32(p[1]), uint32(p[2])
		if premultiplied && a != 0xFF {
			r = (r*0xFF + a/2) / a
			g = (g*0xFF + a/2) / a
			b = (b*0xFF + a/2) / a
		}
		dst[x] = luma(r, g, b)
	}
}

package rxinggo

import "fmt"

// LuminanceSource provides access to greyscale luminance values for an image.
// Values run from 0 (black) to 255 (white). Sources are immutable; Crop,
// RotateCounterClockwise, Rotate180 and Invert return new views over the same
// pixel storage.
type LuminanceSource interface {
	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int

	// Luminance returns the value at (x, y). Coordinates outside
	// [0,Width)x[0,Height) panic.
	Luminance(x, y int) byte

	// Row returns a row of luminance data. If row is large enough it is reused.
	Row(y int, row []byte) []byte

	// Matrix returns a copy of the entire luminance matrix, row-major.
	Matrix() []byte

	// Crop returns a view of the given rectangle. The rectangle must lie
	// within the source.
	Crop(left, top, width, height int) LuminanceSource

	// RotateCounterClockwise returns a view rotated 90 degrees counterclockwise.
	RotateCounterClockwise() LuminanceSource

	// Rotate180 returns a view rotated 180 degrees.
	Rotate180() LuminanceSource

	// Invert returns a view with every luminance value inverted.
	Invert() LuminanceSource
}

// planeSource is a view over a row-major luminance plane. A view pixel (x, y)
// maps to plane coordinates through an integer affine transform:
//
//	px = ox + ax*x + bx*y
//	py = oy + ay*x + by*y
//
// Crops shift the origin and rotations permute the coefficients, so no view
// ever copies the plane.
type planeSource struct {
	pix    []byte
	stride int

	width, height int
	ox, ax, bx    int
	oy, ay, by    int
	inverted      bool
}

// newPlaneSource wraps pix, which must hold width*height bytes and is not
// copied. Callers hand over ownership.
func newPlaneSource(pix []byte, width, height int) *planeSource {
	return &planeSource{
		pix:    pix,
		stride: width,
		width:  width,
		height: height,
		ax:     1,
		by:     1,
	}
}

// NewLuminanceSource returns a source over a copy of a row-major greyscale
// buffer of width*height bytes.
func NewLuminanceSource(luminances []byte, width, height int) (LuminanceSource, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(KindUnsupportedImageFormat, nil, "empty image %dx%d", width, height)
	}
	if len(luminances) != width*height {
		return nil, newError(KindUnsupportedImageFormat, nil,
			"luminance buffer holds %d bytes, want %d for %dx%d", len(luminances), width*height, width, height)
	}
	pix := make([]byte, len(luminances))
	copy(pix, luminances)
	return newPlaneSource(pix, width, height), nil
}

func (s *planeSource) Width() int  { return s.width }
func (s *planeSource) Height() int { return s.height }

func (s *planeSource) Luminance(x, y int) byte {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		panic(fmt.Sprintf("luminance: (%d,%d) outside %dx%d", x, y, s.width, s.height))
	}
	px := s.ox + s.ax*x + s.bx*y
	py := s.oy + s.ay*x + s.by*y
	v := s.pix[py*s.stride+px]
	if s.inverted {
		return 255 - v
	}
	return v
}

func (s *planeSource) identity() bool {
	return s.ax == 1 && s.bx == 0 && s.ay == 0 && s.by == 1 && !s.inverted
}

func (s *planeSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		panic(fmt.Sprintf("luminance: row %d outside height %d", y, s.height))
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	if s.identity() {
		offset := (s.oy+y)*s.stride + s.ox
		copy(row, s.pix[offset:offset+s.width])
		return row
	}
	for x := 0; x < s.width; x++ {
		row[x] = s.Luminance(x, y)
	}
	return row
}

func (s *planeSource) Matrix() []byte {
	out := make([]byte, s.width*s.height)
	for y := 0; y < s.height; y++ {
		s.Row(y, out[y*s.width:(y+1)*s.width])
	}
	return out
}

func (s *planeSource) Crop(left, top, width, height int) LuminanceSource {
	if left < 0 || top < 0 || width < 1 || height < 1 || left+width > s.width || top+height > s.height {
		panic(fmt.Sprintf("luminance: crop %d,%d %dx%d outside %dx%d", left, top, width, height, s.width, s.height))
	}
	v := *s
	v.ox = s.ox + s.ax*left + s.bx*top
	v.oy = s.oy + s.ay*left + s.by*top
	v.width = width
	v.height = height
	return &v
}

// RotateCounterClockwise maps old (x, y) to new (y, width-1-x), so new
// (nx, ny) reads old (width-1-ny, nx).
func (s *planeSource) RotateCounterClockwise() LuminanceSource {
	v := *s
	v.width, v.height = s.height, s.width
	v.ox = s.ox + s.ax*(s.width-1)
	v.oy = s.oy + s.ay*(s.width-1)
	v.ax, v.bx = s.bx, -s.ax
	v.ay, v.by = s.by, -s.ay
	return &v
}

func (s *planeSource) Rotate180() LuminanceSource {
	v := *s
	v.ox = s.ox + s.ax*(s.width-1) + s.bx*(s.height-1)
	v.oy = s.oy + s.ay*(s.width-1) + s.by*(s.height-1)
	v.ax, v.bx = -s.ax, -s.bx
	v.ay, v.by = -s.ay, -s.by
	return &v
}

func (s *planeSource) Invert() LuminanceSource {
	v := *s
	v.inverted = !s.inverted
	return &v
}

func (s *planeSource) String() string {
	return fmt.Sprintf("LuminanceSource(%dx%d)", s.width, s.height)
}

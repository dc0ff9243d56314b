package rxinggo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSource returns a 3x2 source:
//
//	0 1 2
//	3 4 5
func newTestSource(t *testing.T) LuminanceSource {
	t.Helper()
	src, err := NewLuminanceSource([]byte{0, 1, 2, 3, 4, 5}, 3, 2)
	require.NoError(t, err)
	return src
}

func TestNewLuminanceSource(t *testing.T) {
	buf := []byte{10, 20, 30, 40}
	src, err := NewLuminanceSource(buf, 2, 2)
	require.NoError(t, err)
	buf[0] = 99
	assert.Equal(t, byte(10), src.Luminance(0, 0), "input buffer must be copied")

	_, err = NewLuminanceSource(buf, 3, 2)
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
	_, err = NewLuminanceSource(nil, 0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
}

func TestLuminanceRowAndMatrix(t *testing.T) {
	src := newTestSource(t)
	assert.Equal(t, 3, src.Width())
	assert.Equal(t, 2, src.Height())
	assert.Equal(t, []byte{3, 4, 5}, src.Row(1, nil))

	reuse := make([]byte, 8)
	row := src.Row(0, reuse)
	assert.Equal(t, []byte{0, 1, 2}, row[:3])
	assert.Same(t, &reuse[0], &row[0])

	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5}, src.Matrix())
}

func TestLuminanceOutOfRangePanics(t *testing.T) {
	src := newTestSource(t)
	assert.Panics(t, func() { src.Luminance(3, 0) })
	assert.Panics(t, func() { src.Luminance(0, -1) })
	assert.Panics(t, func() { src.Row(2, nil) })
	assert.Panics(t, func() { src.Crop(1, 0, 3, 1) })
}

func TestLuminanceViews(t *testing.T) {
	src := newTestSource(t)

	tests := []struct {
		name   string
		view   LuminanceSource
		width  int
		matrix []byte
	}{
		{"crop", src.Crop(1, 0, 2, 2), 2, []byte{1, 2, 4, 5}},
		{"rotate180", src.Rotate180(), 3, []byte{5, 4, 3, 2, 1, 0}},
		{"rotateCCW", src.RotateCounterClockwise(), 2, []byte{2, 5, 1, 4, 0, 3}},
		{"invert", src.Invert(), 3, []byte{255, 254, 253, 252, 251, 250}},
		{"crop of rotation", src.Rotate180().Crop(0, 1, 2, 1), 2, []byte{2, 1}},
		{"rotation of crop", src.Crop(1, 0, 2, 2).Rotate180(), 2, []byte{5, 4, 2, 1}},
		{"four quarter turns", src.RotateCounterClockwise().RotateCounterClockwise().
			RotateCounterClockwise().RotateCounterClockwise(), 3, []byte{0, 1, 2, 3, 4, 5}},
		{"double inversion", src.Invert().Invert(), 3, []byte{0, 1, 2, 3, 4, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.width, tc.view.Width())
			assert.Equal(t, len(tc.matrix)/tc.width, tc.view.Height())
			assert.Equal(t, tc.matrix, tc.view.Matrix())
		})
	}

	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5}, src.Matrix(), "views must not change the source")
}

func TestRotate180TwiceIsIdentity(t *testing.T) {
	src := newTestSource(t)
	assert.Equal(t, src.Matrix(), src.Rotate180().Rotate180().Matrix())
	assert.Equal(t, src.Rotate180().Matrix(),
		src.RotateCounterClockwise().RotateCounterClockwise().Matrix())
}

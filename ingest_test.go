package rxinggo

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	assert.Equal(t, byte(0), luma(0, 0, 0))
	assert.Equal(t, byte(255), luma(255, 255, 255))
	assert.Equal(t, byte(76), luma(255, 0, 0))
	assert.Equal(t, byte(150), luma(0, 255, 0))
	assert.Equal(t, byte(29), luma(0, 0, 255))
}

func TestFromPixels(t *testing.T) {
	gray, err := FromPixels([]byte{0, 128, 255, 7}, 2, 2, LayoutGray)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 128, 255, 7}, gray.Matrix())

	rgb, err := FromPixels([]byte{255, 0, 0, 255, 255, 255}, 2, 1, LayoutRGB)
	require.NoError(t, err)
	assert.Equal(t, []byte{76, 255}, rgb.Matrix())

	rgba := []byte{0, 255, 0, 0, 0, 0, 0, 255}
	src, err := FromPixels(rgba, 1, 2, LayoutRGBA)
	require.NoError(t, err)
	assert.Equal(t, []byte{150, 0}, src.Matrix(), "alpha is ignored")
	assert.Equal(t, []byte{0, 255, 0, 0, 0, 0, 0, 255}, rgba, "input must not be modified")
}

func TestFromPixelsErrors(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		w, h   int
		layout ChannelLayout
	}{
		{"two channels", make([]byte, 8), 2, 2, ChannelLayout(2)},
		{"short buffer", make([]byte, 5), 2, 1, LayoutRGB},
		{"zero width", nil, 0, 4, LayoutGray},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromPixels(tc.pix, tc.w, tc.h, tc.layout)
			assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
		})
	}
}

func TestFromImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.Set(0, 0, color.NRGBA{R: 255, A: 255})
	nrgba.Set(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix = []byte{9, 200}

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 1), image.YCbCrSubsampleRatio444)
	ycc.Y = []byte{17, 42}

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White})
	paletted.SetColorIndex(1, 0, 1)

	tests := []struct {
		name string
		img  image.Image
		want []byte
	}{
		{"nrgba", nrgba, []byte{76, 255}},
		{"gray", g, []byte{9, 200}},
		{"ycbcr", ycc, []byte{17, 42}},
		{"paletted", paletted, []byte{0, 255}},
		{"sub image", g.SubImage(image.Rect(1, 0, 2, 1)), []byte{200}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := FromImage(tc.img)
			require.NoError(t, err)
			assert.Equal(t, tc.want, src.Matrix())
		})
	}

	_, err := FromImage(nil)
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
	_, err = FromImage(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
}

func TestFromImageTransparency(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	nrgba.Set(0, 0, color.NRGBA{A: 0})
	nrgba.Set(1, 0, color.NRGBA{A: 255})
	nrgba.Set(2, 0, color.NRGBA{R: 255, A: 128})

	// RGBA is premultiplied: half-transparent red is stored as R=128.
	rgba := image.NewRGBA(image.Rect(0, 0, 3, 1))
	rgba.SetRGBA(0, 0, color.RGBA{})
	rgba.SetRGBA(1, 0, color.RGBA{A: 255})
	rgba.SetRGBA(2, 0, color.RGBA{R: 128, A: 128})

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.Transparent})
	paletted.SetColorIndex(1, 0, 1)

	tests := []struct {
		name string
		img  image.Image
		want []byte
	}{
		{"nrgba", nrgba, []byte{255, 0, 76}},
		{"rgba", rgba, []byte{255, 0, 76}},
		{"paletted", paletted, []byte{0, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := FromImage(tc.img)
			require.NoError(t, err)
			assert.Equal(t, tc.want, src.Matrix())
		})
	}

	src, err := FromBytes(encodePNG(t, nrgba))
	require.NoError(t, err)
	assert.Equal(t, byte(255), src.Luminance(0, 0))
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestFromBytes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []byte{0, 50, 100, 150, 200, 250})

	src, err := FromBytes(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 3, src.Width())
	assert.Equal(t, 2, src.Height())
	assert.Equal(t, img.Pix, src.Matrix())

	var jpg bytes.Buffer
	require.NoError(t, imaging.Encode(&jpg, img, imaging.JPEG))
	src, err = FromBytes(jpg.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, src.Width())
}

func TestFromBytesErrors(t *testing.T) {
	_, err := FromBytes(nil)
	assert.ErrorIs(t, err, ErrImageDecode)

	_, err = FromBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)

	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 4, 4)))
	_, err = FromBytes(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gray.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, image.NewGray(image.Rect(0, 0, 5, 4))), 0o600))

	src, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, src.Width())

	_, err = FromFile(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = FromFile(dir)
	assert.ErrorIs(t, err, ErrImageNotFound)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte{}, 0o600))
	_, err = FromFile(bad)
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestIngestDoesNotLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	_, err := FromBytes(encodePNG(t, img))
	require.NoError(t, err)
	_, err = FromImage(img)
	require.NoError(t, err)
	_, err = FromBytes([]byte("not an image"))
	require.Error(t, err)

	assert.Empty(t, buf.String())
}

package bcbridge

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/boombuler/barcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxinggo "github.com/ericlevine/rxinggo"
)

// checker is a 3x2 barcode whose dark pixels are where x+y is even.
type checker struct{ origin image.Point }

func (c checker) ColorModel() color.Model { return color.GrayModel }
func (c checker) Bounds() image.Rectangle {
	return image.Rectangle{Min: c.origin, Max: c.origin.Add(image.Pt(3, 2))}
}
func (c checker) At(x, y int) color.Color {
	if (x-c.origin.X+y-c.origin.Y)%2 == 0 {
		return color.Black
	}
	return color.White
}
func (c checker) Metadata() barcode.Metadata { return barcode.Metadata{CodeKind: "checker", Dimensions: 2} }
func (c checker) Content() string            { return "" }

func TestConvertBarcode(t *testing.T) {
	for _, origin := range []image.Point{{}, {X: 5, Y: 7}} {
		bm := ConvertBarcode(checker{origin: origin})
		assert.Equal(t, "X   X \n  X   \n", bm.StringWithChars("X ", "  "))
	}
}

func TestWriter(t *testing.T) {
	var gotContents string
	var gotHints *rxinggo.HintTable
	newWriter := NewWriter(rxinggo.FormatAztec, func(contents string, hints *rxinggo.HintTable) (barcode.Barcode, error) {
		gotContents, gotHints = contents, hints
		return checker{}, nil
	})
	hints := rxinggo.MustBuildHints(rxinggo.Hints{"MARGIN": 1}, rxinggo.DirectionEncode)
	bm, err := newWriter().Encode("abc", hints)
	require.NoError(t, err)
	assert.Equal(t, 3, bm.Width())
	assert.Equal(t, 2, bm.Height())
	assert.Equal(t, "abc", gotContents)
	assert.Same(t, hints, gotHints)

	cause := errors.New("too long")
	failing := NewWriter(rxinggo.FormatAztec, func(string, *rxinggo.HintTable) (barcode.Barcode, error) {
		return nil, cause
	})
	_, err = failing().Encode("abc", nil)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "AZTEC")
}

func TestBytes(t *testing.T) {
	data, err := Bytes("Grüße", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("Grüße"), data)

	latin1 := rxinggo.MustBuildHints(rxinggo.Hints{"CHARACTER_SET": "ISO-8859-1"}, rxinggo.DirectionEncode)
	data, err = Bytes("Grüße", latin1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'G', 'r', 0xFC, 0xDF, 'e'}, data)

	_, err = Bytes("日本", latin1)
	assert.Error(t, err)
}

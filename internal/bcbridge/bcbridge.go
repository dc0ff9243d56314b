// Package bcbridge adapts github.com/boombuler/barcode encoders to the
// rxinggo Writer interface.
package bcbridge

import (
	"fmt"
	"image/color"

	"github.com/boombuler/barcode"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/charset"
)

// EncodeFunc encodes contents into an unscaled boombuler barcode.
type EncodeFunc func(contents string, hints *rxinggo.HintTable) (barcode.Barcode, error)

type writer struct {
	format rxinggo.Format
	encode EncodeFunc
}

// NewWriter returns a writer factory for format backed by encode.
func NewWriter(format rxinggo.Format, encode EncodeFunc) func() rxinggo.Writer {
	return func() rxinggo.Writer {
		return &writer{format: format, encode: encode}
	}
}

func (w *writer) Encode(contents string, hints *rxinggo.HintTable) (*rxinggo.BitMatrix, error) {
	bc, err := w.encode(contents, hints)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.format, err)
	}
	b := bc.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%s: empty symbol", w.format)
	}
	return ConvertBarcode(bc), nil
}

// ConvertBarcode copies an unscaled barcode image, one pixel per module.
// Pixels darker than mid grey are dark modules.
func ConvertBarcode(bc barcode.Barcode) *rxinggo.BitMatrix {
	b := bc.Bounds()
	return rxinggo.NewBitMatrix(b.Dx(), b.Dy(), func(x, y int) bool {
		g := color.GrayModel.Convert(bc.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
		return g.Y < 0x80
	})
}

// Bytes returns contents in the CHARACTER_SET hint's encoding, or as UTF-8
// when the hint is absent.
func Bytes(contents string, hints *rxinggo.HintTable) ([]byte, error) {
	name, ok := hints.StringValue(rxinggo.HintCharacterSet)
	if !ok {
		return []byte(contents), nil
	}
	cs, err := charset.Lookup(name)
	if err != nil {
		return nil, err
	}
	data, err := cs.Encoding.NewEncoder().Bytes([]byte(contents))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", cs.Name, err)
	}
	return data, nil
}

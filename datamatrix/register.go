// Package datamatrix registers Data Matrix decoding and encoding.
package datamatrix

import (
	zxdatamatrix "github.com/makiuchi-d/gozxing/datamatrix"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/zxbridge"
)

// QuietZone is the default margin around a Data Matrix symbol, in modules.
const QuietZone = 2

func init() {
	Register(rxinggo.DefaultRegistry())
}

// Register adds Data Matrix capabilities to r.
func Register(r *rxinggo.Registry) {
	r.RegisterReader(rxinggo.FormatDataMatrix, zxbridge.NewReader(rxinggo.FormatDataMatrix,
		func(*rxinggo.HintTable) zxbridge.Decoder { return zxdatamatrix.NewDataMatrixReader() }))
	r.RegisterWriter(rxinggo.FormatDataMatrix, rxinggo.WriterSpec{
		New: zxbridge.NewWriter(rxinggo.FormatDataMatrix,
			func() zxbridge.Encoder { return zxdatamatrix.NewDataMatrixWriter() }),
		Hints:     []rxinggo.HintKey{rxinggo.HintMargin},
		QuietZone: QuietZone,
	})
}

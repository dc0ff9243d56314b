// Package aztec registers Aztec decoding and encoding.
package aztec

import (
	zxaztec "github.com/makiuchi-d/gozxing/aztec"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/bcbridge"
	"github.com/ericlevine/rxinggo/internal/zxbridge"
)

// QuietZone is the default margin around an Aztec symbol, in modules.
const QuietZone = 2

func init() {
	Register(rxinggo.DefaultRegistry())
}

// Register adds Aztec capabilities to r.
func Register(r *rxinggo.Registry) {
	r.RegisterReader(rxinggo.FormatAztec, zxbridge.NewReader(rxinggo.FormatAztec,
		func(*rxinggo.HintTable) zxbridge.Decoder { return zxaztec.NewAztecReader() }))
	r.RegisterWriter(rxinggo.FormatAztec, rxinggo.WriterSpec{
		New: bcbridge.NewWriter(rxinggo.FormatAztec, encode),
		Hints: []rxinggo.HintKey{
			rxinggo.HintErrorCorrection,
			rxinggo.HintCharacterSet,
			rxinggo.HintMargin,
		},
		QuietZone: QuietZone,
	})
}

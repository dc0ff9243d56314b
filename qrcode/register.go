// Package qrcode registers QR Code decoding and encoding. Import it for its
// side effect on the default registry:
//
//	import _ "github.com/ericlevine/rxinggo/qrcode"
package qrcode

import (
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/zxbridge"
)

// QuietZone is the default margin around a QR Code, in modules.
const QuietZone = 4

func init() {
	Register(rxinggo.DefaultRegistry())
}

// Register adds QR Code capabilities to r.
func Register(r *rxinggo.Registry) {
	r.RegisterReader(rxinggo.FormatQRCode, zxbridge.NewReader(rxinggo.FormatQRCode,
		zxbridge.Fixed(zxqrcode.NewQRCodeReader)))
	r.RegisterWriter(rxinggo.FormatQRCode, rxinggo.WriterSpec{
		New: zxbridge.NewWriter(rxinggo.FormatQRCode,
			func() zxbridge.Encoder { return zxqrcode.NewQRCodeWriter() }),
		Hints: []rxinggo.HintKey{
			rxinggo.HintErrorCorrection,
			rxinggo.HintCharacterSet,
			rxinggo.HintMargin,
			rxinggo.HintSymbolVersion,
		},
		QuietZone: QuietZone,
	})
}

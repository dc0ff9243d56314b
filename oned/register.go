// Package oned registers the linear (one-dimensional) symbologies.
package oned

import (
	zxoned "github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/oned/rss"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/zxbridge"
)

// Default quiet zones, in modules.
const (
	UPCEANQuietZone = 9
	QuietZone       = 10
)

type symbology struct {
	format    rxinggo.Format
	reader    func(*rxinggo.HintTable) zxbridge.Decoder
	writer    func() zxbridge.Encoder
	quietZone int
}

var symbologies = []symbology{
	{
		format:    rxinggo.FormatCodabar,
		reader:    zxbridge.Fixed(zxoned.NewCodaBarReader),
		writer:    func() zxbridge.Encoder { return zxoned.NewCodaBarWriter() },
		quietZone: QuietZone,
	},
	{
		format:    rxinggo.FormatCode39,
		reader:    code39Reader,
		writer:    func() zxbridge.Encoder { return zxoned.NewCode39Writer() },
		quietZone: QuietZone,
	},
	{
		format:    rxinggo.FormatCode93,
		reader:    zxbridge.Fixed(zxoned.NewCode93Reader),
		writer:    func() zxbridge.Encoder { return zxoned.NewCode93Writer() },
		quietZone: QuietZone,
	},
	{
		format:    rxinggo.FormatCode128,
		reader:    zxbridge.Fixed(zxoned.NewCode128Reader),
		writer:    func() zxbridge.Encoder { return zxoned.NewCode128Writer() },
		quietZone: QuietZone,
	},
	{
		format:    rxinggo.FormatEAN8,
		reader:    zxbridge.Fixed(zxoned.NewEAN8Reader),
		writer:    func() zxbridge.Encoder { return zxoned.NewEAN8Writer() },
		quietZone: UPCEANQuietZone,
	},
	{
		format:    rxinggo.FormatEAN13,
		reader:    zxbridge.Fixed(zxoned.NewEAN13Reader),
		writer:    func() zxbridge.Encoder { return zxoned.NewEAN13Writer() },
		quietZone: UPCEANQuietZone,
	},
	{
		format:    rxinggo.FormatITF,
		reader:    zxbridge.Fixed(zxoned.NewITFReader),
		writer:    func() zxbridge.Encoder { return zxoned.NewITFWriter() },
		quietZone: QuietZone,
	},
	{
		format:    rxinggo.FormatUPCA,
		reader:    zxbridge.Fixed(zxoned.NewUPCAReader),
		writer:    func() zxbridge.Encoder { return zxoned.NewUPCAWriter() },
		quietZone: UPCEANQuietZone,
	},
	{
		format:    rxinggo.FormatUPCE,
		reader:    zxbridge.Fixed(zxoned.NewUPCEReader),
		writer:    func() zxbridge.Encoder { return zxoned.NewUPCEWriter() },
		quietZone: UPCEANQuietZone,
	},
	{
		format: rxinggo.FormatRSS14,
		reader: zxbridge.Fixed(rss.NewRSS14Reader),
	},
}

// code39Reader strips and verifies the mod 43 check character when
// ASSUME_CODE_39_CHECK_DIGIT is set.
func code39Reader(hints *rxinggo.HintTable) zxbridge.Decoder {
	return zxoned.NewCode39ReaderWithCheckDigitFlag(hints.Bool(rxinggo.HintAssumeCode39CheckDigit))
}

func init() {
	Register(rxinggo.DefaultRegistry())
}

// Register adds every linear symbology to r.
func Register(r *rxinggo.Registry) {
	for _, s := range symbologies {
		r.RegisterReader(s.format, zxbridge.NewReader(s.format, s.reader))
		if s.writer == nil {
			continue
		}
		r.RegisterWriter(s.format, rxinggo.WriterSpec{
			New:       zxbridge.NewWriter(s.format, s.writer),
			Hints:     []rxinggo.HintKey{rxinggo.HintMargin},
			QuietZone: s.quietZone,
		})
	}
}

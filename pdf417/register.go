// Package pdf417 registers PDF417 encoding.
package pdf417

import (
	"github.com/boombuler/barcode"
	bcpdf417 "github.com/boombuler/barcode/pdf417"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/bcbridge"
)

// QuietZone is the default margin around a PDF417 symbol, in modules.
const QuietZone = 2

// DefaultSecurityLevel is the error correction level used when
// ERROR_CORRECTION is absent.
const DefaultSecurityLevel byte = 2

// securityLevels maps ERROR_CORRECTION levels to PDF417 security levels.
var securityLevels = map[string]byte{
	"L": 2,
	"M": 4,
	"Q": 6,
	"H": 8,
}

// SecurityLevel returns the PDF417 security level requested by hints.
func SecurityLevel(hints *rxinggo.HintTable) byte {
	if ec, ok := hints.StringValue(rxinggo.HintErrorCorrection); ok {
		return securityLevels[ec]
	}
	return DefaultSecurityLevel
}

func encode(contents string, hints *rxinggo.HintTable) (barcode.Barcode, error) {
	return bcpdf417.Encode(contents, SecurityLevel(hints))
}

func init() {
	Register(rxinggo.DefaultRegistry())
}

// Register adds PDF417 capabilities to r. Decoding is not available.
func Register(r *rxinggo.Registry) {
	r.RegisterWriter(rxinggo.FormatPDF417, rxinggo.WriterSpec{
		New:       bcbridge.NewWriter(rxinggo.FormatPDF417, encode),
		Hints:     []rxinggo.HintKey{rxinggo.HintErrorCorrection, rxinggo.HintMargin},
		QuietZone: QuietZone,
	})
}

package aztec

import (
	"github.com/boombuler/barcode"
	bcaztec "github.com/boombuler/barcode/aztec"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/bcbridge"
)

// DefaultECCPercent is the minimum share of error correction codewords used
// when ERROR_CORRECTION is absent.
const DefaultECCPercent = 33

// eccPercent maps ERROR_CORRECTION levels to a minimum error correction
// percentage.
var eccPercent = map[string]int{
	"L": 10,
	"M": 23,
	"Q": 36,
	"H": 50,
}

// ECCPercent returns the error correction percentage requested by hints.
func ECCPercent(hints *rxinggo.HintTable) int {
	if ec, ok := hints.StringValue(rxinggo.HintErrorCorrection); ok {
		return eccPercent[ec]
	}
	return DefaultECCPercent
}

func encode(contents string, hints *rxinggo.HintTable) (barcode.Barcode, error) {
	data, err := bcbridge.Bytes(contents, hints)
	if err != nil {
		return nil, err
	}
	// Zero layers lets the encoder pick the smallest symbol.
	return bcaztec.Encode(data, ECCPercent(hints), 0)
}

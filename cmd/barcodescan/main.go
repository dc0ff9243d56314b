// Command barcodescan decodes barcodes from image files and encodes data
// into barcode images.
package main

import (
	"os"

	// Register all symbologies.
	_ "github.com/ericlevine/rxinggo/aztec"
	_ "github.com/ericlevine/rxinggo/datamatrix"
	_ "github.com/ericlevine/rxinggo/oned"
	_ "github.com/ericlevine/rxinggo/pdf417"
	_ "github.com/ericlevine/rxinggo/qrcode"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

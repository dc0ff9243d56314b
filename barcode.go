// Package rxinggo is a unified decode/encode facade for multi-symbology
// barcode images. It normalizes image inputs into a LuminanceSource, validates
// typed hints, and dispatches decode and encode requests to the symbology
// capabilities registered for each Format.
package rxinggo

import (
	"fmt"
	"strings"
	"time"
)

// Format represents a barcode format.
type Format int

const (
	FormatUnknown Format = iota
	FormatAztec
	FormatCodabar
	FormatCode39
	FormatCode93
	FormatCode128
	FormatDataMatrix
	FormatEAN8
	FormatEAN13
	FormatITF
	FormatMaxiCode
	FormatPDF417
	FormatQRCode
	FormatRSS14
	FormatRSSExpanded
	FormatUPCA
	FormatUPCE
	FormatUPCEANExtension
)

var formatNames = map[Format]string{
	FormatAztec:           "AZTEC",
	FormatCodabar:         "CODABAR",
	FormatCode39:          "CODE_39",
	FormatCode93:          "CODE_93",
	FormatCode128:         "CODE_128",
	FormatDataMatrix:      "DATA_MATRIX",
	FormatEAN8:            "EAN_8",
	FormatEAN13:           "EAN_13",
	FormatITF:             "ITF",
	FormatMaxiCode:        "MAXICODE",
	FormatPDF417:          "PDF_417",
	FormatQRCode:          "QR_CODE",
	FormatRSS14:           "RSS_14",
	FormatRSSExpanded:     "RSS_EXPANDED",
	FormatUPCA:            "UPC_A",
	FormatUPCE:            "UPC_E",
	FormatUPCEANExtension: "UPC_EAN_EXTENSION",
}

// String returns the name of the barcode format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// Is2D reports whether the format is a matrix (two-dimensional) symbology.
func (f Format) Is2D() bool {
	switch f {
	case FormatAztec, FormatDataMatrix, FormatMaxiCode, FormatPDF417, FormatQRCode:
		return true
	}
	return false
}

// ParseFormat returns the Format named by s. Matching ignores case.
func ParseFormat(s string) (Format, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown barcode format %q", s)
}

// AllFormats returns every known format in declaration order.
func AllFormats() []Format {
	formats := make([]Format, 0, len(formatNames))
	for f := FormatAztec; f <= FormatUPCEANExtension; f++ {
		formats = append(formats, f)
	}
	return formats
}

// decodePriority is the fixed order in which candidate formats are tried.
// Matrix symbologies come first. UPC_A precedes EAN_13 so that a UPC-A
// symbol reports as UPC_A.
// UPC_EAN_EXTENSION is only ever read alongside a UPC/EAN symbol.
var decodePriority = []Format{
	FormatQRCode,
	FormatDataMatrix,
	FormatAztec,
	FormatPDF417,
	FormatMaxiCode,
	FormatCode128,
	FormatUPCA,
	FormatEAN13,
	FormatUPCE,
	FormatEAN8,
	FormatCode39,
	FormatCode93,
	FormatCodabar,
	FormatITF,
	FormatRSS14,
	FormatRSSExpanded,
}

// DecodePriority returns the order in which formats are tried when decoding.
func DecodePriority() []Format {
	return append([]Format(nil), decodePriority...)
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey string

const (
	MetadataOrientation              ResultMetadataKey = "ORIENTATION"
	MetadataInverted                 ResultMetadataKey = "INVERTED"
	MetadataByteSegments             ResultMetadataKey = "BYTE_SEGMENTS"
	MetadataErrorCorrectionLevel     ResultMetadataKey = "ERROR_CORRECTION_LEVEL"
	MetadataErrorsCorrected          ResultMetadataKey = "ERRORS_CORRECTED"
	MetadataErasuresCorrected        ResultMetadataKey = "ERASURES_CORRECTED"
	MetadataIssueNumber              ResultMetadataKey = "ISSUE_NUMBER"
	MetadataSuggestedPrice           ResultMetadataKey = "SUGGESTED_PRICE"
	MetadataPossibleCountry          ResultMetadataKey = "POSSIBLE_COUNTRY"
	MetadataUPCEANExtension          ResultMetadataKey = "UPC_EAN_EXTENSION"
	MetadataStructuredAppendSequence ResultMetadataKey = "STRUCTURED_APPEND_SEQUENCE"
	MetadataStructuredAppendParity   ResultMetadataKey = "STRUCTURED_APPEND_PARITY"
	MetadataSymbologyIdentifier      ResultMetadataKey = "SYMBOLOGY_IDENTIFIER"
)

// ResultPoint represents a point of interest in an image, in pixels.
type ResultPoint struct {
	X, Y float64
}

// Result encapsulates the result of decoding a barcode. Points are in the
// coordinate space of the source passed to Decode, in the order the
// symbology defines (for QR codes: bottom-left, top-left, top-right finder
// centres, optionally followed by an alignment pattern).
type Result struct {
	Text      string
	RawBytes  []byte
	NumBits   int
	Points    []ResultPoint
	Format    Format
	Metadata  map[ResultMetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a new Result with the given text, format, and points.
// NumBits defaults to eight bits per raw byte.
func NewResult(text string, rawBytes []byte, points []ResultPoint, format Format) *Result {
	return &Result{
		Text:     text,
		RawBytes: rawBytes,
		NumBits:  8 * len(rawBytes),
		Points:   points,
		Format:   format,
		Metadata: make(map[ResultMetadataKey]interface{}),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	if r.Metadata == nil {
		r.Metadata = make(map[ResultMetadataKey]interface{})
	}
	r.Metadata[key] = value
}

// MetadataStrings renders every metadata value with fmt's default format,
// which is how the values are usually shown to people.
func (r *Result) MetadataStrings() map[string]string {
	out := make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		out[string(k)] = fmt.Sprint(v)
	}
	return out
}

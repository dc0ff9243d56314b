// Package zxbridge adapts gozxing symbology readers and writers to the
// rxinggo Reader and Writer interfaces.
package zxbridge

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	rxinggo "github.com/ericlevine/rxinggo"
)

// Decoder is the subset of gozxing.Reader used here.
type Decoder interface {
	Decode(image *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) (*gozxing.Result, error)
}

// Encoder is the subset of gozxing.Writer used here.
type Encoder interface {
	Encode(contents string, format gozxing.BarcodeFormat, width, height int,
		hints map[gozxing.EncodeHintType]interface{}) (*gozxing.BitMatrix, error)
}

var formats = map[rxinggo.Format]gozxing.BarcodeFormat{
	rxinggo.FormatAztec:           gozxing.BarcodeFormat_AZTEC,
	rxinggo.FormatCodabar:         gozxing.BarcodeFormat_CODABAR,
	rxinggo.FormatCode39:          gozxing.BarcodeFormat_CODE_39,
	rxinggo.FormatCode93:          gozxing.BarcodeFormat_CODE_93,
	rxinggo.FormatCode128:         gozxing.BarcodeFormat_CODE_128,
	rxinggo.FormatDataMatrix:      gozxing.BarcodeFormat_DATA_MATRIX,
	rxinggo.FormatEAN8:            gozxing.BarcodeFormat_EAN_8,
	rxinggo.FormatEAN13:           gozxing.BarcodeFormat_EAN_13,
	rxinggo.FormatITF:             gozxing.BarcodeFormat_ITF,
	rxinggo.FormatMaxiCode:        gozxing.BarcodeFormat_MAXICODE,
	rxinggo.FormatPDF417:          gozxing.BarcodeFormat_PDF_417,
	rxinggo.FormatQRCode:          gozxing.BarcodeFormat_QR_CODE,
	rxinggo.FormatRSS14:           gozxing.BarcodeFormat_RSS_14,
	rxinggo.FormatRSSExpanded:     gozxing.BarcodeFormat_RSS_EXPANDED,
	rxinggo.FormatUPCA:            gozxing.BarcodeFormat_UPC_A,
	rxinggo.FormatUPCE:            gozxing.BarcodeFormat_UPC_E,
	rxinggo.FormatUPCEANExtension: gozxing.BarcodeFormat_UPC_EAN_EXTENSION,
}

// ToZXing maps a format to its gozxing equivalent.
func ToZXing(f rxinggo.Format) (gozxing.BarcodeFormat, bool) {
	bf, ok := formats[f]
	return bf, ok
}

// FromZXing maps a gozxing format back, returning FormatUnknown for formats
// without an equivalent.
func FromZXing(bf gozxing.BarcodeFormat) rxinggo.Format {
	for f, z := range formats {
		if z == bf {
			return f
		}
	}
	return rxinggo.FormatUnknown
}

type reader struct {
	format rxinggo.Format
	newZX  func(hints *rxinggo.HintTable) Decoder
}

// NewReader returns a reader factory for format. newZX builds the gozxing
// reader for each decode call, so flags gozxing only takes at construction
// can follow the hint table.
func NewReader(format rxinggo.Format, newZX func(hints *rxinggo.HintTable) Decoder) func() rxinggo.Reader {
	return func() rxinggo.Reader {
		return &reader{format: format, newZX: newZX}
	}
}

// Fixed adapts a gozxing constructor that takes no configuration.
func Fixed(newZX func() gozxing.Reader) func(*rxinggo.HintTable) Decoder {
	return func(*rxinggo.HintTable) Decoder { return newZX() }
}

// Decode binarizes source with the hybrid binarizer and, under TRY_HARDER,
// retries with the global histogram binarizer.
func (r *reader) Decode(source rxinggo.LuminanceSource, hints *rxinggo.HintTable) (*rxinggo.Result, error) {
	lum := gozxing.NewLuminanceSourceFromImage(GrayImage(source))
	binarizers := []func(gozxing.LuminanceSource) gozxing.Binarizer{
		func(s gozxing.LuminanceSource) gozxing.Binarizer { return gozxing.NewHybridBinarizer(s) },
	}
	if hints.Bool(rxinggo.HintTryHarder) {
		binarizers = append(binarizers,
			func(s gozxing.LuminanceSource) gozxing.Binarizer { return gozxing.NewGlobalHistgramBinarizer(s) })
	}

	zh := DecodeHints(hints)
	var lastErr error
	for _, binarize := range binarizers {
		bmp, err := gozxing.NewBinaryBitmap(binarize(lum))
		if err != nil {
			lastErr = err
			continue
		}
		res, err := r.newZX(hints).Decode(bmp, zh)
		if err != nil {
			lastErr = err
			continue
		}
		return ConvertResult(res, r.format), nil
	}
	if lastErr == nil {
		lastErr = errors.New("no binarizer")
	}
	return nil, fmt.Errorf("%s: %w", r.format, lastErr)
}

// GrayImage copies source into an 8-bit greyscale image.
func GrayImage(source rxinggo.LuminanceSource) *image.Gray {
	w, h := source.Width(), source.Height()
	return &image.Gray{
		Pix:    source.Matrix(),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

var decodeFlags = map[rxinggo.HintKey]gozxing.DecodeHintType{
	rxinggo.HintTryHarder:             gozxing.DecodeHintType_TRY_HARDER,
	rxinggo.HintPureBarcode:           gozxing.DecodeHintType_PURE_BARCODE,
	rxinggo.HintAssumeGS1:             gozxing.DecodeHintType_ASSUME_GS1,
	rxinggo.HintReturnCodabarStartEnd: gozxing.DecodeHintType_RETURN_CODABAR_START_END,
}

// DecodeHints translates a decode hint table. Boolean hints are only set
// when true, since gozxing tests for presence. ASSUME_CODE_39_CHECK_DIGIT is
// not translated: gozxing's Code 39 reader takes it as a constructor flag.
func DecodeHints(hints *rxinggo.HintTable) map[gozxing.DecodeHintType]interface{} {
	zh := make(map[gozxing.DecodeHintType]interface{})
	for k, zk := range decodeFlags {
		if hints.Bool(k) {
			zh[zk] = true
		}
	}
	if cs, ok := hints.StringValue(rxinggo.HintCharacterSet); ok {
		zh[gozxing.DecodeHintType_CHARACTER_SET] = cs
	}
	return zh
}

var ecLevels = map[string]decoder.ErrorCorrectionLevel{
	"L": decoder.ErrorCorrectionLevel_L,
	"M": decoder.ErrorCorrectionLevel_M,
	"Q": decoder.ErrorCorrectionLevel_Q,
	"H": decoder.ErrorCorrectionLevel_H,
}

// EncodeHints translates an encode hint table. The margin is always zero:
// quiet zones are added by the caller.
func EncodeHints(hints *rxinggo.HintTable) map[gozxing.EncodeHintType]interface{} {
	zh := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_MARGIN: 0,
	}
	if ec, ok := hints.StringValue(rxinggo.HintErrorCorrection); ok {
		zh[gozxing.EncodeHintType_ERROR_CORRECTION] = ecLevels[ec]
	}
	if cs, ok := hints.StringValue(rxinggo.HintCharacterSet); ok {
		zh[gozxing.EncodeHintType_CHARACTER_SET] = cs
	}
	if v, ok := hints.Int(rxinggo.HintSymbolVersion); ok {
		zh[gozxing.EncodeHintType_QR_VERSION] = v
	}
	return zh
}

// ConvertResult copies a gozxing result. format is used when the gozxing
// format has no equivalent.
func ConvertResult(res *gozxing.Result, format rxinggo.Format) *rxinggo.Result {
	var points []rxinggo.ResultPoint
	for _, p := range res.GetResultPoints() {
		if p == nil {
			continue
		}
		points = append(points, rxinggo.ResultPoint{X: p.GetX(), Y: p.GetY()})
	}
	if f := FromZXing(res.GetBarcodeFormat()); f != rxinggo.FormatUnknown {
		format = f
	}
	out := rxinggo.NewResult(res.GetText(), res.GetRawBytes(), points, format)
	out.NumBits = res.GetNumBits()
	for k, v := range res.GetResultMetadata() {
		out.PutMetadata(rxinggo.ResultMetadataKey(fmt.Sprint(k)), v)
	}
	return out
}

type writer struct {
	format rxinggo.Format
	newZX  func() Encoder
}

// NewWriter returns a writer factory for format backed by gozxing writers
// created by newZX.
func NewWriter(format rxinggo.Format, newZX func() Encoder) func() rxinggo.Writer {
	return func() rxinggo.Writer {
		return &writer{format: format, newZX: newZX}
	}
}

// Encode asks gozxing for the smallest rendering, which is one pixel per
// module with no margin.
func (w *writer) Encode(contents string, hints *rxinggo.HintTable) (*rxinggo.BitMatrix, error) {
	bf, ok := ToZXing(w.format)
	if !ok {
		return nil, fmt.Errorf("%s has no gozxing equivalent", w.format)
	}
	bm, err := w.newZX().Encode(contents, bf, 0, 0, EncodeHints(hints))
	if err != nil {
		return nil, err
	}
	return ConvertMatrix(bm), nil
}

// ConvertMatrix copies a gozxing bit matrix.
func ConvertMatrix(bm *gozxing.BitMatrix) *rxinggo.BitMatrix {
	return rxinggo.NewBitMatrix(bm.GetWidth(), bm.GetHeight(), bm.Get)
}

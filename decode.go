package rxinggo

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Decode pass names, as reported to an Observer.
const (
	PassOriginal = "original"
	PassRotated  = "rotated180"
	PassInverted = "inverted"
)

// Decoder dispatches a decode request to the registered readers. It tries
// every candidate format on the source as given, then on a 180 degree
// rotation when TRY_HARDER is set, then on an inverted view when
// ALSO_INVERTED is set. The first success wins.
type Decoder struct {
	opts options
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{opts: buildOptions(opts)}
}

// Decode locates and decodes one barcode in source.
func (d *Decoder) Decode(source LuminanceSource, hints *HintTable) (*Result, error) {
	start := time.Now()
	res, err := d.decode(source, hints)
	d.opts.observer.ObserveDecode(err, time.Since(start))
	return res, err
}

func (d *Decoder) decode(source LuminanceSource, hints *HintTable) (*Result, error) {
	if source == nil {
		return nil, newError(KindUnsupportedImageFormat, nil, "nil luminance source")
	}
	if hints.Len() > 0 && hints.Direction() != DirectionDecode {
		return nil, newError(KindHintNotApplicable, nil, "%s hints passed to decode", hints.Direction())
	}

	candidates, err := d.candidates(hints)
	if err != nil {
		return nil, err
	}

	passes := []string{PassOriginal}
	if hints.Bool(HintTryHarder) {
		passes = append(passes, PassRotated)
	}
	if hints.Bool(HintAlsoInverted) {
		passes = append(passes, PassInverted)
	}

	log := d.opts.logger
	for _, pass := range passes {
		view := source
		switch pass {
		case PassRotated:
			view = source.Rotate180()
		case PassInverted:
			view = source.Invert()
		}
		for _, format := range candidates {
			res, err := d.attempt(format, view, hints)
			d.opts.observer.ObserveAttempt(format, pass, err)
			if err != nil {
				log.Debug("decode attempt failed", "format", format, "pass", pass, "err", err)
				continue
			}
			d.finish(res, format, pass, source.Width(), source.Height())
			log.Debug("decoded barcode", "format", res.Format, "pass", pass)
			return res, nil
		}
	}
	return nil, newError(KindNotFound, nil, "no barcode found after trying %d format(s) in %d pass(es)",
		len(candidates), len(passes))
}

// candidates returns the formats to try, in priority order.
func (d *Decoder) candidates(hints *HintTable) ([]Format, error) {
	allowed := hints.Formats()
	var want map[Format]bool
	if allowed != nil {
		want = make(map[Format]bool, len(allowed))
		for _, f := range allowed {
			want[f] = true
		}
	}
	var out []Format
	for _, f := range decodePriority {
		if want != nil && !want[f] {
			continue
		}
		if d.opts.registry.Decodable(f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		if allowed != nil {
			return nil, newError(KindNoPossibleFormats, nil, "none of %v can be decoded", allowed)
		}
		return nil, newError(KindNoPossibleFormats, nil, "no readers registered")
	}
	return out, nil
}

// attempt runs one reader. A panicking reader counts as a failed attempt.
func (d *Decoder) attempt(format Format, source LuminanceSource, hints *HintTable) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s reader panicked: %v", format, r)
		}
	}()
	res, err = d.opts.registry.readers[format]().Decode(source, hints)
	if err == nil && res == nil {
		err = errors.New("reader returned no result")
	}
	return res, err
}

// finish stamps res and maps its points back into the coordinate space of
// the original width x height source.
func (d *Decoder) finish(res *Result, format Format, pass string, width, height int) {
	if res.Format == FormatUnknown {
		res.Format = format
	}
	if res.Metadata == nil {
		res.Metadata = make(map[ResultMetadataKey]interface{})
	}
	res.Timestamp = d.opts.now()
	switch pass {
	case PassRotated:
		for i, p := range res.Points {
			res.Points[i] = ResultPoint{X: float64(width-1) - p.X, Y: float64(height-1) - p.Y}
		}
		res.Metadata[MetadataOrientation] = 180
	case PassInverted:
		res.Metadata[MetadataInverted] = true
	}
}

func defaultDecode(hints Hints, load func() (LuminanceSource, error)) (*Result, error) {
	table, err := BuildHints(hints, DirectionDecode)
	if err != nil {
		return nil, err
	}
	source, err := load()
	if err != nil {
		return nil, err
	}
	return NewDecoder().Decode(source, table)
}

// Decode decodes one barcode from source using the default registry.
func Decode(source LuminanceSource, hints Hints) (*Result, error) {
	return defaultDecode(hints, func() (LuminanceSource, error) {
		if source == nil {
			return nil, newError(KindUnsupportedImageFormat, nil, "nil luminance source")
		}
		return source, nil
	})
}

// DecodeFile decodes one barcode from the image file at path. Hints are
// validated before the file is read.
func DecodeFile(path string, hints Hints) (*Result, error) {
	return defaultDecode(hints, func() (LuminanceSource, error) { return FromFile(path) })
}

// DecodeBytes decodes one barcode from an encoded image container.
func DecodeBytes(data []byte, hints Hints) (*Result, error) {
	return defaultDecode(hints, func() (LuminanceSource, error) { return FromBytes(data) })
}

// DecodeImage decodes one barcode from an in-memory image.
func DecodeImage(img image.Image, hints Hints) (*Result, error) {
	return defaultDecode(hints, func() (LuminanceSource, error) { return FromImage(img) })
}

// DecodePixels decodes one barcode from a raw pixel array.
func DecodePixels(pix []byte, width, height int, layout ChannelLayout, hints Hints) (*Result, error) {
	return defaultDecode(hints, func() (LuminanceSource, error) {
		return FromPixels(pix, width, height, layout)
	})
}

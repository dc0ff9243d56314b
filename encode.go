package rxinggo

import (
	"fmt"
	"time"

	"github.com/ericlevine/rxinggo/charset"
)

// Encoder dispatches an encode request to the writer registered for the
// requested format and applies the quiet zone.
type Encoder struct {
	opts options
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{opts: buildOptions(opts)}
}

// Encode produces the module grid for contents in format. Width and height
// only set the render size recorded on the matrix; zero means one pixel per
// module.
func (e *Encoder) Encode(contents string, format Format, width, height int, hints *HintTable) (*BitMatrix, error) {
	start := time.Now()
	bm, err := e.encode(contents, format, width, height, hints)
	e.opts.observer.ObserveEncode(format, err, time.Since(start))
	if err != nil {
		e.opts.logger.Debug("encode failed", "format", format, "err", err)
	}
	return bm, err
}

func (e *Encoder) encode(contents string, format Format, width, height int, hints *HintTable) (*BitMatrix, error) {
	if hints.Len() > 0 && hints.Direction() != DirectionEncode {
		return nil, newError(KindHintNotApplicable, nil, "%s hints passed to encode", hints.Direction())
	}
	spec, ok := e.opts.registry.writers[format]
	if !ok {
		return nil, newError(KindFormatNotEncodable, nil, "%s has no encoder", format)
	}
	legal := make(map[HintKey]bool, len(spec.Hints))
	for _, k := range spec.Hints {
		legal[k] = true
	}
	for _, k := range hints.Keys() {
		if !legal[k] {
			return nil, newError(KindHintNotApplicable, nil, "%s does not apply to %s", k, format)
		}
	}
	if width < 0 || height < 0 {
		return nil, newError(KindEncode, nil, "requested dimensions are too small: %dx%d", width, height)
	}
	if contents == "" {
		return nil, newError(KindEncode, nil, "found empty contents")
	}
	if name, ok := hints.StringValue(HintCharacterSet); ok {
		cs, err := charset.Lookup(name)
		if err != nil {
			return nil, newError(KindEncode, err, "character set %s", name)
		}
		if err := cs.CanEncode(contents); err != nil {
			return nil, newError(KindEncode, err, "contents not representable in %s", cs.Name)
		}
	}

	grid, err := e.write(spec, contents, hints)
	if err != nil {
		return nil, newError(KindEncode, err, "%s", format)
	}

	margin := spec.QuietZone
	if m, ok := hints.Int(HintMargin); ok {
		margin = m
	}
	return grid.withMargin(margin).withRenderSize(width, height), nil
}

// write runs the writer, converting a panic into an error.
func (e *Encoder) write(spec WriterSpec, contents string, hints *HintTable) (bm *BitMatrix, err error) {
	defer func() {
		if r := recover(); r != nil {
			bm = nil
			err = fmt.Errorf("writer panicked: %v", r)
		}
	}()
	bm, err = spec.New().Encode(contents, hints)
	if err == nil && bm == nil {
		err = fmt.Errorf("writer returned no matrix")
	}
	return bm, err
}

// Encode encodes contents as a barcode of the given format using the
// default registry. Width and height set the render size used by Image and
// Save.
func Encode(contents string, format Format, width, height int, hints Hints) (*BitMatrix, error) {
	table, err := BuildHints(hints, DirectionEncode)
	if err != nil {
		return nil, err
	}
	return NewEncoder().Encode(contents, format, width, height, table)
}

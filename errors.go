package rxinggo

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	KindImageNotFound ErrorKind = iota + 1
	KindImageDecode
	KindUnsupportedImageFormat
	KindUnknownHint
	KindInvalidHintValue
	KindHintNotApplicable
	KindNoPossibleFormats
	KindNotFound
	KindFormatNotEncodable
	KindEncode
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindImageNotFound:
		return "ImageNotFound"
	case KindImageDecode:
		return "ImageDecodeError"
	case KindUnsupportedImageFormat:
		return "UnsupportedImageFormat"
	case KindUnknownHint:
		return "UnknownHint"
	case KindInvalidHintValue:
		return "InvalidHintValue"
	case KindHintNotApplicable:
		return "HintNotApplicable"
	case KindNoPossibleFormats:
		return "NoPossibleFormats"
	case KindNotFound:
		return "NotFound"
	case KindFormatNotEncodable:
		return "FormatNotEncodable"
	case KindEncode:
		return "EncodeError"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by this package. Kind says what
// went wrong; Msg and Err carry the detail.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := "rxing: " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	// ErrImageNotFound is returned when a path does not name a readable file.
	ErrImageNotFound = &Error{Kind: KindImageNotFound}

	// ErrImageDecode is returned when bytes are not a recognised image container.
	ErrImageDecode = &Error{Kind: KindImageDecode}

	// ErrUnsupportedImageFormat is returned for unsupported channel layouts and empty images.
	ErrUnsupportedImageFormat = &Error{Kind: KindUnsupportedImageFormat}

	// ErrUnknownHint is returned when a hint name is not in the vocabulary.
	ErrUnknownHint = &Error{Kind: KindUnknownHint}

	// ErrInvalidHintValue is returned when a hint value has the wrong kind or range.
	ErrInvalidHintValue = &Error{Kind: KindInvalidHintValue}

	// ErrHintNotApplicable is returned when a hint does not apply to the direction or format.
	ErrHintNotApplicable = &Error{Kind: KindHintNotApplicable}

	// ErrNoPossibleFormats is returned when POSSIBLE_FORMATS leaves nothing to decode.
	ErrNoPossibleFormats = &Error{Kind: KindNoPossibleFormats}

	// ErrNotFound is returned when no barcode is found in the image.
	ErrNotFound = &Error{Kind: KindNotFound}

	// ErrFormatNotEncodable is returned when a format has no encoder.
	ErrFormatNotEncodable = &Error{Kind: KindFormatNotEncodable}

	// ErrEncode is returned when the data cannot be represented by the symbology.
	ErrEncode = &Error{Kind: KindEncode}
)

func newError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

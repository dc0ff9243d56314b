package rxinggo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	err := newError(KindNotFound, nil, "no barcode")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrEncode))

	wrapped := fmt.Errorf("scan: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("other")))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("bad header")
	err := newError(KindImageDecode, cause, "decode %s", "png")
	assert.Equal(t, "rxing: ImageDecodeError: decode png: bad header", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "rxing: NotFound", ErrNotFound.Error())
}

func TestErrorKindNames(t *testing.T) {
	names := map[ErrorKind]string{
		KindImageNotFound:          "ImageNotFound",
		KindImageDecode:            "ImageDecodeError",
		KindUnsupportedImageFormat: "UnsupportedImageFormat",
		KindUnknownHint:            "UnknownHint",
		KindInvalidHintValue:       "InvalidHintValue",
		KindHintNotApplicable:      "HintNotApplicable",
		KindNoPossibleFormats:      "NoPossibleFormats",
		KindNotFound:               "NotFound",
		KindFormatNotEncodable:     "FormatNotEncodable",
		KindEncode:                 "EncodeError",
	}
	for k, name := range names {
		assert.Equal(t, name, k.String())
	}
	assert.Equal(t, "Unknown", ErrorKind(0).String())
}

package charset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupECITable(t *testing.T) {
	tests := []struct {
		in   string
		name string
		eci  int
	}{
		{"UTF-8", "UTF-8", 26},
		{"utf8", "UTF-8", 26},
		{"ISO8859_1", "ISO-8859-1", 1},
		{"sjis", "Shift_JIS", 20},
		{"Cp1252", "windows-1252", 23},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			cs, err := Lookup(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.name, cs.Name)
			assert.Equal(t, tc.eci, cs.ECI)
			assert.NotNil(t, cs.Encoding)
		})
	}
}

func TestLookupRejectsNamesOutsideECITable(t *testing.T) {
	// Registered with IANA but not resolvable by the engine.
	for _, name := range []string{"KOI8-R", "ISO-8859-6", "ISO-8859-8", "windows-1253"} {
		_, err := Lookup(name)
		assert.ErrorIs(t, err, ErrUnknownCharset, name)
	}
}

func TestEveryNameResolves(t *testing.T) {
	for _, name := range Names() {
		cs, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cs.Name)
		assert.NotNil(t, cs.Encoding, name)
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "  ", "NOT-A-CHARSET"} {
		_, err := Lookup(name)
		assert.True(t, errors.Is(err, ErrUnknownCharset), "name %q", name)
	}
}

func TestCanEncode(t *testing.T) {
	latin1, err := Lookup("ISO-8859-1")
	require.NoError(t, err)
	assert.NoError(t, latin1.CanEncode("Grüße"))
	assert.Error(t, latin1.CanEncode("日本"))

	sjis, err := Lookup("Shift_JIS")
	require.NoError(t, err)
	assert.NoError(t, sjis.CanEncode("日本"))
}

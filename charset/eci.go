// Package charset resolves CHARACTER_SET hint values to character sets the
// symbology engines understand.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownCharset indicates a character set name that cannot be resolved.
var ErrUnknownCharset = errors.New("charset: unknown character set")

// Charset is a resolved character set.
type Charset struct {
	// Name is the canonical name passed on to the engines.
	Name string

	// ECI is the Extended Channel Interpretation value.
	ECI int

	// Encoding converts between UTF-8 and the character set.
	Encoding encoding.Encoding
}

type eciEntry struct {
	value   int
	name    string
	aliases []string
}

// eciTable lists the character sets with an ECI assignment that the
// symbology engine can resolve, keyed by the names it expects. ISO-8859-6,
// -8, -10, -11 and -14 have ECI values but no engine support.
var eciTable = []eciEntry{
	{0, "IBM437", []string{"Cp437"}},
	{1, "ISO-8859-1", []string{"ISO8859_1", "latin1"}},
	{4, "ISO-8859-2", []string{"ISO8859_2"}},
	{5, "ISO-8859-3", []string{"ISO8859_3"}},
	{6, "ISO-8859-4", []string{"ISO8859_4"}},
	{7, "ISO-8859-5", []string{"ISO8859_5"}},
	{9, "ISO-8859-7", []string{"ISO8859_7"}},
	{11, "ISO-8859-9", []string{"ISO8859_9"}},
	{15, "ISO-8859-13", []string{"ISO8859_13"}},
	{17, "ISO-8859-15", []string{"ISO8859_15"}},
	{18, "ISO-8859-16", []string{"ISO8859_16"}},
	{20, "Shift_JIS", []string{"SJIS"}},
	{21, "windows-1250", []string{"Cp1250"}},
	{22, "windows-1251", []string{"Cp1251"}},
	{23, "windows-1252", []string{"Cp1252"}},
	{24, "windows-1256", []string{"Cp1256"}},
	{25, "UTF-16BE", []string{"UnicodeBigUnmarked", "UnicodeBig"}},
	{26, "UTF-8", []string{"UTF8"}},
	{27, "US-ASCII", []string{"ASCII"}},
	{28, "Big5", nil},
	{29, "GB18030", []string{"GB2312", "EUC_CN", "GBK"}},
	{30, "EUC-KR", []string{"EUC_KR"}},
}

var nameToECI map[string]*eciEntry

func init() {
	nameToECI = make(map[string]*eciEntry)
	for i := range eciTable {
		e := &eciTable[i]
		nameToECI[strings.ToLower(e.name)] = e
		for _, alias := range e.aliases {
			nameToECI[strings.ToLower(alias)] = e
		}
	}
}

// Lookup resolves a character set name against the ECI table. Names and
// aliases match case-insensitively.
func Lookup(name string) (*Charset, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownCharset)
	}
	e, ok := nameToECI[strings.ToLower(trimmed)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	enc, err := ianaindex.IANA.Encoding(e.name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q has no encoder", ErrUnknownCharset, name)
	}
	return &Charset{Name: e.name, ECI: e.value, Encoding: enc}, nil
}

// Names returns the canonical names of every supported character set.
func Names() []string {
	names := make([]string, len(eciTable))
	for i, e := range eciTable {
		names[i] = e.name
	}
	return names
}

// CanEncode returns an error if s contains characters the character set
// cannot represent.
func (c *Charset) CanEncode(s string) error {
	if _, err := c.Encoding.NewEncoder().String(s); err != nil {
		return fmt.Errorf("%s cannot represent %q: %w", c.Name, s, err)
	}
	return nil
}

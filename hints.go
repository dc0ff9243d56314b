package rxinggo

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ericlevine/rxinggo/charset"
)

// Direction says whether a hint table configures decoding or encoding.
type Direction int

const (
	DirectionDecode Direction = 1 << iota
	DirectionEncode
)

func (d Direction) String() string {
	switch d {
	case DirectionDecode:
		return "decode"
	case DirectionEncode:
		return "encode"
	case DirectionDecode | DirectionEncode:
		return "decode/encode"
	default:
		return "none"
	}
}

// ValueKind is the kind of value a hint key expects.
type ValueKind int

const (
	ValueBool ValueKind = iota + 1
	ValueString
	ValueStringSet
	ValueEnum
	ValueInt
)

func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	case ValueStringSet:
		return "set of strings"
	case ValueEnum:
		return "enum"
	case ValueInt:
		return "integer"
	default:
		return "unknown"
	}
}

// HintKey identifies a decode or encode hint.
type HintKey int

const (
	HintTryHarder HintKey = iota + 1
	HintPureBarcode
	HintPossibleFormats
	HintCharacterSet
	HintAlsoInverted
	HintAssumeCode39CheckDigit
	HintAssumeGS1
	HintReturnCodabarStartEnd
	HintErrorCorrection
	HintMargin
	HintSymbolVersion
)

type hintSpec struct {
	name string
	kind ValueKind
	dirs Direction
	enum []string
	min  int
	max  int
}

var hintSpecs = map[HintKey]hintSpec{
	HintTryHarder:              {name: "TRY_HARDER", kind: ValueBool, dirs: DirectionDecode},
	HintPureBarcode:            {name: "PURE_BARCODE", kind: ValueBool, dirs: DirectionDecode},
	HintPossibleFormats:        {name: "POSSIBLE_FORMATS", kind: ValueStringSet, dirs: DirectionDecode},
	HintCharacterSet:           {name: "CHARACTER_SET", kind: ValueString, dirs: DirectionDecode | DirectionEncode},
	HintAlsoInverted:           {name: "ALSO_INVERTED", kind: ValueBool, dirs: DirectionDecode},
	HintAssumeCode39CheckDigit: {name: "ASSUME_CODE_39_CHECK_DIGIT", kind: ValueBool, dirs: DirectionDecode},
	HintAssumeGS1:              {name: "ASSUME_GS1", kind: ValueBool, dirs: DirectionDecode},
	HintReturnCodabarStartEnd:  {name: "RETURN_CODABAR_START_END", kind: ValueBool, dirs: DirectionDecode},
	HintErrorCorrection:        {name: "ERROR_CORRECTION", kind: ValueEnum, dirs: DirectionEncode, enum: []string{"L", "M", "Q", "H"}},
	HintMargin:                 {name: "MARGIN", kind: ValueInt, dirs: DirectionEncode, min: 0, max: 1 << 12},
	HintSymbolVersion:          {name: "SYMBOL_VERSION", kind: ValueInt, dirs: DirectionEncode, min: 1, max: 40},
}

var hintsByName map[string]HintKey

func init() {
	hintsByName = make(map[string]HintKey, len(hintSpecs))
	for k, s := range hintSpecs {
		hintsByName[s.name] = k
	}
}

// String returns the hint's name as written in a hint mapping.
func (k HintKey) String() string {
	if s, ok := hintSpecs[k]; ok {
		return s.name
	}
	return fmt.Sprintf("HintKey(%d)", int(k))
}

// Kind returns the kind of value the hint expects.
func (k HintKey) Kind() ValueKind {
	return hintSpecs[k].kind
}

// Directions returns the directions the hint applies to.
func (k HintKey) Directions() Direction {
	return hintSpecs[k].dirs
}

// ParseHintKey looks up a hint by its exact, case-sensitive name.
func ParseHintKey(name string) (HintKey, bool) {
	k, ok := hintsByName[name]
	return k, ok
}

// Hints is an unvalidated mapping from hint name to value, as supplied by
// callers or decoded from configuration files.
type Hints map[string]interface{}

// HintTable is a validated, read-only set of hints for one direction.
// A nil *HintTable behaves as an empty table.
type HintTable struct {
	dir    Direction
	values map[HintKey]interface{}
}

// BuildHints validates raw and returns a HintTable for dir. Entries are
// checked in name order so the reported error is deterministic.
func BuildHints(raw Hints, dir Direction) (*HintTable, error) {
	t := &HintTable{dir: dir, values: make(map[HintKey]interface{}, len(raw))}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key, ok := hintsByName[name]
		if !ok {
			return nil, newError(KindUnknownHint, nil, "%q is not a %s hint", name, dir)
		}
		spec := hintSpecs[key]
		if spec.dirs&dir == 0 {
			return nil, newError(KindHintNotApplicable, nil, "%s is not a %s hint", key, dir)
		}
		v, err := normalizeHint(key, spec, raw[name])
		if err != nil {
			return nil, err
		}
		t.values[key] = v
	}
	return t, nil
}

// MustBuildHints is like BuildHints but panics on error. It is intended for
// hint tables built from literals.
func MustBuildHints(raw Hints, dir Direction) *HintTable {
	t, err := BuildHints(raw, dir)
	if err != nil {
		panic(err)
	}
	return t
}

func invalidHint(key HintKey, format string, args ...interface{}) *Error {
	return newError(KindInvalidHintValue, nil, "%s: %s", key, fmt.Sprintf(format, args...))
}

func normalizeHint(key HintKey, spec hintSpec, value interface{}) (interface{}, error) {
	switch spec.kind {
	case ValueBool:
		b, ok := value.(bool)
		if !ok {
			return nil, invalidHint(key, "expected bool, got %T", value)
		}
		return b, nil

	case ValueString:
		s, ok := value.(string)
		if !ok {
			return nil, invalidHint(key, "expected string, got %T", value)
		}
		if key == HintCharacterSet {
			cs, err := charset.Lookup(s)
			if err != nil {
				return nil, invalidHint(key, "%v", err)
			}
			return cs.Name, nil
		}
		return s, nil

	case ValueEnum:
		s, ok := value.(string)
		if !ok {
			return nil, invalidHint(key, "expected one of %v, got %T", spec.enum, value)
		}
		upper := strings.ToUpper(s)
		for _, e := range spec.enum {
			if e == upper {
				return e, nil
			}
		}
		return nil, invalidHint(key, "expected one of %v, got %q", spec.enum, s)

	case ValueInt:
		n, ok := toInt(value)
		if !ok {
			return nil, invalidHint(key, "expected integer, got %T", value)
		}
		if n < spec.min || n > spec.max {
			return nil, invalidHint(key, "%d out of range [%d, %d]", n, spec.min, spec.max)
		}
		return n, nil

	case ValueStringSet:
		names, ok := toStrings(value)
		if !ok {
			return nil, invalidHint(key, "expected set of strings, got %T", value)
		}
		if key == HintPossibleFormats {
			return parseFormatSet(key, names)
		}
		return names, nil
	}
	return nil, invalidHint(key, "unsupported value kind %s", spec.kind)
}

func toInt(value interface{}) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}

func toStrings(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []Format:
		out := make([]string, len(v))
		for i, f := range v {
			out[i] = f.String()
		}
		return out, true
	case []interface{}:
		out := make([]string, len(v))
		for i, e := range v {
			switch s := e.(type) {
			case string:
				out[i] = s
			case Format:
				out[i] = s.String()
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func parseFormatSet(key HintKey, names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	formats := make([]Format, 0, len(names))
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, invalidHint(key, "%v", err)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Direction returns the direction the table was built for.
func (t *HintTable) Direction() Direction {
	if t == nil {
		return 0
	}
	return t.dir
}

// Get returns the value stored for key.
func (t *HintTable) Get(key HintKey) (interface{}, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	if fs, isSet := v.([]Format); isSet {
		return append([]Format(nil), fs...), ok
	}
	return v, ok
}

// Has reports whether key is present.
func (t *HintTable) Has(key HintKey) bool {
	_, ok := t.Get(key)
	return ok
}

// Bool returns the value of a boolean hint, false when absent.
func (t *HintTable) Bool(key HintKey) bool {
	v, _ := t.Get(key)
	b, _ := v.(bool)
	return b
}

// StringValue returns the value of a string or enum hint.
func (t *HintTable) StringValue(key HintKey) (string, bool) {
	v, ok := t.Get(key)
	s, isString := v.(string)
	return s, ok && isString
}

// Int returns the value of an integer hint.
func (t *HintTable) Int(key HintKey) (int, bool) {
	v, ok := t.Get(key)
	n, isInt := v.(int)
	return n, ok && isInt
}

// Formats returns POSSIBLE_FORMATS, or nil when absent.
func (t *HintTable) Formats() []Format {
	v, _ := t.Get(HintPossibleFormats)
	fs, _ := v.([]Format)
	return fs
}

// Keys returns the keys present in the table in declaration order.
func (t *HintTable) Keys() []HintKey {
	if t == nil {
		return nil
	}
	keys := make([]HintKey, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of hints in the table.
func (t *HintTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

package rxinggo

import "sort"

// Reader decodes one symbology from a luminance source. A Reader reports
// failure with any non-nil error; the dispatcher treats every failure as
// "try the next candidate".
type Reader interface {
	Decode(source LuminanceSource, hints *HintTable) (*Result, error)
}

// Writer encodes contents into the bare module grid of one symbology,
// without any quiet zone.
type Writer interface {
	Encode(contents string, hints *HintTable) (*BitMatrix, error)
}

// WriterSpec describes an encode capability.
type WriterSpec struct {
	// New creates a Writer for one encode call.
	New func() Writer

	// Hints lists the encode hints the format accepts.
	Hints []HintKey

	// QuietZone is the margin in modules applied when MARGIN is absent.
	QuietZone int
}

// FormatInfo describes what a registry can do with a format.
type FormatInfo struct {
	Format      Format
	Decodable   bool
	Encodable   bool
	EncodeHints []HintKey
}

// Registry maps formats to their decode and encode capabilities. Registries
// are populated before use and only read afterwards, so a populated Registry
// is safe for concurrent use.
type Registry struct {
	readers map[Format]func() Reader
	writers map[Format]WriterSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[Format]func() Reader),
		writers: make(map[Format]WriterSpec),
	}
}

// RegisterReader registers a reader factory for the given format.
func (r *Registry) RegisterReader(format Format, factory func() Reader) {
	r.readers[format] = factory
}

// RegisterWriter registers an encode capability for the given format.
func (r *Registry) RegisterWriter(format Format, spec WriterSpec) {
	r.writers[format] = spec
}

// Decodable reports whether format has a reader.
func (r *Registry) Decodable(format Format) bool {
	_, ok := r.readers[format]
	return ok
}

// Encodable reports whether format has a writer.
func (r *Registry) Encodable(format Format) bool {
	_, ok := r.writers[format]
	return ok
}

// Describe returns the capabilities registered for format.
func (r *Registry) Describe(format Format) FormatInfo {
	info := FormatInfo{Format: format, Decodable: r.Decodable(format)}
	if spec, ok := r.writers[format]; ok {
		info.Encodable = true
		info.EncodeHints = append([]HintKey(nil), spec.Hints...)
		sort.Slice(info.EncodeHints, func(i, j int) bool { return info.EncodeHints[i] < info.EncodeHints[j] })
	}
	return info
}

// Formats describes every known format.
func (r *Registry) Formats() []FormatInfo {
	all := AllFormats()
	infos := make([]FormatInfo, 0, len(all))
	for _, f := range all {
		infos = append(infos, r.Describe(f))
	}
	return infos
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry that format packages register
// themselves into from init().
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterReader registers a reader factory in the default registry. It
// should be called from an init() function in format-specific packages.
func RegisterReader(format Format, factory func() Reader) {
	defaultRegistry.RegisterReader(format, factory)
}

// RegisterWriter registers an encode capability in the default registry. It
// should be called from an init() function in format-specific packages.
func RegisterWriter(format Format, spec WriterSpec) {
	defaultRegistry.RegisterWriter(format, spec)
}

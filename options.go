package rxinggo

import (
	"log/slog"
	"time"
)

// Observer receives decode and encode outcomes, typically to export metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveAttempt is called after each per-format decode attempt.
	ObserveAttempt(format Format, pass string, err error)

	// ObserveDecode is called once per Decode call.
	ObserveDecode(err error, elapsed time.Duration)

	// ObserveEncode is called once per Encode call.
	ObserveEncode(format Format, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(Format, string, error)       {}
func (nopObserver) ObserveDecode(error, time.Duration)         {}
func (nopObserver) ObserveEncode(Format, error, time.Duration) {}

type options struct {
	registry *Registry
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// Option configures a Decoder or an Encoder.
type Option func(*options)

// WithRegistry selects the capability registry. The default is
// DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver installs an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithClock sets the clock used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		registry: defaultRegistry,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

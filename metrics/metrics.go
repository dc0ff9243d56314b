// Package metrics exports decode and encode outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rxinggo "github.com/ericlevine/rxinggo"
)

// Collector implements rxinggo.Observer.
type Collector struct {
	attempts       *prometheus.CounterVec
	decodes        *prometheus.CounterVec
	decodeDuration prometheus.Histogram
	encodes        *prometheus.CounterVec
	encodeDuration *prometheus.HistogramVec
}

var _ rxinggo.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxing_decode_attempts_total",
				Help: "Per-format decode attempts",
			},
			[]string{"format", "pass", "result"},
		),
		decodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxing_decode_total",
				Help: "Decode calls by outcome",
			},
			[]string{"outcome"},
		),
		decodeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rxing_decode_duration_seconds",
				Help:    "Decode call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		encodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxing_encode_total",
				Help: "Encode calls by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		encodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rxing_encode_duration_seconds",
				Help:    "Encode call duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"format"},
		),
	}
}

// Outcome returns the label value recorded for err: "ok", or the error kind.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := rxinggo.KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

func (c *Collector) ObserveAttempt(format rxinggo.Format, pass string, err error) {
	result := "hit"
	if err != nil {
		result = "miss"
	}
	c.attempts.WithLabelValues(format.String(), pass, result).Inc()
}

func (c *Collector) ObserveDecode(err error, elapsed time.Duration) {
	c.decodes.WithLabelValues(Outcome(err)).Inc()
	c.decodeDuration.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveEncode(format rxinggo.Format, err error, elapsed time.Duration) {
	c.encodes.WithLabelValues(format.String(), Outcome(err)).Inc()
	c.encodeDuration.WithLabelValues(format.String()).Observe(elapsed.Seconds())
}

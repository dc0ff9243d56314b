package metrics

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxinggo "github.com/ericlevine/rxinggo"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "NotFound", Outcome(rxinggo.ErrNotFound))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveAttempt(rxinggo.FormatQRCode, rxinggo.PassOriginal, errors.New("miss"))
	c.ObserveAttempt(rxinggo.FormatQRCode, rxinggo.PassOriginal, nil)
	c.ObserveAttempt(rxinggo.FormatEAN13, rxinggo.PassRotated, errors.New("miss"))
	c.ObserveDecode(nil, 3*time.Millisecond)
	c.ObserveDecode(rxinggo.ErrNotFound, time.Millisecond)
	c.ObserveEncode(rxinggo.FormatCode128, nil, time.Microsecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.attempts.WithLabelValues("QR_CODE", "original", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.attempts.WithLabelValues("QR_CODE", "original", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.attempts.WithLabelValues("EAN_13", "rotated180", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decodes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decodes.WithLabelValues("NotFound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.encodes.WithLabelValues("CODE_128", "ok")))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestCollectorTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveDecode(rxinggo.ErrNotFound, time.Millisecond)

	path := filepath.Join(t.TempDir(), "rxing.prom")
	require.NoError(t, prometheus.WriteToTextfile(path, reg))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP rxing_decode_total Decode calls by outcome
# TYPE rxing_decode_total counter
rxing_decode_total{outcome="NotFound"} 1
`), "rxing_decode_total")
	assert.NoError(t, err)
}

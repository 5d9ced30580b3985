package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest("GET", "/list/head", 200, 3*time.Millisecond)
	c.ObserveRequest("GET", "/list/head", 200, time.Millisecond)
	c.ObserveRequest("GET", "/list/head", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/list/head", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/list/head", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.httpDuration))
}

func TestRecordListOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordListOperation("head", OutcomeSuccess, 2)
	c.RecordListOperation("tail", OutcomeInvalid, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.listOperations.WithLabelValues("head", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.listOperations.WithLabelValues("tail", OutcomeInvalid)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.listItemsServed), "only successful calls observe item counts")
}

func TestRecordSecretOverlay(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSecretOverlay(OutcomeSuccess, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.secretOverlay.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.secretKeys))
}

func TestCollectorsAreIsolatedPerRegistry(t *testing.T) {
	require.NotPanics(t, func() {
		NewCollector(prometheus.NewRegistry())
		NewCollector(prometheus.NewRegistry())
	})
}

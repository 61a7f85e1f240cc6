package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordReceived("MSBB")
	m.RecordReceived("MSBB")
	m.RecordReceived("")
	m.RecordError("extra_fields")
	m.ContactsSaved(3)
	m.ContactsSaved(0)
	m.BatchFailed(1)
	m.BatchFailed(-2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Received.WithLabelValues("MSBB")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Received.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("extra_fields")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Saved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

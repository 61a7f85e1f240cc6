// Package metrics records intake and contact save counters with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

// Metrics holds the medic counters.
type Metrics struct {
	Received *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Saved    prometheus.Counter
	Failed   prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Received: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medic_sms_received_total",
			Help: "SMS form submissions parsed, by form code",
		}, []string{"form"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medic_record_errors_total",
			Help: "Errors attached to data records, by code",
		}, []string{"code"}),
		Saved: f.NewCounter(prometheus.CounterOpts{
			Name: "medic_contacts_saved_total",
			Help: "Contact documents written by contact saves",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "medic_batch_failures_total",
			Help: "Documents rejected by bulk writes",
		}),
	}
}

// RecordReceived counts a parsed submission.
func (m *Metrics) RecordReceived(form string) {
	if form == "" {
		form = "unknown"
	}
	m.Received.WithLabelValues(form).Inc()
}

// RecordError counts a record error.
func (m *Metrics) RecordError(code string) {
	m.Errors.WithLabelValues(code).Inc()
}

// ContactsSaved counts written contact documents.
func (m *Metrics) ContactsSaved(n int) {
	if n > 0 {
		m.Saved.Add(float64(n))
	}
}

// BatchFailed counts rejected documents.
func (m *Metrics) BatchFailed(n int) {
	if n > 0 {
		m.Failed.Add(float64(n))
	}
}

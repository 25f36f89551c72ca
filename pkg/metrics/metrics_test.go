package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/x", "200", time.Millisecond)
		m.ObserveQuery("select", time.Millisecond, nil)
		m.SetConnections("open", 3)
		m.ObserveTxAttempt("committed")
		m.ObserveBooking("created")
		m.ObserveOutboxPublished("booking.created", 1)
	})
	assert.Equal(t, "", m.ServiceName())
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("appointments", prometheus.NewRegistry())

	m.ObserveBooking("created")
	m.ObserveBooking("created")
	m.ObserveBooking("conflict")
	m.ObserveQuery("insert", time.Millisecond, errors.New("boom"))
	m.ObserveOutboxPublished("booking.created", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("appointments", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("appointments", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("appointments", "insert")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("appointments", "booking.created")))
}

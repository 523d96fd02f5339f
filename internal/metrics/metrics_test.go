package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqnet/su/internal/fault"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordMessageSequenced()
	m.RecordMessageSequenced()
	m.ObserveSequenceDuration(10 * time.Millisecond)
	m.RecordRouteDecision("route_item", "redirect")
	m.RecordAssignment()
	m.RecordItemWritten("Message")
	m.RecordRead("log")
	m.RecordFault(fault.KindNotFound)
	m.RecordProcessCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MessagesSequenced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteDecisions.WithLabelValues("route_item", "redirect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Faults.WithLabelValues("NOT_FOUND")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "collectors should be registered on the provided registerer")
}

func TestNilMetricsAreSilent(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordMessageSequenced()
		m.ObserveSequenceDuration(time.Second)
		m.RecordProcessCreated()
		m.RecordRouteDecision("route_process_id", "local")
		m.RecordAssignment()
		m.RecordItemWritten("Process")
		m.RecordRead("message")
		m.RecordFault(fault.KindStore)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) }, "same registerer cannot hold two collector sets")
}

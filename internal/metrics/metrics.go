// Package metrics defines the prometheus collectors for the scheduler
// unit: sequencing throughput and latency, routing decisions, assignment
// counts, and fault rates. Exposition is the embedder's concern; this
// package only registers collectors on a provided registerer.
//
// All Record methods are safe on a nil *Metrics, so components can treat
// instrumentation as optional without guarding every call site.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/seqnet/su/internal/fault"
)

// Metrics holds every collector the unit emits.
type Metrics struct {
	MessagesSequenced prometheus.Counter
	SequenceDuration  prometheus.Histogram
	ProcessesCreated  prometheus.Counter
	RouteDecisions    *prometheus.CounterVec
	Assignments       prometheus.Counter
	ItemsWritten      *prometheus.CounterVec
	Reads             *prometheus.CounterVec
	Faults            *prometheus.CounterVec
}

// New creates the unit's collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesSequenced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "sequencer",
			Name:      "messages_sequenced_total",
			Help:      "Messages assigned a nonce and persisted",
		}),

		SequenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "su",
			Subsystem: "sequencer",
			Name:      "sequence_duration_seconds",
			Help:      "Time from entering a process region to durable persistence",
			Buckets:   prometheus.DefBuckets,
		}),

		ProcessesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "unit",
			Name:      "processes_created_total",
			Help:      "Process records created",
		}),

		RouteDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "router",
			Name:      "decisions_total",
			Help:      "Routing decisions by operation and outcome",
		}, []string{"operation", "outcome"}),

		Assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "router",
			Name:      "assignments_total",
			Help:      "Processes assigned to pool schedulers",
		}),

		ItemsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "unit",
			Name:      "items_written_total",
			Help:      "Items accepted by type",
		}, []string{"type"}),

		Reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "unit",
			Name:      "reads_total",
			Help:      "Read operations by kind",
		}, []string{"kind"}),

		Faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "su",
			Subsystem: "unit",
			Name:      "faults_total",
			Help:      "Classified failures by kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.MessagesSequenced,
		m.SequenceDuration,
		m.ProcessesCreated,
		m.RouteDecisions,
		m.Assignments,
		m.ItemsWritten,
		m.Reads,
		m.Faults,
	)

	return m
}

// RecordMessageSequenced increments the sequenced message counter.
func (m *Metrics) RecordMessageSequenced() {
	if m == nil {
		return
	}
	m.MessagesSequenced.Inc()
}

// ObserveSequenceDuration records one region-held sequencing duration.
func (m *Metrics) ObserveSequenceDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.SequenceDuration.Observe(d.Seconds())
}

// RecordProcessCreated increments the process creation counter.
func (m *Metrics) RecordProcessCreated() {
	if m == nil {
		return
	}
	m.ProcessesCreated.Inc()
}

// RecordRouteDecision counts one routing decision. outcome is "local",
// "redirect", or "error".
func (m *Metrics) RecordRouteDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.RouteDecisions.WithLabelValues(operation, outcome).Inc()
}

// RecordAssignment increments the load-balanced assignment counter.
func (m *Metrics) RecordAssignment() {
	if m == nil {
		return
	}
	m.Assignments.Inc()
}

// RecordItemWritten counts an accepted item by its Type tag.
func (m *Metrics) RecordItemWritten(itemType string) {
	if m == nil {
		return
	}
	m.ItemsWritten.WithLabelValues(itemType).Inc()
}

// RecordRead counts a read operation by kind ("message", "process", "log").
func (m *Metrics) RecordRead(kind string) {
	if m == nil {
		return
	}
	m.Reads.WithLabelValues(kind).Inc()
}

// RecordFault counts a classified failure.
func (m *Metrics) RecordFault(kind fault.Kind) {
	if m == nil {
		return
	}
	m.Faults.WithLabelValues(string(kind)).Inc()
}

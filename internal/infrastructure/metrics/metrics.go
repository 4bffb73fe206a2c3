package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sagaapp"

// Outcomes recorded for a command.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeConflict   = "conflict"
	OutcomeStorage    = "storage"
	OutcomeError      = "error"
)

// Metrics tracks the command pipeline and the outbox relay.
type Metrics struct {
	Commands           *prometheus.CounterVec
	CommandDuration    *prometheus.HistogramVec
	PublishFailures    *prometheus.CounterVec
	OutboxDispatched   prometheus.Counter
	OutboxFailed       prometheus.Counter
	OutboxDead         prometheus.Counter
	ProjectionsIndexed prometheus.Counter
	ProjectionsSkipped prometheus.Counter
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer in
// binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command and outcome",
		}, []string{"command", "outcome"}),
		CommandDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"command"}),
		PublishFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Events whose direct publish failed after the aggregate was stored",
		}, []string{"type"}),
		OutboxDispatched: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_dispatched_total",
			Help:      "Outbox records delivered to the broker",
		}),
		OutboxFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_failed_attempts_total",
			Help:      "Outbox delivery attempts that failed",
		}),
		OutboxDead: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_dead_total",
			Help:      "Outbox records given up on after the maximum attempts",
		}),
		ProjectionsIndexed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_indexed_total",
			Help:      "Product projections written by the projector",
		}),
		ProjectionsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_duplicate_total",
			Help:      "Redelivered envelopes skipped by the projector",
		}),
	}
}

// ObserveCommand records one command execution.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCommand(command, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncPublishFailure(typeTag string) {
	if m == nil {
		return
	}
	m.PublishFailures.WithLabelValues(typeTag).Inc()
}

func (m *Metrics) IncOutboxDispatched() {
	if m != nil {
		m.OutboxDispatched.Inc()
	}
}

func (m *Metrics) IncOutboxFailed() {
	if m != nil {
		m.OutboxFailed.Inc()
	}
}

func (m *Metrics) IncOutboxDead() {
	if m != nil {
		m.OutboxDead.Inc()
	}
}

func (m *Metrics) IncProjectionIndexed() {
	if m != nil {
		m.ProjectionsIndexed.Inc()
	}
}

func (m *Metrics) IncProjectionSkipped() {
	if m != nil {
		m.ProjectionsSkipped.Inc()
	}
}

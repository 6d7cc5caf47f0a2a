package metrics

import (
	"context"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "incident_trust"

// Metrics is nil-safe: every method is a no-op on a nil receiver so the
// services can run without a registry in tests.
type Metrics struct {
	transitions   *prometheus.CounterVec
	upvotes       *prometheus.CounterVec
	guestActions  *prometheus.CounterVec
	nearbyLatency prometheus.Histogram
	nearbyResults prometheus.Histogram
	scoreWrites   *prometheus.CounterVec
	auditDropped  prometheus.Counter
	auditSent     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Status transition attempts by source, target and result",
		}, []string{"from", "to", "result"}),
		upvotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upvotes_total",
			Help:      "Upvote mutations by operation and result",
		}, []string{"op", "result"}),
		guestActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_actions_total",
			Help:      "Guest quota consumption attempts by result",
		}, []string{"result"}),
		nearbyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "nearby_query_duration_seconds",
			Help:      "Latency of proximity queries",
			Buckets:   prometheus.DefBuckets,
		}),
		nearbyResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "nearby_query_results",
			Help:      "Number of incidents returned by proximity queries",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		scoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_writes_total",
			Help:      "Verification score writes by result",
		}, []string{"result"}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_dropped_total",
			Help:      "Audit events that could not be recorded",
		}),
		auditSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_deliveries_total",
			Help:      "Audit events forwarded to the sink by result",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.transitions,
			m.upvotes,
			m.guestActions,
			m.nearbyLatency,
			m.nearbyResults,
			m.scoreWrites,
			m.auditDropped,
			m.auditSent,
		)
	}
	return m
}

func (m *Metrics) Transition(from, to, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to, result).Inc()
}

func (m *Metrics) Upvote(op, result string) {
	if m == nil {
		return
	}
	m.upvotes.WithLabelValues(op, result).Inc()
}

func (m *Metrics) GuestAction(result string) {
	if m == nil {
		return
	}
	m.guestActions.WithLabelValues(result).Inc()
}

func (m *Metrics) Nearby(started time.Time, results int) {
	if m == nil {
		return
	}
	m.nearbyLatency.Observe(time.Since(started).Seconds())
	m.nearbyResults.Observe(float64(results))
}

func (m *Metrics) ScoreWrite(result string) {
	if m == nil {
		return
	}
	m.scoreWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) AuditDropped() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
}

func (m *Metrics) AuditDelivery(result string) {
	if m == nil {
		return
	}
	m.auditSent.WithLabelValues(result).Inc()
}

// RegisterQueueDepth exposes the length of a backlog, read at scrape time.
// A failed read reports NaN.
func RegisterQueueDepth(reg prometheus.Registerer, name, help string, depth func(ctx context.Context) (int64, error)) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		n, err := depth(ctx)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}))
}

package dialmetrics

import "github.com/prometheus/client_golang/prometheus"

// -------------------------------------------------------------------------
// Prometheus Metric Constants
// -------------------------------------------------------------------------

const (
	namespace = "farout"
	subsystem = "dial"
)

// Label names for dial metrics.
const (
	labelProto  = "proto"
	labelReason = "reason"
	labelClass  = "class"
)

// -------------------------------------------------------------------------
// Collector — Prometheus dial metrics
// -------------------------------------------------------------------------

// Collector holds all connection-driver Prometheus metrics.
//
//   - InFlight tracks connections currently outstanding, across every
//     Driver sharing the process-wide loop.
//   - Dispatched and Established count lifecycle milestones per protocol.
//   - Completed breaks down how endpoints ended: eof, timeout, error, or
//     established (the exchange completed and a callback closed it).
//   - Errors counts dial-time vs. read/write-time failures separately.
type Collector struct {
	// InFlight is the number of connection attempts currently outstanding.
	InFlight prometheus.Gauge

	// Dispatched counts every connection attempt a Driver has started.
	Dispatched *prometheus.CounterVec

	// Established counts every connection attempt that reached
	// OnEstablished.
	Established *prometheus.CounterVec

	// Completed counts how endpoints ended, labeled by terminal reason.
	Completed *prometheus.CounterVec

	// Errors counts failures, labeled by the phase they occurred in.
	Errors *prometheus.CounterVec
}

// NewCollector creates a Collector with all dial metrics registered against
// the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
//
// All metrics are created with the "farout_dial_" prefix (namespace_subsystem)
// to avoid collisions with other exporters.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.InFlight,
		c.Dispatched,
		c.Established,
		c.Completed,
		c.Errors,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	return &Collector{
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "in_flight",
			Help:      "Number of connection attempts currently outstanding.",
		}),

		Dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatched_total",
			Help:      "Total connection attempts dispatched.",
		}, []string{labelProto}),

		Established: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "established_total",
			Help:      "Total connection attempts that reached OnEstablished.",
		}, []string{labelProto}),

		Completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "completed_total",
			Help:      "Total endpoints completed, labeled by terminal reason.",
		}, []string{labelReason}),

		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total errors, labeled by the phase they occurred in.",
		}, []string{labelClass}),
	}
}

// -------------------------------------------------------------------------
// Lifecycle
// -------------------------------------------------------------------------

// IncDispatched increments the dispatched counter for proto.
func (c *Collector) IncDispatched(proto string) {
	c.Dispatched.WithLabelValues(proto).Inc()
}

// IncEstablished increments the established counter for proto.
func (c *Collector) IncEstablished(proto string) {
	c.Established.WithLabelValues(proto).Inc()
}

// IncInFlight increments the in-flight gauge by one.
func (c *Collector) IncInFlight() { c.InFlight.Inc() }

// DecInFlight decrements the in-flight gauge by one.
func (c *Collector) DecInFlight() { c.InFlight.Dec() }

// RecordCompletion increments the completed counter for the given terminal
// reason: "eof", "timeout", "error", or "established".
func (c *Collector) RecordCompletion(reason string) {
	c.Completed.WithLabelValues(reason).Inc()
}

// IncError increments the error counter for the given failure class: "dial",
// "read", or "write".
func (c *Collector) IncError(class string) {
	c.Errors.WithLabelValues(class).Inc()
}

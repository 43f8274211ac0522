// Package metrics is the Prometheus-backed implementation of
// reclaim.Metrics. It is kept out of package reclaim so the arbitration
// core has no direct dependency on the Prometheus client.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reclaimAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediarm",
		Name:      "reclaim_attempts_total",
		Help:      "Total number of reclaimResource calls, partitioned by outcome.",
	}, []string{"success"})

	reclaimFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediarm",
		Name:      "reclaim_failures_total",
		Help:      "Total number of failed reclaimResource calls, partitioned by reason.",
	}, []string{"reason"})

	reclaimVictimsPerCall = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mediarm",
		Name:      "reclaim_victims_per_call",
		Help:      "Number of client callbacks invoked per successful reclaim.",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
	})

	registeredClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mediarm",
		Name:      "registered_clients",
		Help:      "Current number of registered clients.",
	})
)

// Collector implements reclaim.Metrics.
type Collector struct{}

// New returns a Collector. Its metrics are registered process-wide at
// package init time via promauto, so there is nothing to wire beyond
// constructing one and handing it to reclaim.New.
func New() *Collector {
	return &Collector{}
}

// ObserveReclaim records the outcome of one reclaimResource call.
func (Collector) ObserveReclaim(success bool, failureReason string, victims int) {
	reclaimAttemptsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	if !success {
		reason := failureReason
		if reason == "" {
			reason = "unknown"
		}
		reclaimFailuresTotal.WithLabelValues(reason).Inc()
		return
	}
	reclaimVictimsPerCall.Observe(float64(victims))
}

// SetRegisteredClients updates the registered-clients gauge from a
// registry snapshot count. Called by the daemon after each addResource /
// removeResource so the gauge stays in sync without reclaim needing to
// know about it.
func SetRegisteredClients(n int) {
	registeredClients.Set(float64(n))
}

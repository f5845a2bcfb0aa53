// Package metrics exposes Prometheus counters for the ticket workflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the slice of metrics the transport layer reports to.
type Recorder interface {
	RecordValidation(result string)
	RecordRedemption(result string)
	RecordScanLatency(d time.Duration)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	validations *prometheus.CounterVec
	redemptions *prometheus.CounterVec
	scanLatency prometheus.Histogram

	registry *prometheus.Registry
}

// NewCollector builds a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventflow_ticket_validations_total",
			Help: "Ticket validation outcomes by result.",
		}, []string{"result"}),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventflow_ticket_redemptions_total",
			Help: "Ticket redemption outcomes by result.",
		}, []string{"result"}),
		scanLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventflow_scan_duration_seconds",
			Help:    "End-to-end latency of scan requests.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: reg,
	}

	reg.MustRegister(c.validations, c.redemptions, c.scanLatency)
	return c
}

func (c *Collector) RecordValidation(result string) {
	c.validations.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRedemption(result string) {
	c.redemptions.WithLabelValues(result).Inc()
}

func (c *Collector) RecordScanLatency(d time.Duration) {
	c.scanLatency.Observe(d.Seconds())
}

// Handler serves the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Nop discards all observations; used in tests.
type Nop struct{}

func (Nop) RecordValidation(string)         {}
func (Nop) RecordRedemption(string)         {}
func (Nop) RecordScanLatency(time.Duration) {}

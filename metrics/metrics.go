// Package metrics instruments EDINET API traffic with Prometheus collectors.
// A CLI run has no scrape endpoint, so results are written to a node
// exporter textfile when configured.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the metrics recorded during a run
type Collector struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	documents *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edinet_requests_total",
				Help: "Total number of EDINET API requests by status code.",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edinet_request_duration_seconds",
				Help:    "EDINET API request latency.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"code", "method"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edinet_documents_total",
				Help: "Documents processed by the download command.",
			},
			[]string{"format", "result"},
		),
	}

	for _, col := range []prometheus.Collector{c.requests, c.duration, c.documents} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return c, nil
}

// InstrumentClient returns a copy of base whose transport records request
// counts and latency. A nil base uses http.DefaultTransport.
func (c *Collector) InstrumentClient(base *http.Client) *http.Client {
	var client http.Client
	if base != nil {
		client = *base
	}

	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	client.Transport = promhttp.InstrumentRoundTripperCounter(c.requests,
		promhttp.InstrumentRoundTripperDuration(c.duration, next))
	return &client
}

// Document results recorded by ObserveDocument
const (
	ResultDownloaded = "downloaded"
	ResultSkipped    = "skipped"
	ResultFailed     = "failed"
)

// ObserveDocument counts one processed document
func (c *Collector) ObserveDocument(format, result string) {
	c.documents.WithLabelValues(format, result).Inc()
}

// WriteTextfile writes everything in g to path in the text exposition format
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package metrics exports code generation statistics to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/ir"
)

// Namespace prefixes every metric name.
const Namespace = "shadergraph"

// DefaultListen is the address the CLI serves metrics on.
const DefaultListen = "127.0.0.1:9464"

// Collector records generation passes. It implements glsl.Observer and
// prometheus.Collector, and is safe for concurrent use.
type Collector struct {
	evaluations  *prometheus.CounterVec
	passes       *prometheus.CounterVec
	statements   *prometheus.HistogramVec
	hoisted      *prometheus.GaugeVec
	declarations *prometheus.GaugeVec
}

var (
	_ glsl.Observer        = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// New returns a collector. It still needs to be registered.
func New() *Collector {
	return &Collector{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "node_evaluations_total",
				Help:      "Number of node evaluations.",
			},
			[]string{"stage", "archetype"},
		),
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "passes_total",
				Help:      "Number of finished generation passes.",
			},
			[]string{"stage"},
		),
		statements: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "pass_statements",
				Help:      "Statements emitted into main per pass.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"stage"},
		),
		hoisted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "hoisted_variables",
				Help:      "Variables hoisted by the last pass.",
			},
			[]string{"stage"},
		),
		declarations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "declarations",
				Help:      "Global declarations emitted by the last pass.",
			},
			[]string{"stage"},
		),
	}
}

// Register adds the collector to r.
func (c *Collector) Register(r prometheus.Registerer) error {
	if err := r.Register(c); err != nil {
		return errors.Wrap(err, "register shadergraph metrics")
	}
	return nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.evaluations.Describe(ch)
	c.passes.Describe(ch)
	c.statements.Describe(ch)
	c.hoisted.Describe(ch)
	c.declarations.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.evaluations.Collect(ch)
	c.passes.Collect(ch)
	c.statements.Collect(ch)
	c.hoisted.Collect(ch)
	c.declarations.Collect(ch)
}

// NodeEvaluated implements glsl.Observer.
func (c *Collector) NodeEvaluated(stage ir.ShaderStage, _ graph.NodeID, archetype string) {
	c.evaluations.WithLabelValues(stage.String(), archetype).Inc()
}

// PassFinished implements glsl.Observer.
func (c *Collector) PassFinished(stage ir.ShaderStage, stats glsl.Stats) {
	s := stage.String()
	c.passes.WithLabelValues(s).Inc()
	c.statements.WithLabelValues(s).Observe(float64(stats.Statements))
	c.hoisted.WithLabelValues(s).Set(float64(stats.Hoisted))
	c.declarations.WithLabelValues(s).Set(float64(stats.Declarations))
}

// Handler serves the metrics of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, log hclog.Logger) error {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if addr == "" {
		addr = DefaultListen
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrapf(err, "metrics server on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown metrics server")
	}
	return nil
}

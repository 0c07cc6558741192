/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package metrics exposes FalcoTCP's reactor and pool health as Prometheus
// collectors: gauges sampled on demand from a live Stats snapshot, and
// counters incremented inline by the component that owns the event.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReactorStats is the subset of reactor.Stats the collector samples. It is
// a plain struct rather than an import on the reactor package so metrics
// has no dependency on the component it measures; reactor.Stats satisfies
// it structurally.
type ReactorStats struct {
	MaxClients       int
	OpenClients      int
	OverflowRejected uint64
}

// ReactorCollector reports a reactor's current client occupancy on every
// scrape by calling Sample, which the caller wires to reactor.Stats.
type ReactorCollector struct {
	Sample func() ReactorStats

	maxClients  *prometheus.Desc
	openClients *prometheus.Desc
	overflow    *prometheus.Desc
}

// NewReactorCollector builds a collector that calls sample on every scrape.
func NewReactorCollector(sample func() ReactorStats) *ReactorCollector {
	return &ReactorCollector{
		Sample: sample,
		maxClients: prometheus.NewDesc(
			"falcotcp_reactor_max_clients",
			"Configured ceiling on simultaneously allocated client records.",
			nil, nil,
		),
		openClients: prometheus.NewDesc(
			"falcotcp_reactor_open_clients",
			"Client records currently allocated (any non-idle state).",
			nil, nil,
		),
		overflow: prometheus.NewDesc(
			"falcotcp_reactor_overflow_rejected_total",
			"Accepted connections closed immediately because MaxClients was reached.",
			nil, nil,
		),
	}
}

func (c *ReactorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxClients
	ch <- c.openClients
	ch <- c.overflow
}

func (c *ReactorCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.Sample()
	ch <- prometheus.MustNewConstMetric(c.maxClients, prometheus.GaugeValue, float64(s.MaxClients))
	ch <- prometheus.MustNewConstMetric(c.openClients, prometheus.GaugeValue, float64(s.OpenClients))
	ch <- prometheus.MustNewConstMetric(c.overflow, prometheus.CounterValue, float64(s.OverflowRejected))
}

// PoolMetrics are the counters a Pool increments inline as it mitigates
// broken entries and exhausts its retry budget. Unlike ReactorCollector
// these are push-style: the pool holds a *PoolMetrics and calls the Inc
// methods directly from do/mitigate, since a pool has no single goroutine
// to sample from on a scrape.
type PoolMetrics struct {
	Size       prometheus.Gauge
	Mitigated  prometheus.Counter
	Exhausted  prometheus.Counter
	RoundTrips prometheus.Counter
}

// NewPoolMetrics builds and registers a PoolMetrics on reg. reg may be a
// *prometheus.Registry or prometheus.DefaultRegisterer.
func NewPoolMetrics(reg prometheus.Registerer) *PoolMetrics {
	m := &PoolMetrics{
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "falcotcp_pool_size",
			Help: "Number of entries currently held by the client pool.",
		}),
		Mitigated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "falcotcp_pool_mitigated_total",
			Help: "Pool entries evicted and redialed after a broken-pipe write/read.",
		}),
		Exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "falcotcp_pool_exhausted_total",
			Help: "Requests that gave up after exceeding MaxMitigation retries.",
		}),
		RoundTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "falcotcp_pool_round_trips_total",
			Help: "Requests successfully completed through the pool.",
		}),
	}
	reg.MustRegister(m.Size, m.Mitigated, m.Exhausted, m.RoundTrips)
	return m
}

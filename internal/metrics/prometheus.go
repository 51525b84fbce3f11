// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package metrics exposes lumenhub's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every counter, gauge and histogram the node and the SLP
// store report.
type Metrics struct {
	// E1.31 wire/inflate metrics.
	WireErrorsTotal        *prometheus.CounterVec
	FramesDroppedTotal     *prometheus.CounterVec
	ArbitrationSwitchTotal *prometheus.CounterVec
	ActiveSources          prometheus.Gauge

	// SLP store metrics.
	SLPServicesTotal    prometheus.Gauge
	SLPURLsExpiredTotal prometheus.Counter
}

// NewMetrics constructs and registers every metric.
func NewMetrics() *Metrics {
	metrics := &Metrics{
		WireErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "e131_wire_errors_total",
			Help: "The total number of datagrams rejected at the wire or inflate layer",
		}, []string{"layer", "reason"}),
		FramesDroppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "e131_frames_dropped_total",
			Help: "The total number of well-formed frames dropped by node policy",
		}, []string{"universe", "reason"}),
		ArbitrationSwitchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "e131_arbitration_switches_total",
			Help: "The total number of times a universe's active source changed",
		}, []string{"universe"}),
		ActiveSources: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "e131_active_sources",
			Help: "The current number of universes with an active source",
		}),
		SLPServicesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slp_services_total",
			Help: "The current number of SLP service types with at least one live registration",
		}),
		SLPURLsExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slp_urls_expired_total",
			Help: "The total number of SLP registrations reclaimed by aging",
		}),
	}
	metrics.register()
	return metrics
}

func (m *Metrics) register() {
	prometheus.MustRegister(m.WireErrorsTotal)
	prometheus.MustRegister(m.FramesDroppedTotal)
	prometheus.MustRegister(m.ArbitrationSwitchTotal)
	prometheus.MustRegister(m.ActiveSources)
	prometheus.MustRegister(m.SLPServicesTotal)
	prometheus.MustRegister(m.SLPURLsExpiredTotal)
}

// RecordWireError records a datagram rejected at layer for reason. It is
// a no-op on a nil *Metrics, so callers that run without metrics enabled
// don't need to guard every call site.
func (m *Metrics) RecordWireError(layer, reason string) {
	if m == nil {
		return
	}
	m.WireErrorsTotal.WithLabelValues(layer, reason).Inc()
}

// RecordFrameDropped records a well-formed frame dropped for a universe.
func (m *Metrics) RecordFrameDropped(universe, reason string) {
	if m == nil {
		return
	}
	m.FramesDroppedTotal.WithLabelValues(universe, reason).Inc()
}

// RecordArbitrationSwitch records a source switch on a universe.
func (m *Metrics) RecordArbitrationSwitch(universe string) {
	if m == nil {
		return
	}
	m.ArbitrationSwitchTotal.WithLabelValues(universe).Inc()
}

// SetActiveSources sets the current count of universes with an active
// source.
func (m *Metrics) SetActiveSources(count float64) {
	if m == nil {
		return
	}
	m.ActiveSources.Set(count)
}

// SetSLPServicesTotal sets the current count of SLP service types with at
// least one live registration.
func (m *Metrics) SetSLPServicesTotal(count float64) {
	if m == nil {
		return
	}
	m.SLPServicesTotal.Set(count)
}

// IncrementSLPURLsExpired records urls reclaimed by an aging sweep.
func (m *Metrics) IncrementSLPURLsExpired(count float64) {
	if m == nil {
		return
	}
	m.SLPURLsExpiredTotal.Add(count)
}

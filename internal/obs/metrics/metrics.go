// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package metrics exposes Prometheus instrumentation for generation runs,
// registered against a caller-supplied registry and served over /metrics
// by whatever HTTP listener the caller wires up.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "codegen"

// PipelineMetrics holds every Prometheus metric a generation run emits.
// All operations are safe for concurrent use via Prometheus's own locking.
type PipelineMetrics struct {
	// RunsTotal counts completed generation runs. Labels: status (success, failure).
	RunsTotal *prometheus.CounterVec

	// PhaseDurationSeconds measures how long each phase takes. Labels: phase.
	PhaseDurationSeconds *prometheus.HistogramVec

	// PhaseErrorsTotal counts errors surfaced by a phase. Labels: phase.
	PhaseErrorsTotal *prometheus.CounterVec

	// FilesEmittedTotal counts rendered files by classification.
	FilesEmittedTotal *prometheus.CounterVec

	// CacheLookupsTotal counts AST cache lookups. Labels: result (hit, miss, error).
	CacheLookupsTotal *prometheus.CounterVec

	// ActiveRuns tracks generation runs currently in flight.
	ActiveRuns prometheus.Gauge
}

// NewPipelineMetrics constructs every metric and registers it against reg.
// reg defaults to prometheus.DefaultRegisterer when nil. Registration
// conflicts with an already-registered collector of the same name are
// tolerated rather than treated as fatal, so a caller can construct more
// than one PipelineMetrics against the same registry in tests.
func NewPipelineMetrics(reg prometheus.Registerer) (*PipelineMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PipelineMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of generation runs by outcome",
			},
			[]string{"status"},
		),
		PhaseDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of each pipeline phase in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"phase"},
		),
		PhaseErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phase_errors_total",
				Help:      "Total errors surfaced by each pipeline phase",
			},
			[]string{"phase"},
		),
		FilesEmittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_emitted_total",
				Help:      "Total files rendered by classification",
			},
			[]string{"classification"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total AST cache lookups by result",
			},
			[]string{"result"},
		),
		ActiveRuns: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_runs",
				Help:      "Number of generation runs currently executing",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.RunsTotal,
		m.PhaseDurationSeconds,
		m.PhaseErrorsTotal,
		m.FilesEmittedTotal,
		m.CacheLookupsTotal,
		m.ActiveRuns,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var alreadyErr prometheus.AlreadyRegisteredError
			if !errors.As(err, &alreadyErr) {
				return nil, err
			}
		}
	}

	return m, nil
}

// RecordRun records one completed generation run's outcome.
func (m *PipelineMetrics) RecordRun(succeeded bool) {
	status := "success"
	if !succeeded {
		status = "failure"
	}
	m.RunsTotal.WithLabelValues(status).Inc()
}

// RecordPhase records one phase's duration and error count.
func (m *PipelineMetrics) RecordPhase(phase string, seconds float64, errorCount int) {
	m.PhaseDurationSeconds.WithLabelValues(phase).Observe(seconds)
	if errorCount > 0 {
		m.PhaseErrorsTotal.WithLabelValues(phase).Add(float64(errorCount))
	}
}

// RecordFileEmitted records one rendered file by classification.
func (m *PipelineMetrics) RecordFileEmitted(classification string) {
	m.FilesEmittedTotal.WithLabelValues(classification).Inc()
}

// RecordCacheLookup records one AST cache lookup outcome: "hit", "miss", or "error".
func (m *PipelineMetrics) RecordCacheLookup(result string) {
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

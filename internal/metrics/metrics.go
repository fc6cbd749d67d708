// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package metrics counts session outcomes. A session is short-lived, so the
// counters are written once to a node_exporter textfile instead of served.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the session counters. A nil *Recorder records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	outcomes     *prometheus.CounterVec
	verdicts     *prometheus.CounterVec
	authFailures prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decom",
			Name:      "apps_processed_total",
			Help:      "Apps taken through the workflow, by terminal outcome.",
		}, []string{"outcome"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decom",
			Name:      "reach_verdicts_total",
			Help:      "DNS provider classifications seen in probe output.",
		}, []string{"verdict"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "decom",
			Name:      "auth_failures_total",
			Help:      "Sessions halted because the platform CLI was not authenticated.",
		}),
	}
	r.registry.MustRegister(r.outcomes, r.verdicts, r.authFailures)
	return r
}

func (r *Recorder) Outcome(outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Verdict(verdict string) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(verdict).Inc()
}

func (r *Recorder) AuthFailed() {
	if r == nil {
		return
	}
	r.authFailures.Inc()
}

// Gatherer exposes the registry for tests and exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all counters to path in the Prometheus text format.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes prometheus counters and gauges for the running
// server, scraped at GET /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "codealong",
		Name:      "active_sessions",
		Help:      "Number of sessions currently registered in the store.",
	})

	ActiveUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "codealong",
		Name:      "active_users",
		Help:      "Number of users currently connected across all sessions.",
	})

	LinesLockedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codealong",
		Name:      "lines_locked_total",
		Help:      "Total number of successful line lock acquisitions.",
	})

	LinesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codealong",
		Name:      "lines_created_total",
		Help:      "Total number of lines created across all sessions.",
	})

	DirectoryErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codealong",
		Name:      "directory_errors_total",
		Help:      "Total number of directory/file/line handler errors, by kind.",
	}, []string{"kind"})
)

// Register adds every metric above to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(ActiveSessions, ActiveUsers, LinesLockedTotal, LinesCreatedTotal, DirectoryErrorsTotal)
}

// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "preload"

var (
	emittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "headers_emitted_total",
			Help:      "Count of Link rel=preload headers appended to responses.",
		},
		[]string{"kind"},
	)
	skippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "candidates_skipped_total",
			Help:      "Count of queued handles skipped without a header, by reason.",
		},
		[]string{"kind", "reason"},
	)
	truncatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "passes_truncated_total",
			Help:      "Count of emission passes terminated early by the header budget.",
		},
		[]string{"kind"},
	)
)

var registerMetrics sync.Once

// RegisterMetrics registers the package's collectors
// with reg, or with the default registerer when reg is
// nil. Counters are updated regardless; registration
// only makes them scrapeable. Safe to call more than
// once.
func RegisterMetrics(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		reg.MustRegister(emittedTotal)
		reg.MustRegister(skippedTotal)
		reg.MustRegister(truncatedTotal)
	})
}

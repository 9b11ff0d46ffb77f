// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"net/http"

	"go.uber.org/zap"
)

// emitter runs one preload pass per registry against a
// shared live header set. The style and script passes
// of a request share one emitter, so bytes consumed by
// the style pass count against the script pass.
type emitter struct {
	header http.Header
	budget headerBudget
	secure bool
	cfg    *Config
	log    *zap.Logger
}

// emit walks the registry's candidates in order and
// appends one Link header per eligible resource. The
// pass terminates, rather than skips, once the header
// budget is exhausted: remaining lower-priority
// candidates are abandoned.
func (e *emitter) emit(reg *Registry) {
	kind := reg.Kind()

	candidates := reg.Queued()
	if fn := e.cfg.Candidates[kind]; fn != nil {
		candidates = fn(candidates, reg)
	}
	rewrite := e.cfg.RewriteURL[kind]

	for _, handle := range candidates {
		d, ok := reg.Lookup(handle)
		if !ok || d.Src == "" {
			// Pure alias entries have nothing to preload.
			skippedTotal.WithLabelValues(kind.String(), "alias").Inc()
			continue
		}

		if d.Conditional {
			e.log.Debug("not preloading conditional resource",
				zap.Stringer("kind", kind),
				zap.String("handle", handle))
			skippedTotal.WithLabelValues(kind.String(), "conditional").Inc()
			continue
		}

		if !e.budget.allows(e.header) {
			e.log.Debug("header budget exhausted",
				zap.Stringer("kind", kind),
				zap.String("handle", handle),
				zap.Int("budget", e.budget.max))
			truncatedTotal.WithLabelValues(kind.String()).Inc()
			break
		}

		u := resolveURL(d, reg, e.secure, rewrite)
		if u == "" {
			skippedTotal.WithLabelValues(kind.String(), "unresolved").Inc()
			continue
		}

		e.header.Add("Link", "<"+escapeHeaderURL(u)+">; rel=preload; as="+kind.String())
		emittedTotal.WithLabelValues(kind.String()).Inc()
	}
}

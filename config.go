// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultMaxHeaderSize is the total byte budget for
// the outgoing header set, existing headers included,
// when Config.MaxHeaderSize is zero.
const DefaultMaxHeaderSize = 3072

// CandidatesFunc overrides the list of handles
// considered for one resource kind. It receives the
// registry's queued handles and must return the
// handles to consider, in emission order.
type CandidatesFunc func(queued []string, reg *Registry) []string

// RewriteFunc rewrites a resolved URL before it is
// shortened. The default is the identity.
type RewriteFunc func(url, handle string) string

// Config carries the emission settings. The zero value
// is a valid configuration: buffered emission with the
// default header budget.
type Config struct {
	// MaxHeaderSize caps the wire size of the outgoing
	// header set. Zero means DefaultMaxHeaderSize.
	MaxHeaderSize int

	// Unbuffered emits preload headers at the first
	// WriteHeader call instead of buffering the body
	// and emitting once the handler returns. Resources
	// enqueued after the first write are then missed.
	Unbuffered bool

	// Candidates optionally overrides the candidate
	// handle list per resource kind.
	Candidates map[Kind]CandidatesFunc

	// RewriteURL optionally rewrites resolved URLs per
	// resource kind.
	RewriteURL map[Kind]RewriteFunc

	// Secure reports whether the request arrived over a
	// secure connection. When nil, r.TLS is consulted.
	Secure func(r *http.Request) bool

	// Logger receives debug records of skip and stop
	// decisions. When nil, logging is disabled.
	Logger *zap.Logger
}

func (cfg *Config) validate() error {
	if cfg.MaxHeaderSize < 0 {
		return errors.Errorf("preload: negative max header size %d", cfg.MaxHeaderSize)
	}
	return nil
}

func (cfg *Config) maxHeaderSize() int {
	if cfg.MaxHeaderSize > 0 {
		return cfg.MaxHeaderSize
	}
	return DefaultMaxHeaderSize
}

func (cfg *Config) secure(r *http.Request) bool {
	if cfg.Secure != nil {
		return cfg.Secure(r)
	}
	return r.TLS != nil
}

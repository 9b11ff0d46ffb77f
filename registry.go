// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Registry owns the descriptors of one resource kind
// together with the configuration needed to resolve
// their URLs. Handles queued with Enqueue are emitted
// in insertion order.
//
// A Registry is scoped to a single request and must
// not be shared across goroutines.
type Registry struct {
	kind Kind

	// BaseURL is prefixed to relative sources and later
	// stripped again to shorten resolved URLs.
	BaseURL string

	// ContentURL is an alternate root; sources already
	// below it are not prefixed with BaseURL.
	ContentURL string

	// DefaultVer is the version applied to descriptors
	// that carry none of their own.
	DefaultVer string

	byHandle  map[string]*Descriptor
	queued    []string
	extraArgs map[string]string
}

// NewRegistry returns an empty registry for one
// resource kind.
func NewRegistry(kind Kind) *Registry {
	return &Registry{
		kind:      kind,
		byHandle:  make(map[string]*Descriptor),
		extraArgs: make(map[string]string),
	}
}

// Kind reports the resource kind this registry holds.
func (reg *Registry) Kind() Kind { return reg.kind }

// Register adds a descriptor. Registering a handle
// twice is an error; descriptors are immutable once
// added.
func (reg *Registry) Register(d *Descriptor) error {
	if d.Handle == "" {
		return errors.New("preload: descriptor has empty handle")
	}
	if _, ok := reg.byHandle[d.Handle]; ok {
		return errors.Errorf("preload: handle %q already registered", d.Handle)
	}

	reg.byHandle[d.Handle] = d
	return nil
}

// Enqueue marks a registered handle for output.
// Enqueueing the same handle twice keeps its original
// position; unknown handles are queued anyway and
// skipped at emission time, matching host behaviour.
func (reg *Registry) Enqueue(handle string) {
	if slices.Contains(reg.queued, handle) {
		return
	}
	reg.queued = append(reg.queued, handle)
}

// Queued returns the handles marked for output, in
// insertion order. The returned slice is shared; do
// not mutate it.
func (reg *Registry) Queued() []string { return reg.queued }

// Lookup returns the descriptor for handle, if any.
func (reg *Registry) Lookup(handle string) (*Descriptor, bool) {
	d, ok := reg.byHandle[handle]
	return d, ok
}

// SetExtraArg attaches an extra query-arg suffix to a
// handle. It is appended to the resolved version using
// the host framework's literal &amp; join.
func (reg *Registry) SetExtraArg(handle, args string) {
	reg.extraArgs[handle] = args
}

// ExtraArg returns the extra query-arg suffix for a
// handle, or the empty string.
func (reg *Registry) ExtraArg(handle string) string {
	return reg.extraArgs[handle]
}

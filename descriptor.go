// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

// Descriptor holds the metadata of one registered
// resource. Descriptors are created through
// Registry.Register and are never mutated afterwards.
type Descriptor struct {
	// Handle uniquely identifies the resource within
	// its registry.
	Handle string

	// Src is the registered path or URL. It may be
	// empty for alias entries that only exist to pull
	// in other handles.
	Src string

	// Ver is the resource's own version. An empty Ver
	// means the registry's default version applies,
	// unless NoVer is set.
	Ver string

	// NoVer suppresses the ver query parameter
	// entirely, overriding both Ver and the registry
	// default.
	NoVer bool

	// Conditional marks a resource that is only loaded
	// under markup conditions (legacy conditional
	// comments and the like). Conditional resources
	// must not be preloaded unconditionally.
	Conditional bool

	// Extra carries additional host metadata. The
	// emitter never interprets it.
	Extra map[string]string
}

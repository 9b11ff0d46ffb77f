// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Package preload implements a preload hint aware
// http.Handler.
//
// Handlers register style and script resources into
// per-request registries and the middleware appends a
//
//	Link: <url>; rel=preload; as=style|script
//
// response header for each eligible resource, styles
// first, so HTTP/2 servers and CDNs can push them
// before the HTML body is parsed.
//
// Emission is bounded by a total header-size budget:
// once the outgoing header set would exceed the budget
// the remaining resources of the current pass are
// abandoned.
package preload

import "net/http"

// Handler is an alias to http.Handler for godoc.
type Handler = http.Handler

// Middleware represents a function that wraps an
// http.Handler.
type Middleware = func(http.Handler) http.Handler

// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

// Kind identifies the type of a registered resource.
// It is emitted verbatim as the as= attribute of the
// Link header.
type Kind int

const (
	// Style is a CSS stylesheet resource.
	Style Kind = iota
	// Script is a JavaScript resource.
	Script
)

func (k Kind) String() string {
	switch k {
	case Style:
		return "style"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

// headerBudget caps the total wire size of the
// outgoing header set. It holds no running state: the
// size is recomputed from the live header set on every
// check so headers added by unrelated code count too.
type headerBudget struct {
	max int
}

// allows reports whether the header set, as it would
// appear on the wire, still fits the budget. The size
// is the CRLF join of all header lines plus the
// trailing line terminator.
func (b headerBudget) allows(h map[string][]string) bool {
	return b.size(h) <= b.max
}

func (b headerBudget) size(h map[string][]string) int {
	var lines, size int
	for k, vv := range h {
		for _, v := range vv {
			size += len(k) + len(": ") + len(v)
			lines++
		}
	}

	if lines > 1 {
		size += 2 * (lines - 1)
	}
	return size + 2
}

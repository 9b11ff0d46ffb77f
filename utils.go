// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"net/http"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// escapeHeaderURL percent-escapes the bytes that would
// break the <...> framing of a Link header. It leaves
// already percent-encoded sequences and query syntax
// alone so resolved URLs survive byte for byte.
func escapeHeaderURL(u string) string {
	var b strings.Builder

	for i := 0; i < len(u); i++ {
		c := u[i]
		if c <= ' ' || c >= 0x7f || c == '<' || c == '>' || c == '"' {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

type responseWriterFlusherPusher interface {
	http.ResponseWriter
	http.Flusher
	http.Pusher
}

type closeNotifierResponseWriter struct {
	responseWriterFlusherPusher
	http.CloseNotifier
}

// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"net/url"
	"strings"
)

// resolveURL reproduces the host framework's resource
// URL resolution for one descriptor, then shortens the
// result. It returns the empty string when the
// descriptor has no source of its own.
//
// The function is pure: the same descriptor and
// registry state always yield the same URL.
func resolveURL(d *Descriptor, reg *Registry, secure bool, rewrite RewriteFunc) string {
	if d.Src == "" {
		return ""
	}

	var ver string
	switch {
	case d.NoVer:
	case d.Ver == "":
		ver = url.QueryEscape(reg.DefaultVer)
	default:
		ver = url.QueryEscape(d.Ver)
	}

	// Extra args are glued onto the version with a
	// literal HTML-escaped ampersand, not a query-string
	// join. The host framework's URL builder has always
	// done this; deployed URLs depend on it.
	if args := reg.ExtraArg(d.Handle); args != "" {
		if ver != "" {
			ver += "&amp;" + args
		} else {
			ver = args
		}
	}

	src := d.Src
	if !isAbsoluteURL(src) && !hasContentPrefix(src, reg.ContentURL) {
		src = reg.BaseURL + src
	}

	if ver != "" {
		sep := "?"
		if strings.Contains(src, "?") {
			sep = "&"
		}
		src += sep + "ver=" + ver
	}

	if rewrite != nil {
		src = rewrite(src, d.Handle)
	}

	if reg.BaseURL != "" && strings.HasPrefix(src, reg.BaseURL) {
		src = src[len(reg.BaseURL):]
	}

	// Substring replace on purpose. Only the first
	// literal occurrence is touched, matching the host
	// framework byte for byte.
	if secure {
		src = strings.Replace(src, "https://", "//", 1)
	} else {
		src = strings.Replace(src, "http://", "//", 1)
	}

	return src
}

func isAbsoluteURL(src string) bool {
	if strings.HasPrefix(src, "//") {
		return true
	}

	u, err := url.Parse(src)
	return err == nil && u.Scheme != ""
}

func hasContentPrefix(src, contentURL string) bool {
	return contentURL != "" && strings.HasPrefix(src, contentURL)
}

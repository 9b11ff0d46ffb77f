// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedEmissionSeesLateResources(t *testing.T) {
	h, err := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "<html>")

		// Enqueued after the body started; only the
		// buffered mode can still preload these.
		scripts := ScriptsFrom(r.Context())
		require.NoError(t, scripts.Register(&Descriptor{Handle: "app", Src: "/js/app.js", NoVer: true}))
		scripts.Enqueue("app")

		styles := StylesFrom(r.Context())
		require.NoError(t, styles.Register(&Descriptor{Handle: "site", Src: "/css/site.css", NoVer: true}))
		styles.Enqueue("site")
	}), nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "<html>", rr.Body.String())
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))

	// Styles are emitted before scripts regardless of
	// registration order.
	expected := []string{
		"</css/site.css>; rel=preload; as=style",
		"</js/app.js>; rel=preload; as=script",
	}
	if diff := cmp.Diff(expected, rr.Header()["Link"]); diff != "" {
		t.Errorf("Link headers mismatch (-want +got):\n%s", diff)
	}
}

func TestUnbufferedEmissionMissesLateResources(t *testing.T) {
	h, err := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scripts := ScriptsFrom(r.Context())
		require.NoError(t, scripts.Register(&Descriptor{Handle: "early", Src: "/early.js", NoVer: true}))
		scripts.Enqueue("early")

		io.WriteString(w, "<html>")

		require.NoError(t, scripts.Register(&Descriptor{Handle: "late", Src: "/late.js", NoVer: true}))
		scripts.Enqueue("late")
	}), &Config{Unbuffered: true})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>", rr.Body.String())
	assert.Equal(t, []string{"</early.js>; rel=preload; as=script"}, rr.Header()["Link"])
}

func TestUnbufferedEmissionWithoutBodyWrite(t *testing.T) {
	h, err := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		styles := StylesFrom(r.Context())
		require.NoError(t, styles.Register(&Descriptor{Handle: "site", Src: "/site.css", NoVer: true}))
		styles.Enqueue("site")
	}), &Config{Unbuffered: true})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	assert.Equal(t, []string{"</site.css>; rel=preload; as=style"}, rr.Header()["Link"])
}

func TestSecureOverrideStripsScheme(t *testing.T) {
	h, err := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scripts := ScriptsFrom(r.Context())
		require.NoError(t, scripts.Register(&Descriptor{
			Handle: "cdn",
			Src:    "https://cdn.example.net/lib.js",
			NoVer:  true,
		}))
		scripts.Enqueue("cdn")
	}), &Config{
		Secure: func(*http.Request) bool { return true },
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	assert.Equal(t, []string{"<//cdn.example.net/lib.js>; rel=preload; as=script"}, rr.Header()["Link"])
}

func TestBudgetCountsHandlerHeaders(t *testing.T) {
	h, err := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Filler", "0123456789012345678901234567890123456789")

		styles := StylesFrom(r.Context())
		require.NoError(t, styles.Register(&Descriptor{Handle: "site", Src: "/site.css", NoVer: true}))
		styles.Enqueue("site")
	}), &Config{MaxHeaderSize: 40})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

	// The filler header alone exceeds the budget, so no
	// preload header may be added.
	assert.Empty(t, rr.Header()["Link"])
}

func TestNewRejectsNegativeBudget(t *testing.T) {
	_, err := New(http.NotFoundHandler(), &Config{MaxHeaderSize: -1})
	require.Error(t, err)
}

func TestFromContextOutsideMiddleware(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, FromContext(ctx))
	assert.Nil(t, StylesFrom(ctx))
	assert.Nil(t, ScriptsFrom(ctx))
}

func TestEscapeHeaderURL(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"/js/app.js?ver=1.2", "/js/app.js?ver=1.2"},
		{"/a b.js", "/a%20b.js"},
		{"/a<b>.js", "/a%3Cb%3E.js"},
		{`/a"b.js`, "/a%22b.js"},
		{"/caf\xc3\xa9.js", "/caf%C3%A9.js"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, escapeHeaderURL(tc.in))
	}
}

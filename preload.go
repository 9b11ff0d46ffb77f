// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

package preload

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registries holds the per-request style and script
// registries installed by the middleware. Styles are
// emitted before scripts.
type Registries struct {
	Styles  *Registry
	Scripts *Registry
}

type contextKey struct{ name string }

var registriesKey = &contextKey{"preload.registries"}

// FromContext returns the registries installed by the
// middleware, or nil outside of it.
func FromContext(ctx context.Context) *Registries {
	regs, _ := ctx.Value(registriesKey).(*Registries)
	return regs
}

// StylesFrom returns the request's style registry, or
// nil when the middleware is not installed.
func StylesFrom(ctx context.Context) *Registry {
	if regs := FromContext(ctx); regs != nil {
		return regs.Styles
	}
	return nil
}

// ScriptsFrom returns the request's script registry,
// or nil when the middleware is not installed.
func ScriptsFrom(ctx context.Context) *Registry {
	if regs := FromContext(ctx); regs != nil {
		return regs.Scripts
	}
	return nil
}

type preloader struct {
	http.Handler

	cfg Config
	log *zap.Logger
}

// New wraps h with the preload middleware. Fresh style
// and script registries are installed into each
// request's context; the wrapped handler registers and
// enqueues resources through them.
//
// By default the response body is buffered and preload
// headers are emitted once h returns, so resources
// enqueued at any point of the render are visible. With
// cfg.Unbuffered the headers are emitted at the first
// write instead and the body streams through untouched.
func New(h http.Handler, cfg *Config) (http.Handler, error) {
	p := &preloader{Handler: h}

	if cfg != nil {
		p.cfg = *cfg
	}
	if err := p.cfg.validate(); err != nil {
		return nil, err
	}

	p.log = p.cfg.Logger
	if p.log == nil {
		p.log = zap.NewNop()
	}

	return p, nil
}

func (p *preloader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	regs := &Registries{
		Styles:  NewRegistry(Style),
		Scripts: NewRegistry(Script),
	}
	r = r.WithContext(context.WithValue(r.Context(), registriesKey, regs))

	em := &emitter{
		header: w.Header(),
		budget: headerBudget{max: p.cfg.maxHeaderSize()},
		secure: p.cfg.secure(r),
		cfg:    &p.cfg,
		log:    p.log.With(zap.String("request_id", uuid.NewString())),
	}

	if p.cfg.Unbuffered {
		iw := &immediateWriter{
			ResponseWriter: w,

			em:   em,
			regs: regs,
		}

		var rw http.ResponseWriter = iw
		if cn, ok := w.(http.CloseNotifier); ok {
			rw = &closeNotifierResponseWriter{iw, cn}
		}

		p.Handler.ServeHTTP(rw, r)

		// The handler may not have written anything, in
		// which case the header set is still open.
		iw.emit()
		return
	}

	bw := &bufferedWriter{ResponseWriter: w}

	var rw http.ResponseWriter = bw
	if cn, ok := w.(http.CloseNotifier); ok {
		rw = &closeNotifierResponseWriter{bw, cn}
	}

	p.Handler.ServeHTTP(rw, r)

	em.emit(regs.Styles)
	em.emit(regs.Scripts)

	bw.flush()
}

// immediateWriter emits the preload headers at the
// first write, the earliest point of the response
// lifecycle. Resources enqueued after that are missed.
type immediateWriter struct {
	http.ResponseWriter

	em   *emitter
	regs *Registries

	emitted     bool
	wroteHeader bool
}

func (w *immediateWriter) emit() {
	if w.emitted {
		return
	}
	w.emitted = true

	w.em.emit(w.regs.Styles)
	w.em.emit(w.regs.Scripts)
}

func (w *immediateWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.emit()
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *immediateWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(p)
}

func (w *immediateWriter) WriteString(s string) (n int, err error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return io.WriteString(w.ResponseWriter, s)
}

func (w *immediateWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *immediateWriter) Push(target string, opts *http.PushOptions) error {
	if pu, ok := w.ResponseWriter.(http.Pusher); ok {
		return pu.Push(target, opts)
	}

	return http.ErrNotSupported
}

// bufferedWriter captures the status code and body so
// the header set stays open until the preload pass has
// run. Headers written by the handler go straight to
// the underlying writer and count against the budget.
type bufferedWriter struct {
	http.ResponseWriter

	buf  bytes.Buffer
	code int
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}

	return w.buf.Write(p)
}

func (w *bufferedWriter) WriteString(s string) (n int, err error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}

	return w.buf.WriteString(s)
}

// Flush is a no-op while buffering: flushing would
// close the header set before the preload pass runs.
func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) Push(target string, opts *http.PushOptions) error {
	if pu, ok := w.ResponseWriter.(http.Pusher); ok {
		return pu.Push(target, opts)
	}

	return http.ErrNotSupported
}

// flush replays the captured status and body,
// unchanged, to the underlying writer.
func (w *bufferedWriter) flush() {
	if w.code != 0 {
		w.ResponseWriter.WriteHeader(w.code)
	}

	if w.buf.Len() > 0 {
		w.ResponseWriter.Write(w.buf.Bytes())
	}
}

// Copyright 2017 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Command preload-demo serves a small page through the
// preload middleware and exposes its metrics.
package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	preload "github.com/dimadin/preload-resources"
)

var (
	addr          = flag.String("addr", "localhost:8080", "address to listen on")
	maxHeaderSize = flag.Int("max-header-size", preload.DefaultMaxHeaderSize, "total header budget in bytes")
	unbuffered    = flag.Bool("unbuffered", false, "emit preload headers at the first write instead of buffering the body")
)

func main() {
	flag.Parse()

	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		return zap.NewDevelopment()
	})
	do.Provide(injector, func(i *do.Injector) (*preload.Config, error) {
		return &preload.Config{
			MaxHeaderSize: *maxHeaderSize,
			Unbuffered:    *unbuffered,
			Logger:        do.MustInvoke[*zap.Logger](i),
		}, nil
	})

	log := do.MustInvoke[*zap.Logger](injector)
	cfg := do.MustInvoke[*preload.Config](injector)

	preload.RegisterMetrics(nil)

	page, err := preload.New(http.HandlerFunc(servePage), cfg)
	if err != nil {
		log.Fatal("configuring middleware", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/", page)
	mux.Handle("/metrics", promhttp.Handler())

	log.Info("listening", zap.String("addr", *addr))

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func servePage(w http.ResponseWriter, r *http.Request) {
	base := "http://" + r.Host
	if r.TLS != nil {
		base = "https://" + r.Host
	}

	styles := preload.StylesFrom(r.Context())
	styles.BaseURL = base
	styles.DefaultVer = "1.4.0"

	_ = styles.Register(&preload.Descriptor{Handle: "site", Src: "/assets/css/site.css"})
	styles.Enqueue("site")

	scripts := preload.ScriptsFrom(r.Context())
	scripts.BaseURL = base
	scripts.DefaultVer = "1.4.0"

	_ = scripts.Register(&preload.Descriptor{Handle: "app", Src: "/assets/js/app.js", Ver: "2.1"})
	_ = scripts.Register(&preload.Descriptor{
		Handle: "analytics",
		Src:    "https://cdn.example.com/analytics.js",
		NoVer:  true,
	})
	scripts.Enqueue("app")
	scripts.Enqueue("analytics")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<html>
<head>
<link rel="stylesheet" href="/assets/css/site.css?ver=1.4.0">
</head>
<body>
<p>Check the Link headers of this response.</p>
<script src="/assets/js/app.js?ver=2.1"></script>
</body>
</html>
`)
}

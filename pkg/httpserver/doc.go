// Package httpserver runs the portal's HTTP listener with graceful shutdown
// and exposes liveness and readiness probes.
//
// Run binds the listener synchronously, so a busy port surfaces as ErrStart
// before any goroutine starts. It then blocks until the context is cancelled
// or SIGINT/SIGTERM arrives, and drains in-flight requests for at most the
// configured shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.Liveness())
//	r.Get("/readyz", httpserver.Readiness(log, 2*time.Second,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver

package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// ShutdownTimeout bounds how long a server waits for in-flight requests, such
// as a running /generate, once the serving context is done.
var ShutdownTimeout = 30 * time.Second

// Server is an HTTP server tagged with the role it plays in probeseed logs.
type Server struct {
	Role string
	*http.Server
}

// ListenAndServe runs the given servers until ctx is done, then shuts them
// down gracefully. It returns once every server has stopped.
func ListenAndServe(ctx context.Context, servers ...Server) {
	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func(s Server) {
			defer wg.Done()

			logs.WithTag("role", s.Role).
				WithTag("addr", s.Addr).
				Info("starting server")

			switch err := s.ListenAndServe(); err {
			case nil, http.ErrServerClosed, context.Canceled:
				logs.WithTag("role", s.Role).
					WithTag("addr", s.Addr).
					Info("stopping server")

			default:
				logs.Warn(errors.Newf("%s server stopped", s.Role).
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		return
	case <-ctx.Done():
	}

	shutdown(servers)
	<-stopped
}

func shutdown(servers []Server) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)

		go func(s Server) {
			defer wg.Done()

			if err := s.Shutdown(ctx); err != nil {
				logs.Warn(errors.Newf("shutting down the %s server failed", s.Role).
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}
	wg.Wait()
}

// MetricsPathFormatter returns empty string on HTTP 301, 400, 404 or 405 statusCode
func MetricsPathFormatter(statusCode int, path string) string {
	if statusCode == http.StatusMovedPermanently ||
		statusCode == http.StatusBadRequest ||
		statusCode == http.StatusNotFound ||
		statusCode == http.StatusMethodNotAllowed {
		return ""
	}

	return path
}

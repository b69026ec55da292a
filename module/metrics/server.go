package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/module"
)

// Server is the http server that will be serving the /metrics request for prometheus
type Server struct {
	server    *http.Server
	log       zerolog.Logger
	startOnce sync.Once
	stopOnce  sync.Once
	ready     chan struct{}
	done      chan struct{}

	// set before ready is closed
	listener net.Listener
	err      error
}

var _ module.ReadyDoneAware = (*Server)(nil)

// NewServer creates a new server that will start on the specified port,
// and responds to only the `/metrics` endpoint. Port 0 picks a free port.
func NewServer(log zerolog.Logger, port uint, gatherer prometheus.Gatherer) *Server {
	addr := ":" + strconv.Itoa(int(port))

	mux := http.NewServeMux()
	endpoint := "/metrics"
	mux.Handle(endpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log:    log.With().Str("component", "metrics_server").Str("address", addr).Str("endpoint", endpoint).Logger(),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Ready returns a channel that will close once the server is listening, or
// once binding the address failed. Err reports which.
func (m *Server) Ready() <-chan struct{} {
	m.startOnce.Do(func() {
		listener, err := net.Listen("tcp", m.server.Addr)
		if err != nil {
			m.err = fmt.Errorf("could not listen on %s: %w", m.server.Addr, err)
			m.log.Err(err).Msg("metrics server could not listen")
			close(m.ready)
			return
		}
		m.listener = listener

		go func() {
			if err := m.server.Serve(listener); err != nil {
				// http.ErrServerClosed is returned when Close or Shutdown is called
				// we don't consider this an error, so print this with debug level instead
				if errors.Is(err, http.ErrServerClosed) {
					m.log.Debug().Err(err).Msg("metrics server shutdown")
				} else {
					m.log.Err(err).Msg("error shutting down metrics server")
				}
			}
		}()
		m.log.Info().Str("listening", listener.Addr().String()).Msg("metrics server started")
		close(m.ready)
	})
	return m.ready
}

// Err returns the error that prevented the server from listening. It is only
// meaningful once Ready has closed.
func (m *Server) Err() error {
	return m.err
}

// Addr returns the address the server is listening on, nil until Ready has
// closed or if listening failed.
func (m *Server) Addr() net.Addr {
	if m.listener == nil {
		return nil
	}
	return m.listener.Addr()
}

// Done returns a channel that will close when shutdown is complete.
func (m *Server) Done() <-chan struct{} {
	m.stopOnce.Do(func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = m.server.Shutdown(ctx)
			cancel()
			close(m.done)
		}()
	})
	return m.done
}

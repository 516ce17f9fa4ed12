package suggestsvc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server hosts a handler on a local listener.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
}

// Listen binds addr (use "127.0.0.1:0" for an ephemeral port).
func Listen(addr string, h http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/complete/search", h)
	return &Server{
		listener: ln,
		httpServer: &http.Server{
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Endpoint returns a URL template for the fetcher pointing at this server.
func (s *Server) Endpoint() string {
	return "http://" + s.Addr() + "/complete/search?output=toolbar&hl={locale}&q={query}"
}

// Serve blocks until the server is shut down. A clean shutdown returns nil.
func (s *Server) Serve() error {
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

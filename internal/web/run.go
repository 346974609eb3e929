// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

// Open the listening socket for addr, capped to Config.MaxConns simultaneous
// connections if set.
func (s *Server) Listen(addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if s.Config.MaxConns > 0 {
		l = netutil.LimitListener(l, s.Config.MaxConns)
	}
	s.mu.Lock()
	s.l = l
	s.mu.Unlock()
	return l, nil
}

// Serve HTTP (or HTTPS if a certificate is configured) on l until ctx is
// cancelled. In-flight requests get Config.ShutdownTimeout to finish. Returns
// nil on a clean shutdown.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	defer s.forget(l)
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.Logger,
	}
	tls := s.Config.CertFile != "" && s.Config.KeyFile != ""

	errc := make(chan error, 1)
	go func() {
		if tls {
			s.Logger.Print("web.go serving with TLS ", l.Addr())
			errc <- srv.ServeTLS(l, s.Config.CertFile, s.Config.KeyFile)
		} else {
			s.Logger.Print("web.go serving ", l.Addr())
			errc <- srv.Serve(l)
		}
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		// ServeTLS gives up before taking ownership of l
		l.Close()
		return err
	case <-ctx.Done():
	}

	s.Logger.Print("web.go shutting down")
	grace := s.Config.ShutdownTimeout
	if grace <= 0 {
		grace = DefaultServerConfig().ShutdownTimeout
	}
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Listen for HTTP connections on addr and serve them until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	l, err := s.Listen(addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Stops the web server by closing its listener
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.l == nil {
		return nil
	}
	err := s.l.Close()
	s.l = nil
	return err
}

// Drop the saved listener once serving on it has ended
func (s *Server) forget(l net.Listener) {
	s.mu.Lock()
	if s.l == l {
		s.l = nil
	}
	s.mu.Unlock()
}

// Base URL the server can be reached at through l
func (s *Server) URL(l net.Listener) string {
	scheme := "http"
	if s.Config.CertFile != "" && s.Config.KeyFile != "" {
		scheme = "https"
	}
	addr := l.Addr().String()
	if host, port, err := net.SplitHostPort(addr); err == nil {
		if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
			addr = net.JoinHostPort("127.0.0.1", port)
		}
	}
	return scheme + "://" + addr + "/"
}

// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// this file is about the actual handling of a request: it comes in, what
// happens? routing determines which handler is responsible and that is then
// wrapped appropriately and invoked.

package web

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

type ServerConfig struct {
	// Value of the Server response header
	Name         string
	RecoverPanic bool
	ColorOutput  bool
	// Compress responses when the client accepts it
	Compress bool
	// Maximum number of simultaneously served connections, 0 for no limit.
	// 1 serves one connection at a time.
	MaxConns int
	// Serve TLS when both are set
	CertFile string
	KeyFile  string
	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration
}

type Server struct {
	Config ServerConfig
	routes []*route
	Logger *log.Logger
	// One logger per request is made through this factory
	AccessLogger AccessLogger
	// All requests are passed through these wrappers, the last one added is
	// outermost
	Wrappers []Wrapper

	mu sync.Mutex
	// Save the listener so it can be closed
	l net.Listener
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:            "web.go",
		RecoverPanic:    true,
		ColorOutput:     true,
		ShutdownTimeout: 5 * time.Second,
	}
}

func NewServer(conf ServerConfig) *Server {
	s := &Server{
		Config:       conf,
		Logger:       log.New(os.Stdout, "", log.Ldate|log.Ltime),
		AccessLogger: DefaultAccessLogger,
	}
	// Set some default headers
	s.AddWrapper(func(h SimpleHandler, ctx *Context) error {
		ctx.Header().Set("Server", s.Config.Name)
		ctx.Header().Set("Date", webTime(time.Now()))
		return h(ctx)
	})
	s.AddWrapper(RequestIDWrapper)
	if conf.Compress {
		s.AddWrapper(CompressWrapper)
	}
	return s
}

// Queue response wrapper that is called before all previously added wrappers
func (s *Server) AddWrapper(wrap Wrapper) {
	s.Wrappers = append(s.Wrappers, wrap)
}

func (s *Server) SetLogger(logger *log.Logger) {
	s.Logger = logger
}

// Register a handler for a method and route pattern. See the package
// documentation for the pattern syntax and accepted handler signatures.
func (s *Server) Handle(method, pattern string, handler interface{}) error {
	rex, names, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	h, err := fixHandlerSignature(handler, len(names))
	if err != nil {
		return fmt.Errorf("route %s %s: %w", method, pattern, err)
	}
	s.routes = append(s.routes, &route{
		rex:     rex,
		method:  strings.ToUpper(method),
		handler: h,
	})
	return nil
}

// Adds a handler for the 'GET' http method. Also answers HEAD requests.
func (s *Server) Get(pattern string, handler interface{}) error {
	return s.Handle(http.MethodGet, pattern, handler)
}

// Adds a handler for the 'POST' http method.
func (s *Server) Post(pattern string, handler interface{}) error {
	return s.Handle(http.MethodPost, pattern, handler)
}

// Adds a handler for the 'PUT' http method.
func (s *Server) Put(pattern string, handler interface{}) error {
	return s.Handle(http.MethodPut, pattern, handler)
}

// Adds a handler for the 'DELETE' http method.
func (s *Server) Delete(pattern string, handler interface{}) error {
	return s.Handle(http.MethodDelete, pattern, handler)
}

// Calls function with recover block. The first return value is whatever the
// function returns if it didnt panic. The second is what was passed to panic()
// if it did.
func (s *Server) safelyCall(f func() error) (softerr error, harderr interface{}) {
	defer func() {
		if err := recover(); err != nil {
			if !s.Config.RecoverPanic {
				s.Logger.Printf("Panic: %v", err)
				panic(err)
			}
			harderr = err
			if _, ok := err.(WebError); ok {
				return
			}
			s.Logger.Println("Handler crashed with error:", err)
			for i := 1; ; i++ {
				_, file, line, ok := runtime.Caller(i)
				if !ok {
					break
				}
				s.Logger.Println(file, line)
			}
		}
	}()
	return f(), nil
}

// Apply the handler to this context and try to handle errors where possible.
// The returned error is what gets reported to the access logger.
func (s *Server) applyHandler(f SimpleHandler, ctx *Context) error {
	softerr, harderr := s.safelyCall(func() error {
		return f(ctx)
	})
	if harderr != nil {
		if werr, ok := harderr.(WebError); ok {
			softerr = werr
		} else {
			ctx.Abort(errServer.Code, errServer.Err)
			return fmt.Errorf("panic: %v", harderr)
		}
	}
	if softerr == nil {
		return nil
	}
	if werr, ok := softerr.(WebError); ok {
		ctx.Abort(werr.Code, werr.Error())
		return werr
	}
	s.Logger.Printf("Handler returned error: %v", softerr)
	// Non-web errors are not leaked to the outside
	ctx.Abort(errServer.Code, errServer.Err)
	return softerr
}

// Pick the handler for this request: a matching route, an OPTIONS or 405
// answer for a path served under other methods, or a 404.
func (s *Server) route(ctx *Context) SimpleHandler {
	req := ctx.Request
	rt, args, allowed := findMatchingRoute(req, s.routes)
	switch {
	case rt != nil:
		// Set the default content-type
		ctx.ContentType("text/html; charset=utf-8")
		return closeHandler(rt.handler, args...)
	case len(allowed) > 0 && req.Method == http.MethodOptions:
		return func(ctx *Context) error {
			ctx.Header().Set("Allow", allowHeader(allowed))
			ctx.WriteHeader(http.StatusOK)
			return nil
		}
	case len(allowed) > 0:
		return func(ctx *Context) error {
			ctx.Header().Set("Allow", allowHeader(allowed))
			return errMethodNotAllowed
		}
	}
	return func(ctx *Context) error {
		return errNotFound
	}
}

// Fully clothed request handler
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rw := newResponseWriter(w)
	rw.discardBody = req.Method == http.MethodHead
	ctx := &Context{
		Request:        req,
		Server:         s,
		Response:       rw,
		ResponseWriter: rw,
	}

	alog := s.AccessLogger(s)
	alog.LogRequest(req)
	rw.AddAfterHeaderFunc(func(w *ResponseWriter) {
		alog.LogHeader(w.Status(), w.Header())
	})

	// ignore errors from ParseForm because it's usually harmless.
	req.ParseForm()
	ctx.Params = newParams(req.Form)
	alog.LogParams(ctx.Params)

	h := s.route(ctx)
	for _, wrap := range s.Wrappers {
		h = wrapHandler(wrap, h)
	}
	err := s.applyHandler(h, ctx)
	if cerr := rw.Close(); err == nil {
		err = cerr
	}
	alog.LogDone(err)
}

func webTime(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

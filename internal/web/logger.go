// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"log"
	"net/http"
	"time"
)

// Log one request by calling every method in the order defined below.
// Arguments are passed by reference for efficiency but MUST NOT be changed!
type OneAccessLogger interface {
	// Called with the raw incoming request
	LogRequest(*http.Request)
	// Parameters as parsed from the query string and form
	LogParams(Params)
	// Called when headers are set by handler and will be written to client
	LogHeader(status int, header http.Header)
	// Called when response has been written to client. If an error occurred at
	// any point during handling it is passed as an argument. Otherwise err is
	// nil.
	LogDone(err error)
}

// Factory function that generates new one-shot access loggers
type AccessLogger func(*Server) OneAccessLogger

// Simple access logger that prints every request to server.Logger as one line
// once it is done.
func DefaultAccessLogger(s *Server) OneAccessLogger {
	return &lineAccessLogger{
		Logger: s.Logger,
		color:  s.Config.ColorOutput,
		start:  time.Now(),
	}
}

type lineAccessLogger struct {
	*log.Logger
	color  bool
	start  time.Time
	method string
	path   string
	params Params
	status int
}

func (l *lineAccessLogger) LogRequest(req *http.Request) {
	l.method = req.Method
	l.path = req.URL.Path
}

func (l *lineAccessLogger) LogParams(p Params) {
	l.params = p
}

func (l *lineAccessLogger) LogHeader(status int, h http.Header) {
	l.status = status
}

func (l *lineAccessLogger) LogDone(err error) {
	elapsed := time.Since(l.start).Round(time.Microsecond)
	if l.color {
		l.Printf("%s%s %s%s %s%d%s %v", ttyCodes.green, l.method, l.path, ttyCodes.reset,
			statusColor(l.status), l.status, ttyCodes.reset, elapsed)
	} else {
		l.Printf("%s %s %d %v", l.method, l.path, l.status, elapsed)
	}
	if len(l.params) > 0 {
		if l.color {
			l.Printf("%sParams: %v%s", ttyCodes.white, l.params, ttyCodes.reset)
		} else {
			l.Printf("Params: %v", l.params)
		}
	}
	if err != nil {
		l.Printf("Error: %v", err)
	}
}

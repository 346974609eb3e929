// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"io"
	"net/http"
	"sync"
)

// wrap http.ResponseWriter to allow function hooks that are executed after the
// response headers are set and before the body is sent.
type ResponseWriter struct {
	// callbacks to execute sequentially with reference to this object after
	// all headers have been set
	afterHeaders []func(*ResponseWriter)
	// closed when the entire response has been written. Closed in reverse
	// order because closing an outer writer can flush data to an inner one.
	closers []io.Closer
	once    sync.Once
	// Underlying response writer, only use this for the headers
	http.ResponseWriter
	status  int
	written int64
	// HEAD requests: headers only, body data is counted and dropped
	discardBody bool
	// body data is written here. can be wrapped by afterheaders functions
	BodyWriter io.Writer
}

func newResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, BodyWriter: w}
}

func (w *ResponseWriter) triggerAfterHeaders() {
	w.once.Do(func() {
		if w.status == 0 {
			w.status = http.StatusOK
		}
		for _, f := range w.afterHeaders {
			f(w)
		}
	})
}

func (w *ResponseWriter) Write(data []byte) (int, error) {
	w.triggerAfterHeaders()
	if w.discardBody {
		w.written += int64(len(data))
		return len(data), nil
	}
	n, err := w.BodyWriter.Write(data)
	w.written += int64(n)
	return n, err
}

func (w *ResponseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
	w.triggerAfterHeaders()
	w.ResponseWriter.WriteHeader(status)
}

// Flush headers even if the handler wrote nothing, then close every wrapped
// body writer.
func (w *ResponseWriter) Close() error {
	w.triggerAfterHeaders()
	var err error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if cerr := w.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	w.closers = nil
	return err
}

func (w *ResponseWriter) WrapBodyWriter(f func(w io.Writer) io.Writer) {
	w.BodyWriter = f(w.BodyWriter)
	if c, ok := w.BodyWriter.(io.Closer); ok {
		w.closers = append(w.closers, c)
	}
}

// Add callback to execute when all headers have been set and body data is
// about to be written
func (w *ResponseWriter) AddAfterHeaderFunc(f func(*ResponseWriter)) {
	w.afterHeaders = append(w.afterHeaders, f)
}

// Status code sent to the client, 0 if none yet
func (w *ResponseWriter) Status() int {
	return w.status
}

// Number of body bytes handed to the body writer
func (w *ResponseWriter) Written() int64 {
	return w.written
}

// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// Media types outside text/* and the +json/+xml suffixes worth compressing
var compressibleTypes = map[string]bool{
	"application/json":       true,
	"application/xml":        true,
	"application/javascript": true,
	"image/svg+xml":          true,
}

func compressible(ctype string) bool {
	mt, _, err := mime.ParseMediaType(ctype)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mt, "text/"),
		strings.HasSuffix(mt, "+json"),
		strings.HasSuffix(mt, "+xml"):
		return true
	}
	return compressibleTypes[mt]
}

var gzipWriters = sync.Pool{
	New: func() interface{} { return gzip.NewWriter(io.Discard) },
}

// Returns the writer to the pool on Close
type pooledGzipWriter struct {
	*gzip.Writer
}

func (w pooledGzipWriter) Close() error {
	err := w.Writer.Close()
	gzipWriters.Put(w.Writer)
	return err
}

// Content codings we can produce, in order of preference on equal weight
var encoders = []struct {
	name   string
	writer func(io.Writer) io.Writer
}{
	{"gzip", func(w io.Writer) io.Writer {
		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		return pooledGzipWriter{zw}
	}},
	{"deflate", func(w io.Writer) io.Writer {
		fw, _ := flate.NewWriter(w, flate.DefaultCompression)
		return fw
	}},
}

// Parse an Accept-Encoding header into coding -> q value. Codings without a
// q parameter get 1.
func acceptedEncodings(header string) map[string]float64 {
	accepted := make(map[string]float64)
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(part, ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding == "" {
			continue
		}
		q := 1.0
		for _, param := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(param, "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
				continue
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				q = f
			}
		}
		accepted[coding] = q
	}
	return accepted
}

// Pick the coding for a response, "" to send it as is. q=0 refuses a coding,
// "*" stands for any coding not named.
func negotiateEncoding(header string) string {
	accepted := acceptedEncodings(header)
	best, bestQ := "", 0.0
	for _, enc := range encoders {
		q, ok := accepted[enc.name]
		if !ok {
			q, ok = accepted["*"]
		}
		if ok && q > bestQ {
			best, bestQ = enc.name, q
		}
	}
	return best
}

// Runs once the handler has settled the headers and before any of them reach
// the client: decides on a coding and swaps in the compressing body writer.
func compressResponse(w *ResponseWriter, req *http.Request) {
	if req.Method == http.MethodHead {
		return
	}
	switch w.Status() {
	case http.StatusNoContent, http.StatusNotModified:
		return
	}
	h := w.Header()
	if h.Get("Content-Encoding") != "" || !compressible(h.Get("Content-Type")) {
		return
	}
	h.Add("Vary", "Accept-Encoding")
	coding := negotiateEncoding(req.Header.Get("Accept-Encoding"))
	for _, enc := range encoders {
		if enc.name != coding {
			continue
		}
		w.WrapBodyWriter(enc.writer)
		h.Set("Content-Encoding", coding)
		h.Del("Content-Length")
		return
	}
}

// Compress response data when the client accepts it and the content type is
// worth it
func CompressWrapper(h SimpleHandler, ctx *Context) error {
	ctx.Response.AddAfterHeaderFunc(func(w *ResponseWriter) {
		compressResponse(w, ctx.Request)
	})
	return h(ctx)
}

// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// The custom request context that is passed to every request handler.
type Context struct {
	// The incoming request that led to this handler being invoked
	Request *http.Request
	// Aggregated parameters from the query string and POST data.
	Params Params
	Server *Server
	// Unique identifier of this request, set by RequestIDWrapper
	RequestID string
	// The response writer that the handler should write to. Also available
	// as the embedded http.ResponseWriter.
	Response *ResponseWriter
	http.ResponseWriter
}

func (ctx *Context) Write(data []byte) (int, error) {
	return ctx.Response.Write(data)
}

func (ctx *Context) WriteString(content string) (int, error) {
	return ctx.Write([]byte(content))
}

// Best-effort serialization of response data
func (ctx *Context) writeAnything(i interface{}) error {
	switch typed := i.(type) {
	case string:
		ctx.setContentLength(len(typed))
		_, err := ctx.WriteString(typed)
		return err
	case []byte:
		ctx.setContentLength(len(typed))
		_, err := ctx.Write(typed)
		return err
	case io.WriterTo:
		_, err := typed.WriteTo(ctx)
		return err
	case io.Reader:
		_, err := io.Copy(ctx, typed)
		return err
	}
	return errors.New("cannot serialize data for writing to client")
}

// Announce the body length if nothing has been sent yet. Wrappers that
// re-encode the body drop it again.
func (ctx *Context) setContentLength(n int) {
	if ctx.Response.Status() == 0 {
		ctx.Header().Set("Content-Length", strconv.Itoa(n))
	}
}

func (ctx *Context) Abort(status int, body string) {
	ctx.WriteHeader(status)
	ctx.WriteString(body)
}

func (ctx *Context) Redirect(status int, url string) {
	ctx.Header().Set("Location", url)
	ctx.Abort(status, "Redirecting to: "+url)
}

func (ctx *Context) NotFound(message string) {
	ctx.Abort(http.StatusNotFound, message)
}

// Sets the content type by extension, as defined in the mime package.
// For example, ctx.ContentType("json") sets the content-type to
// "application/json". If ext contains a slash it is used verbatim. Returns the
// content type as it was set, or an empty string if none was found.
func (ctx *Context) ContentType(ext string) string {
	ctype := ext
	if !strings.ContainsRune(ext, '/') {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		ctype = mime.TypeByExtension(ext)
	}
	if ctype != "" {
		ctx.Header().Set("Content-Type", ctype)
	}
	return ctype
}

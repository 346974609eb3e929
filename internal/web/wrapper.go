// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

// Called for every request and passed the handler that would otherwise be
// called to process it. Use this for global tinkering like:
//
// * specialized error pages (if werr, ok := err.(WebError); ok { ... })
//
// * encode data if client supports it (gzip etc)
//
// * set site-wide headers
//
// The wrapper must call the handler itself. The handler is not necessarily
// user defined: 404 and 405 answers are handlers too.
type Wrapper func(SimpleHandler, *Context) error

// Bind a simple request handler to a wrapper
func wrapHandler(wrapper Wrapper, bareh SimpleHandler) SimpleHandler {
	return func(ctx *Context) error {
		return wrapper(bareh, ctx)
	}
}

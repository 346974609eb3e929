// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Simple web framework.
//
// At the core of web.go are request handlers:
//
//	func helloworld() string {
//	    return "hello, world"
//	}
//
// These are hooked up to the routing table of a Server:
//
//	s := web.NewServer(web.DefaultServerConfig())
//	s.Get("/", helloworld)
//	s.Run(ctx, "127.0.0.1:9999")
//
// Route patterns are literal paths with placeholders. A placeholder binds part
// of the path and passes it to the handler as a string argument:
//
//	func hello(name string) string {
//	    return "hello, " + name
//	}
//
//	s.Get("/hello/<name>", hello)
//
// Visit http://127.0.0.1:9999/hello/fidodido to see 'hello, fidodido'.
//
// <name> matches one non-empty path segment, <int:name> a run of digits and
// <path:name> the remainder of the path including slashes. The whole path must
// match.
//
// Route handlers may take a *web.Context as their first parameter. It holds
// the request and lets the handler control the response. Handlers may return
// a string, []byte, io.Reader or io.WriterTo to be written to the client, an
// error, or both. A WebError selects the status code of the response.
package web

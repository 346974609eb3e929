// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import "net/http"

// An error carrying the HTTP status to answer with. Handlers return it to
// control the response; its text is sent to the client as the body.
type WebError struct {
	Code int
	Err  string
}

func (err WebError) Error() string {
	return err.Err
}

var (
	errNotFound         = WebError{http.StatusNotFound, "Page not found"}
	errMethodNotAllowed = WebError{http.StatusMethodNotAllowed, "Method not allowed"}
	errServer           = WebError{http.StatusInternalServerError, "Server Error"}
)

// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// Tag every request with an identifier. A UUID supplied by the client (or a
// proxy in front of us) is kept; anything else is replaced by a random UUID.
// The identifier is echoed in the response headers.
func RequestIDWrapper(h SimpleHandler, ctx *Context) error {
	id := ctx.Request.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	ctx.RequestID = id
	ctx.Header().Set(RequestIDHeader, id)
	return h(ctx)
}

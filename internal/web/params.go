// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"net/url"
	"strconv"
)

// Query string and form parameters, first value only
type Params map[string]string

func newParams(form url.Values) Params {
	p := make(Params, len(form))
	for k, v := range form {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	return p
}

// Get a parameter. Panics if not found. Panic object is a WebError with status
// 400.
func (p Params) GetString(key string) string {
	val, ok := p[key]
	if !ok {
		panic(WebError{400, "Required parameter " + key + " missing"})
	}
	return val
}

// Get an integer parameter. Panics with a 400 WebError if it is missing or
// not an integer.
func (p Params) GetInt(key string) int {
	i, err := strconv.Atoi(p.GetString(key))
	if err != nil {
		panic(WebError{400, "Illegal integer parameter " + key})
	}
	return i
}

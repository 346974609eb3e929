// Copyright © 2009--2014 The Web.go Authors
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Placeholder syntax: <name>, <int:name> or <path:name>
var placeholderRex = regexp.MustCompile(`<(?:([a-z]+):)?([A-Za-z_][A-Za-z0-9_]*)>`)

// regular expressions for the supported placeholder converters
var converters = map[string]string{
	"":       `[^/]+`,
	"string": `[^/]+`,
	"int":    `[0-9]+`,
	"path":   `.+`,
}

type route struct {
	rex     *regexp.Regexp
	method  string
	handler parametrizedHandler
}

// Translate a route pattern into an anchored regular expression. Literal text
// is quoted, placeholders become capture groups.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("pattern %q must start with /", pattern)
	}
	var (
		buf   strings.Builder
		names []string
		last  int
	)
	buf.WriteByte('^')
	for _, loc := range placeholderRex.FindAllStringSubmatchIndex(pattern, -1) {
		buf.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		conv := ""
		if loc[2] >= 0 {
			conv = pattern[loc[2]:loc[3]]
		}
		expr, ok := converters[conv]
		if !ok {
			return nil, nil, fmt.Errorf("pattern %q: unknown converter %q", pattern, conv)
		}
		names = append(names, pattern[loc[4]:loc[5]])
		buf.WriteString("(" + expr + ")")
		last = loc[1]
	}
	buf.WriteString(regexp.QuoteMeta(pattern[last:]))
	buf.WriteByte('$')
	rex, err := regexp.Compile(buf.String())
	if err != nil {
		return nil, nil, err
	}
	return rex, names, nil
}

// If the path matches this route return the bound values, otherwise nil. The
// returned slice is never nil on a match, even without placeholders.
func (r *route) match(path string) []string {
	m := r.rex.FindStringSubmatch(path)
	if m == nil {
		return nil
	}
	return m[1:]
}

// Determine if this route serves the method. HEAD is served by GET routes.
func (r *route) allows(method string) bool {
	return method == r.method || (method == http.MethodHead && r.method == http.MethodGet)
}

// Find the first route serving both the path and the method. If the path is
// known but the method is not, the methods that would have been accepted are
// returned instead.
func findMatchingRoute(req *http.Request, routes []*route) (*route, []string, []string) {
	var allowed []string
	for _, rt := range routes {
		args := rt.match(req.URL.Path)
		if args == nil {
			continue
		}
		if rt.allows(req.Method) {
			return rt, args, nil
		}
		allowed = appendMethod(allowed, rt.method)
	}
	return nil, nil, allowed
}

func appendMethod(methods []string, m string) []string {
	for _, have := range methods {
		if have == m {
			return methods
		}
	}
	methods = append(methods, m)
	if m == http.MethodGet {
		methods = appendMethod(methods, http.MethodHead)
	}
	return methods
}

// Value for the Allow header
func allowHeader(methods []string) string {
	return strings.Join(appendMethod(methods, http.MethodOptions), ", ")
}
